package docs

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/allocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	topics, err := Topics()
	require.NoError(t, err)
	require.NotEmpty(t, topics)

	index, err := Index()
	require.NoError(t, err)

	for _, topic := range topics {
		assert.NotEqual(t, readme, topic.Name)
		assert.NotEmpty(t, topic.Title, "topic %q has no heading", topic.Name)
		assert.Contains(t, index, "* "+topic.Name+": "+topic.Title+"\n")
	}
	assert.Equal(t, "Snapshot files", lookup(topics, "snapshot").Title)
}

func TestRead(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	var want strings.Builder
	for _, name := range names {
		content, err := Read(name)
		require.NoError(t, err)
		want.WriteString(content)
	}
	all, err := Read("*")
	require.NoError(t, err)
	assert.Equal(t, want.String(), all)

	_, err = Read("formulas", "no-such-topic")
	assert.ErrorContains(t, err, `topic "no-such-topic" not found`)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Risk", title([]byte("some text\n\n# Risk\n\n## Details\n")))
	assert.Equal(t, "", title([]byte("no heading at all\n")))
}

// TestSnapshotExamples decodes every yaml and json example of the
// documentation into a session.
func TestSnapshotExamples(t *testing.T) {
	for _, file := range markdownFiles(t) {
		for _, f := range fences(t, file) {
			format, ok := map[string]allocation.Format{"yaml": allocation.YAML, "json": allocation.JSON}[f.info]
			if !ok {
				continue
			}
			snap, err := allocation.DecodeSnapshot(strings.NewReader(f.body), format)
			if !assert.NoError(t, err, "%s:%d", f.file, f.line) {
				continue
			}
			_, err = snap.Session()
			assert.NoError(t, err, "%s:%d", f.file, f.line)
		}
	}
}

// TestScenarios runs the shell examples of the documentation against the aa
// binary:
//
//   - "bash setup" starts a scenario in a new empty folder.
//   - "bash run" runs commands in the scenario folder and records the output.
//   - "console check" compares the recorded output with the block content.
func TestScenarios(t *testing.T) {
	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "aa"), "../aa/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build aa: %v\n%s", err, out)
	}
	// Global settings must not leak from the developer environment.
	env := append(os.Environ(),
		"PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"),
		"AA_SNAPSHOT_FILE=", "AA_VERBOSE=false", "AA_PLAIN=false",
	)

	for _, file := range append(markdownFiles(t), "../README.md") {
		t.Run(filepath.Base(file), func(t *testing.T) {
			dir, output := t.TempDir(), ""
			for _, f := range fences(t, file) {
				switch f.info {
				case "bash setup", "bash run":
					if f.info == "bash setup" {
						dir = t.TempDir()
					}
					cmd := exec.Command("bash", "-c", "set -e; "+f.body)
					cmd.Dir, cmd.Env = dir, env
					out, err := cmd.CombinedOutput()
					require.NoError(t, err, "%s:%d: %s failed with output:\n%s", f.file, f.line, f.info, out)
					output = string(out)
				case "console check":
					assert.Equal(t, strings.TrimSpace(f.body), strings.TrimSpace(output), "%s:%d: output mismatch", f.file, f.line)
				}
			}
		})
	}
}

func lookup(topics []Topic, name string) Topic {
	for _, t := range topics {
		if t.Name == name {
			return t
		}
	}
	return Topic{}
}

func markdownFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob("*.md")
	require.NoError(t, err)
	return files
}

// fence is a fenced code block of a markdown file.
type fence struct {
	info string // the text after the opening fence, like "bash run"
	body string
	file string
	line int
}

// fences returns the fenced code blocks of a markdown file, in order.
func fences(t *testing.T, file string) []fence {
	t.Helper()
	content, err := os.ReadFile(file)
	require.NoError(t, err)

	var list []fence
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var body bytes.Buffer
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			body.Write(line.Value(content))
		}
		start := fcb.Info.Segment.Start
		list = append(list, fence{
			info: strings.TrimSpace(string(fcb.Info.Segment.Value(content))),
			body: body.String(),
			file: file,
			line: bytes.Count(content[:start], []byte("\n")) + 1,
		})
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return list
}
