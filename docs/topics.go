// Package docs holds the aa documentation, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed *.md
var files embed.FS

// readme is the introduction, it is not listed as a topic.
const readme = "readme"

// Topic is a documentation page.
type Topic struct {
	Name  string // used on the command line: aa topic <name>
	Title string // the first heading of the page
}

// Topics returns every topic, sorted by name.
func Topics() ([]Topic, error) {
	paths, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, p := range paths {
		name := strings.TrimSuffix(path.Base(p), ".md")
		if name == readme {
			continue
		}
		content, err := files.ReadFile(p)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content)})
	}
	slices.SortFunc(topics, func(a, b Topic) int { return strings.Compare(a.Name, b.Name) })
	return topics, nil
}

// Names returns the topic names, sorted.
func Names() ([]string, error) {
	topics, err := Topics()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names, nil
}

// Index returns the readme followed by the list of topics.
func Index() (string, error) {
	intro, err := files.ReadFile(readme + ".md")
	if err != nil {
		return "", err
	}
	topics, err := Topics()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Write(intro)
	b.WriteString("\n## Topics\n\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "* %s: %s\n", t.Name, t.Title)
	}
	return b.String(), nil
}

// Read returns the content of the given topics, concatenated. The name "*"
// stands for every topic.
func Read(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			all, err := Names()
			if err != nil {
				return "", err
			}
			expanded = all
		}
		for _, n := range expanded {
			content, err := files.ReadFile(n + ".md")
			if err != nil {
				return "", fmt.Errorf("topic %q not found: %w", n, err)
			}
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// title returns the text of the first heading in a markdown page, or "" if
// there is none.
func title(content []byte) string {
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		line := h.Lines().At(0)
		return strings.TrimSpace(string(line.Value(content)))
	}
	return ""
}
