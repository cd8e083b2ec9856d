package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setFlag sets a global flag for the duration of the test.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestSettings(t *testing.T) {
	t.Setenv(EnvSnapshotFile, "from-env.yaml")
	t.Setenv(EnvVerbose, "")
	t.Setenv(EnvPlain, "true")

	assert.Equal(t, []string{
		EnvSnapshotFile + "=from-env.yaml",
		EnvVerbose + "=false",
		EnvPlain + "=true",
	}, settings())

	// flags win over the environment.
	setFlag(t, snapshotFile, "portfolio.json")
	setFlag(t, Verbose, true)
	assert.Equal(t, []string{
		EnvSnapshotFile + "=portfolio.json",
		EnvVerbose + "=true",
		EnvPlain + "=true",
	}, settings())
}

func TestRunExtension(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := "#!/bin/sh\n" +
		"echo \"$@ $" + EnvSnapshotFile + " $" + EnvVerbose + "\" > " + out + "\n" +
		"exit 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aa-hello"), []byte(script), 0o755))
	t.Setenv("PATH", dir)
	t.Setenv(EnvSnapshotFile, "")
	t.Setenv(EnvVerbose, "")
	setFlag(t, snapshotFile, "alloc.yaml")

	found, code := RunExtension("hello", []string{"world"})
	assert.True(t, found)
	assert.Equal(t, 3, code)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "world alloc.yaml false", strings.TrimSpace(string(got)))

	found, _ = RunExtension("missing", nil)
	assert.False(t, found)
}
