package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/TuftsBCB/extant/sample"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "species.nwk")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRunSuccess(t *testing.T) {
	treePath := writeTree(t, "(A:1,(B:2,C:3):1);")
	outDir := filepath.Join(t.TempDir(), "a", "b")

	var stdout, stderr bytes.Buffer
	code := run([]string{treePath, "2", outDir, "--log-level", "debug"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, "Sampled Leaves: [\"C\" \"B\"]\nRemoved Leaves: [\"A\"]\n", stdout.String())
	require.Contains(t, stderr.String(), "level=DEBUG")

	written, err := os.ReadFile(filepath.Join(outDir, sample.DefaultOutputName))
	require.NoError(t, err)
	require.Equal(t, "(B:2,C:3);", string(written))
}

func TestRunOutputName(t *testing.T) {
	treePath := writeTree(t, "((a:1,b:2):1,c:1);")
	outDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--output-name", "pruned.nwk", "--table", "--log-format", "json",
		treePath, "1", outDir}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "STATUS")
	require.Contains(t, stderr.String(), `"msg":"sampled species tree"`)

	written, err := os.ReadFile(filepath.Join(outDir, "pruned.nwk"))
	require.NoError(t, err)
	require.Equal(t, "b;", string(written))
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"only", "two"}, &stdout, &stderr)
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "Usage:")
	require.Contains(t, stderr.String(), `Received arguments: ["only" "two"]`)
	require.Empty(t, stdout.String())
}

func TestRunBadCount(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "never")
	for _, bad := range []string{"many", "1.5"} {
		var stdout, stderr bytes.Buffer
		code := run([]string{"tree.nwk", bad, outDir}, &stdout, &stderr)
		require.Equal(t, 2, code)
		require.Contains(t, stderr.String(), "n_extant_nodes must be a non-negative integer")
		require.Contains(t, stderr.String(), "All arguments:")
	}
	_, err := os.Stat(outDir)
	require.True(t, os.IsNotExist(err))
}

func TestRunBadLogFlags(t *testing.T) {
	treePath := writeTree(t, "(A:1,B:2);")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--log-level", "loud", treePath, "1", t.TempDir()}, &stdout, &stderr)
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "invalid log level")
}

func TestRunFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.nwk")
	outDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{missing, "3", outDir}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "Error during species tree sampling")
	require.Contains(t, stderr.String(), "Species Tree Path: "+missing)
	require.Contains(t, stderr.String(), "Number of Sampled Nodes: 3")
	require.Contains(t, stderr.String(), "Output Directory: "+outDir)
}

func TestRunZeroSample(t *testing.T) {
	treePath := writeTree(t, "(A:1,B:2);")
	var stdout, stderr bytes.Buffer
	code := run([]string{treePath, "0", t.TempDir()}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "cannot sample zero leaves")
}
