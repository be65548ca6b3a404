package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-latticegraph/pkg/export"
)

const chainStructure = `
lattice: {a: 3, b: 20, c: 20}
sites:
  - {species: Zn, frac: [0, 0, 0]}
  - {species: Zn, cart: [1, 0, 0]}
  - {species: Zn, cart: [2, 0, 0]}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeStructure(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainStructure), 0o644))
	return path
}

func TestBuildAndInspect(t *testing.T) {
	dir := t.TempDir()
	structure := writeStructure(t, dir)
	out := filepath.Join(dir, "out", "network.json")
	prom := filepath.Join(dir, "latticegraph.prom")

	stdout, err := execute(t, "build",
		"--structure", structure,
		"--cutoff", "1.5",
		"--output", out,
		"--run-id", "cli-run",
		"--metrics-file", prom)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Network cli-run")
	assert.Contains(t, stdout, "prepare")

	doc, err := export.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, doc.Start)
	assert.Equal(t, []int{4}, doc.End)
	assert.Len(t, doc.Edges, 3)

	metricsText, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metricsText), `latticegraph_exports_total{status="success",target="file"} 1`)

	stdout, err = execute(t, "inspect", "--edges", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 -> 2 (weight 1)")
	assert.Contains(t, stdout, "3 -> 4 (weight 1)")
}

func TestBuild_RunFileAndCompression(t *testing.T) {
	dir := t.TempDir()
	structure := writeStructure(t, dir)
	runFile := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(runFile, []byte(strings.Join([]string{
		"structure: " + structure,
		"cutoff: 1.5",
		"output: {path: " + filepath.Join(dir, "network.yaml") + ", format: yaml}",
	}, "\n")), 0o644))

	_, err := execute(t, "build", "-c", runFile, "--compress")
	require.NoError(t, err)

	compressed := filepath.Join(dir, "network.yaml.sz")
	doc, err := export.ReadFile(compressed)
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 4)

	stdout, err := execute(t, "inspect", compressed)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "cycles")
}

func TestBuild_FailOnWarning(t *testing.T) {
	structure := writeStructure(t, t.TempDir())

	stdout, err := execute(t, "build", "--structure", structure, "--cutoff", "0.5", "--fail-on-warning")
	var warnErr *warningError
	require.True(t, errors.As(err, &warnErr), "got %v", err)
	assert.Equal(t, 1, warnErr.count)
	assert.Contains(t, stdout, "no_start_atoms")

	_, err = execute(t, "build", "--structure", structure, "--cutoff", "0.5")
	assert.NoError(t, err)
}

func TestBuild_Errors(t *testing.T) {
	structure := writeStructure(t, t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no structure", []string{"build", "--cutoff", "1"}, "no structure"},
		{"no cutoff", []string{"build", "--structure", structure}, "cutoff"},
		{"bad axis", []string{"build", "--structure", structure, "--cutoff", "1", "--axis", "3"}, "axis"},
		{"short translation", []string{"build", "--structure", structure, "--cutoff", "1", "--translation", "1,2"}, "--translation"},
		{"missing structure file", []string{"build", "--structure", "/nonexistent.yaml", "--cutoff", "1"}, "nonexistent"},
		{"inspect needs a file", []string{"inspect"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
