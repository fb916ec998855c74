package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"-q"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSampleCommand(t *testing.T) {
	out, err := run(t, "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Blueprint Overview")
}

func TestResolveJSON(t *testing.T) {
	out, err := run(t, "resolve", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Title  string `json:"title"`
		Panels []struct {
			ID   string `json:"id"`
			Plan struct {
				Kind           string   `json:"kind"`
				CategoryLabels []string `json:"categoryLabels"`
			} `json:"plan"`
		} `json:"panels"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Blueprint Overview", decoded.Title)
	require.Len(t, decoded.Panels, 4)
	assert.Equal(t, "line", decoded.Panels[0].Plan.Kind)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, decoded.Panels[0].Plan.CategoryLabels)
}

func TestResolveCSV(t *testing.T) {
	out, err := run(t, "resolve", "--format", "csv", "-c", "categories", "-c", "inventory")
	require.NoError(t, err)
	assert.Contains(t, out, "Essential Supplements,45,Essential Supplements (45%)")
	assert.Contains(t, out, "Product,In Stock,Reorder Point")
	assert.Contains(t, out, "Omega-3,145,191")
	assert.NotContains(t, out, "Product Revenue")
}

func TestResolveOtherFormats(t *testing.T) {
	out, err := run(t, "resolve", "--format", "yaml", "-c", "revenue")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Product Revenue")

	out, err = run(t, "resolve", "--format", "dump", "-c", "revenue")
	require.NoError(t, err)
	assert.Contains(t, out, "Product Revenue")

	_, err = run(t, "resolve", "--format", "xml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "categories")

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Broken
datasets:
  d: {records: [{a: x, b: 1}]}
charts:
  - id: bad
    dataset: d
    kind: bar
    palette: []
    series: [{field: a, role: category}, {field: b, role: primary}]
`), 0o644))

	out, err = run(t, "validate", "-d", path)
	require.Error(t, err)
	assert.Contains(t, out, "palette")
}

func TestRenderText(t *testing.T) {
	out, err := run(t, "render", "--format", "text", "-c", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Category Distribution")
}

func TestRenderHTMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overview.html")
	_, err := run(t, "render", "--format", "html", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Inventory Levels")
}

func TestRenderImages(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "render", "--format", "png", "-o", dir)
	require.NoError(t, err)

	for _, id := range []string{"revenue", "categories", "segments", "inventory"} {
		assert.FileExists(t, filepath.Join(dir, id+".png"))
	}

	single := filepath.Join(dir, "pie.svg")
	_, err = run(t, "render", "--format", "svg", "-c", "categories", "-o", single)
	require.NoError(t, err)
	assert.FileExists(t, single)

	_, err = run(t, "render", "--format", "png")
	assert.Error(t, err, "--out is required")
}
