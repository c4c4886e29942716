package jsondir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnumerateOrdersUnitsByFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `[{"text":"from b","page_number":1,"filename":"b.pdf"}]`)
	writeFile(t, dir, "a.json", `[{"text":"from a","page_number":1,"filename":"a.pdf"}]`)

	units, warnings, err := New().Enumerate(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, units, 2)
	assert.Equal(t, "a.json", units[0].Name)
	assert.Equal(t, "b.json", units[1].Name)
	assert.Equal(t, "from a", units[0].Records[0].Text)
}

func TestEnumerateResolvesRelativeFilenames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.json", `[{"text":"p1","page_number":1,"filename":"doc.pdf"},{"text":"p2","page_number":2,"filename":"/abs/doc.pdf"}]`)

	units, _, err := New().Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, filepath.Join(dir, "doc.pdf"), units[0].Records[0].Filename)
	assert.Equal(t, "/abs/doc.pdf", units[0].Records[1].Filename)
}

func TestEnumerateReadsSiblingEmbeddings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.json", `[{"text":"p1","page_number":1,"filename":"doc.pdf"},{"text":"p2","page_number":2,"filename":"doc.pdf"}]`)
	writeFile(t, dir, "doc.emb", `[{"embedding":[0.1,0.2]},{"embedding":[0.3,0.4]}]`)

	units, _, err := New().Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Len(t, units[0].Embeddings, 2)
	assert.Equal(t, []float64{0.1, 0.2}, units[0].Embeddings[0])
}

func TestEnumerateWithoutEmbeddingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.json", `[{"text":"p1","page_number":1,"filename":"doc.pdf"}]`)

	units, _, err := New().Enumerate(dir)
	require.NoError(t, err)
	assert.Nil(t, units[0].Embeddings)
}

func TestEnumerateWarnsOnMalformedFileAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{not json`)
	writeFile(t, dir, "good.json", `[{"text":"ok","page_number":1,"filename":"g.pdf"}]`)

	units, warnings, err := New().Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.True(t, strings.Contains(warnings[0], "bad.json"), warnings[0])
	require.Len(t, units, 1)
	assert.Equal(t, "good.json", units[0].Name)
}

func TestEnumerateMissingPageNumber(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.json", `[{"text":"p1","page_number":null,"filename":"doc.pdf"}]`)

	units, _, err := New().Enumerate(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, units[0].Records[0].PageNumber)
}

func TestEnumerateMissingDirectoryIsAnError(t *testing.T) {
	_, _, err := New().Enumerate(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestEnumerateIgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.json", `[{"text":"p1","page_number":1,"filename":"doc.pdf"}]`)
	writeFile(t, dir, "notes.txt", "ignore me")
	writeFile(t, dir, "doc.emb", `[{"embedding":[1]}]`)

	units, warnings, err := New().Enumerate(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, units, 1)
}
