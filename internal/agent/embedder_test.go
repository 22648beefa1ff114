package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedderIndexAndSearch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weather.md"),
		[]byte("The forecast service reports temperature and wind conditions."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "billing.txt"),
		[]byte("Invoices are generated monthly and sent to the billing address."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.bin"),
		[]byte{0x00, 0x01}, 0o644))

	e := NewEmbedder(nil)
	require.NoError(t, e.Index(dir))

	results, err := e.Search("monthly invoices billing", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "billing.txt", results[0].Filename)
}

func TestEmbedderMissingDirectory(t *testing.T) {
	e := NewEmbedder(nil)
	require.NoError(t, e.Index(filepath.Join(t.TempDir(), "does-not-exist")))

	results, err := e.Search("anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSplitChunks(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph\n\nthird paragraph"

	chunks := splitChunks(text, 20)
	require.Len(t, chunks, 3)
	assert.Equal(t, "first paragraph", chunks[0])

	whole := splitChunks(text, 1000)
	require.Len(t, whole, 1)
}
