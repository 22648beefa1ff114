package functions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	fd := NewReadFile()
	require.Equal(t, "read_file", fd.Name)

	out, err := fd.FunctionCall(context.Background(), map[string]any{"path": path})
	require.NoError(t, err)
	assert.Equal(t, path, out["path"])
	assert.Equal(t, "hello world", out["content"])
}

func TestReadFileMissingArgument(t *testing.T) {
	fd := NewReadFile()

	_, err := fd.FunctionCall(context.Background(), map[string]any{})
	assert.Error(t, err)

	_, err = fd.FunctionCall(context.Background(), map[string]any{"path": 7})
	assert.Error(t, err)
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	fd := NewListDir()
	out, err := fd.FunctionCall(context.Background(), map[string]any{"path": dir})
	require.NoError(t, err)

	entries := out["entries"].([]any)
	assert.Contains(t, entries, "a.txt")
	assert.Contains(t, entries, "sub"+string(filepath.Separator))
}

func TestListDirMissingDirectory(t *testing.T) {
	fd := NewListDir()
	_, err := fd.FunctionCall(context.Background(), map[string]any{"path": filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}
