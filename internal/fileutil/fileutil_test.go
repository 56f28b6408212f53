package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/testutil"
)

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.WriteFileString("a.txt", "x")

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(env.Path("missing.txt")))
	assert.False(t, FileExists(env.RootDir()), "directories are not files")
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("out", "report.json")

	written, err := WriteJSONFile(map[string]int{"resolved": 2}, path, false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "{\n  \"resolved\": 2\n}\n", string(env.ReadFile("out/report.json")))

	written, err = WriteJSONFile(map[string]int{"resolved": 3}, path, false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Contains(t, string(env.ReadFile("out/report.json")), "2")

	written, err = WriteJSONFile(map[string]int{"resolved": 3}, path, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, string(env.ReadFile("out/report.json")), "3")
}

func TestWriteJSONFile_MarshalError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")

	_, err := WriteJSONFile(map[string]any{"ch": make(chan int)}, path, true)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
