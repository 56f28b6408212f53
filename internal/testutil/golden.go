package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden compares output with files under a testdata directory. Setting
// UPDATE_GOLDEN=true rewrites the files instead.
type Golden struct {
	t      *testing.T
	dir    string
	update bool
}

// NewGolden returns a helper rooted at dir.
func NewGolden(t *testing.T, dir string) *Golden {
	t.Helper()
	return &Golden{t: t, dir: dir, update: os.Getenv("UPDATE_GOLDEN") == "true"}
}

// Path returns the location of the named golden file.
func (g *Golden) Path(name string) string {
	return filepath.Join(g.dir, name)
}

// AssertJSON compares actual with the golden file, ignoring formatting.
func (g *Golden) AssertJSON(name string, actual []byte) {
	g.t.Helper()
	if g.write(name, actual) {
		return
	}
	assert.JSONEq(g.t, string(g.read(name)), string(actual), "JSON does not match golden file %s", name)
}

// AssertString compares actual with the golden file byte for byte.
func (g *Golden) AssertString(name, actual string) {
	g.t.Helper()
	if g.write(name, []byte(actual)) {
		return
	}
	assert.Equal(g.t, string(g.read(name)), actual, "content does not match golden file %s", name)
}

func (g *Golden) write(name string, actual []byte) bool {
	g.t.Helper()
	if !g.update {
		return false
	}
	path := g.Path(name)
	require.NoError(g.t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create golden directory")
	require.NoError(g.t, os.WriteFile(path, actual, 0o644), "failed to update golden file")
	g.t.Logf("Updated golden file: %s", path)
	return true
}

func (g *Golden) read(name string) []byte {
	g.t.Helper()
	data, err := os.ReadFile(g.Path(name))
	require.NoError(g.t, err, "failed to read golden file %s", name)
	return data
}
