package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func setupTestCache(t *testing.T, ttl time.Duration) *DB {
	t.Helper()

	env := testutil.NewTestEnv(t)
	db, err := Open(filepath.Join(env.RootDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setCachedAt(t *testing.T, c *DB, tableName, key string, at time.Time) {
	t.Helper()

	_, err := c.db.Exec("UPDATE "+tableName+" SET cached_at = ? WHERE cache_key = ?", at.UTC(), key)
	require.NoError(t, err)
}

func TestOpen_DefaultTTL(t *testing.T) {
	c := setupTestCache(t, 0)
	assert.Equal(t, DefaultCacheTTL, c.TTL())
	assert.Contains(t, c.Path(), "cache.db")
}

func TestGetSet(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	_, hit, err := c.Get(SearchTable, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(SearchTable, "k", `{"id":1}`))

	data, hit, err := c.Get(SearchTable, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"id":1}`, data)
}

func TestGet_Expired(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	require.NoError(t, c.Set(FindTable, "tt0944947", `{}`))
	setCachedAt(t, c, FindTable, "tt0944947", time.Now().Add(-2*time.Hour))

	_, hit, err := c.Get(FindTable, "tt0944947")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidTableName(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	_, _, err := c.Get("users; DROP TABLE x", "k")
	assert.Error(t, err)
	assert.Error(t, c.Set("nope", "k", "v"))
	_, err = c.Invalidate("nope")
	assert.Error(t, err)
}

func TestInvalidate(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	require.NoError(t, c.Set(SearchTable, "a", "1"))
	require.NoError(t, c.Set(SearchTable, "b", "2"))
	require.NoError(t, c.Set(FindTable, "c", "3"))

	rows, err := c.Invalidate(SearchTable)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	_, hit, err := c.Get(FindTable, "c")
	require.NoError(t, err)
	assert.True(t, hit, "other tables are untouched")
}

func TestClearExpired(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	require.NoError(t, c.Set(SearchTable, "old", "1"))
	require.NoError(t, c.Set(SearchTable, "new", "2"))
	setCachedAt(t, c, SearchTable, "old", time.Now().Add(-3*time.Hour))

	rows, err := c.ClearExpired(SearchTable)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, hit, err := c.Get(SearchTable, "new")
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestGetOrFetch_MissThenHit(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	calls := 0
	fetch := func() (*testData, error) {
		calls++
		return &testData{ID: 7, Name: "Severance"}, nil
	}

	got, hit, err := GetOrFetch(c, SearchTable, "severance", fetch, nil)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Severance", got.Name)

	got, hit, err = GetOrFetch(c, SearchTable, "severance", fetch, nil)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, 1, calls)
}

func TestGetOrFetch_PolicySkipsStore(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	calls := 0
	fetch := func() ([]testData, error) {
		calls++
		return nil, nil
	}
	nonEmpty := func(v []testData) bool { return len(v) > 0 }

	_, _, err := GetOrFetch(c, SearchTable, "empty", fetch, nonEmpty)
	require.NoError(t, err)
	_, hit, err := GetOrFetch(c, SearchTable, "empty", fetch, nonEmpty)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetch_FetchError(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	boom := errors.New("boom")
	_, _, err := GetOrFetch(c, SearchTable, "k", func() (int, error) { return 0, boom }, nil)
	assert.ErrorIs(t, err, boom)

	_, hit, err := c.Get(SearchTable, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestGetOrFetch_NilDBFetchesDirectly(t *testing.T) {
	calls := 0
	for i := 0; i < 2; i++ {
		v, hit, err := GetOrFetch[int](nil, SearchTable, "k", func() (int, error) {
			calls++
			return 42, nil
		}, nil)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 2, calls)
}
