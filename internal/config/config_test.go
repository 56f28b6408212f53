package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TMDB_API_TOKEN", "")
	t.Setenv("MARQUEE_TMDB_TOKEN", "")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Empty(t, cfg.TMDB.Token)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Zero(t, cfg.TMDB.RatePerSecond)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 85.0, cfg.Resolve.MinScore)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_TokenFromEnvironment(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_TOKEN", "")
	t.Setenv("TMDB_API_TOKEN", "  env-token ")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.TMDB.Token)
}

func TestLoad_PrefixedEnvironmentOverrides(t *testing.T) {
	t.Setenv("MARQUEE_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("MARQUEE_RESOLVE_MIN_SCORE", "70")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 70.0, cfg.Resolve.MinScore)
}

func TestLoad_FromYAML(t *testing.T) {
	t.Setenv("TMDB_API_TOKEN", "")
	t.Setenv("MARQUEE_TMDB_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `tmdb:
  token: file-token
  language: fi-FI
  rate_per_second: 4
cache:
  enabled: true
  dbfile: /tmp/marquee-cache.db
  ttl: 2h
log:
  level: DEBUG
  file: /tmp/marquee.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.TMDB.Token)
	assert.Equal(t, "fi-FI", cfg.TMDB.Language)
	assert.Equal(t, 4.0, cfg.TMDB.RatePerSecond)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/marquee-cache.db", cfg.Cache.DBFile)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/marquee.log", cfg.Log.File)
}

func TestLoad_InvalidDuration(t *testing.T) {
	v := newViper(t)
	v.Set("tmdb.timeout", "forever")

	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, marqueeerrors.IsConfigError(err))
	assert.Contains(t, err.Error(), "tmdb.timeout")
}

func TestLoad_CacheEnabledWithoutFile(t *testing.T) {
	v := newViper(t)
	v.Set("cache.enabled", true)
	v.Set("cache.dbfile", "")

	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, marqueeerrors.IsConfigError(err))
}
