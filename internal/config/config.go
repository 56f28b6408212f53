// Package config loads marquee settings from viper into an explicit struct.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
)

// Config is the resolved process configuration.
type Config struct {
	TMDB    TMDBConfig
	Server  ServerConfig
	Cache   CacheConfig
	Resolve ResolveConfig
	Log     LogConfig
}

// TMDBConfig configures the provider client.
type TMDBConfig struct {
	Token         string
	BaseURL       string
	ImageBaseURL  string
	Language      string
	Region        string
	Timeout       time.Duration
	RatePerSecond float64
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string
}

// CacheConfig configures the optional SQLite search cache.
type CacheConfig struct {
	Enabled bool
	DBFile  string
	TTL     time.Duration
}

// ResolveConfig holds resolution defaults.
type ResolveConfig struct {
	MinScore float64
}

// LogConfig controls log level and optional file rotation.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tmdb.token", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.language", "")
	v.SetDefault("tmdb.region", "")
	v.SetDefault("tmdb.timeout", "10s")
	v.SetDefault("tmdb.rate_per_second", 0)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.dbfile", "./cache.db")
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("resolve.min_score", 85)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// BindEnv enables MARQUEE_* environment overrides and the conventional
// TMDB_API_TOKEN variable.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix("marquee")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("tmdb.token", "MARQUEE_TMDB_TOKEN", "TMDB_API_TOKEN"); err != nil {
		return fmt.Errorf("bind tmdb.token: %w", err)
	}
	return nil
}

// Load reads the configuration out of v. Durations that fail to parse are
// reported as configuration errors.
func Load(v *viper.Viper) (Config, error) {
	timeout, err := duration(v, "tmdb.timeout")
	if err != nil {
		return Config{}, err
	}
	ttl, err := duration(v, "cache.ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		TMDB: TMDBConfig{
			Token:         strings.TrimSpace(v.GetString("tmdb.token")),
			BaseURL:       v.GetString("tmdb.base_url"),
			ImageBaseURL:  v.GetString("tmdb.image_base_url"),
			Language:      v.GetString("tmdb.language"),
			Region:        v.GetString("tmdb.region"),
			Timeout:       timeout,
			RatePerSecond: v.GetFloat64("tmdb.rate_per_second"),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			DBFile:  v.GetString("cache.dbfile"),
			TTL:     ttl,
		},
		Resolve: ResolveConfig{
			MinScore: v.GetFloat64("resolve.min_score"),
		},
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("log.level")),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	if cfg.Cache.Enabled && cfg.Cache.DBFile == "" {
		return Config{}, marqueeerrors.NewConfigError("cache.dbfile", "cache is enabled but no database file is set")
	}
	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, marqueeerrors.NewConfigError(key, fmt.Sprintf("invalid duration %q", raw))
	}
	return d, nil
}
