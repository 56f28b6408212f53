package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	Config   string `help:"Path to config file (defaults to ./config.yaml when present)" type:"path"`
	LogLevel string `help:"Override log level (debug, info, warn, error)"`

	Serve   ServeCmd   `cmd:"" help:"Run the title resolution HTTP API"`
	Resolve ResolveCmd `cmd:"" help:"Resolve a single title against TMDB"`
	Batch   BatchCmd   `cmd:"" help:"Resolve every title in a CSV or YAML file"`
	Cache   CacheCmd   `cmd:"" help:"Manage the TMDB search cache"`
}

// appContext is bound into every command's Run method.
type appContext struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Resolve free-text movie and TV titles to TMDB entries."),
		kong.UsageOnError(),
	)

	cfg, err := initConfig(viper.GetViper(), cli.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	logger, closeLog, err := initLogging(cfg.Log, os.Stderr)
	if err != nil {
		slog.Error("Failed to initialise logging", "error", err)
		os.Exit(1)
	}

	err = ctx.Run(&appContext{cfg: cfg, logger: logger, out: os.Stdout})
	_ = closeLog()
	if err != nil {
		if marqueeerrors.IsStopProcessingError(err) {
			slog.Info("Stopped by user", "reason", err)
			return
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// initConfig registers defaults and environment bindings on v, reads the
// config file and returns the resolved configuration. A missing default
// config file is not an error.
func initConfig(v *viper.Viper, path string) (config.Config, error) {
	config.SetDefaults(v)
	if err := config.BindEnv(v); err != nil {
		return config.Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config.Config{}, err
		}
		slog.Debug("Config file not found, using defaults and environment")
	}

	return config.Load(v)
}
