package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/humanlog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lepinkainen/marquee/internal/config"
)

// initLogging installs a human-readable slog handler writing to console and,
// when cfg.File is set, to a size-rotated log file. The returned close
// function flushes the rotating file.
func initLogging(cfg config.LogConfig, console io.Writer) (*slog.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	w := console
	closer := func() error { return nil }
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(console, fileWriter)
		closer = fileWriter.Close
	}

	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if cfg.File != "" {
		logger.Debug("Logging to file", "file", cfg.File)
	}
	return logger, closer, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
