package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lepinkainen/marquee/internal/server"
)

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(app *appContext) error {
	resolver, cleanup, err := app.newResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	if app.cfg.TMDB.Token == "" {
		app.logger.Warn("TMDB token is not configured; resolve requests will fail until TMDB_API_TOKEN is set")
	}

	addr := s.Addr
	if addr == "" {
		addr = app.cfg.Server.Addr
	}

	defaults := app.defaultQuery()
	router := server.NewRouter(resolver, server.Options{
		MinScore: defaults.MinScore,
		Language: defaults.Language,
		Region:   defaults.Region,
		Logger:   app.logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, addr, router, app.logger)
}
