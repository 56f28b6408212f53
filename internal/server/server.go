// Package server exposes title resolution over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lepinkainen/marquee/internal/resolve"
)

const shutdownTimeout = 10 * time.Second

// Resolver is the resolution engine the routes delegate to.
type Resolver interface {
	Resolve(ctx context.Context, q resolve.Query) (*resolve.Result, error)
}

// Options configures the router.
type Options struct {
	// MinScore replaces resolve.DefaultMinScore when a request sets none.
	MinScore float64
	// Language and Region apply when a request omits them.
	Language string
	Region   string
	Logger   *slog.Logger
}

// NewRouter builds the mux router with every route and middleware attached.
func NewRouter(resolver Resolver, opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = resolve.DefaultMinScore
	}

	h := &handler{
		resolver: resolver,
		minScore: minScore,
		language: opts.Language,
		region:   opts.Region,
		logger:   logger,
	}

	r := mux.NewRouter()
	r.Use(requestID, accessLog(logger))
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/api/resolve", h.resolve).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
