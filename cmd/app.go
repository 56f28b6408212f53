package cmd

import (
	"fmt"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/ratelimit"
	"github.com/lepinkainen/marquee/internal/resolve"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// newResolver wires the TMDB client (with optional cache and rate limit)
// into a Resolver. The returned cleanup closes the cache.
func (a *appContext) newResolver() (*resolve.Resolver, func(), error) {
	cfg := a.cfg
	opts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRateLimiter(ratelimit.New("tmdb", cfg.TMDB.RatePerSecond)),
		tmdb.WithLogger(a.logger),
	}

	var db *cache.DB
	if cfg.Cache.Enabled {
		var err error
		db, err = cache.Open(cfg.Cache.DBFile, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		opts = append(opts, tmdb.WithCache(db))
		a.logger.Debug("TMDB search cache enabled", "dbfile", db.Path(), "ttl", db.TTL())
	}

	client := tmdb.NewClient(cfg.TMDB.Token, opts...)
	r := resolve.New(resolve.Config{Token: cfg.TMDB.Token}, client, resolve.WithLogger(a.logger))
	return r, func() { _ = db.Close() }, nil
}

// defaultQuery carries the configured gate and locale.
func (a *appContext) defaultQuery() resolve.Query {
	q := resolve.NewQuery("")
	if a.cfg.Resolve.MinScore > 0 {
		q.MinScore = a.cfg.Resolve.MinScore
	}
	q.Language = a.cfg.TMDB.Language
	q.Region = a.cfg.TMDB.Region
	return q
}
