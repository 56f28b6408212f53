package cmd

import (
	"fmt"

	"github.com/lepinkainen/marquee/internal/cache"
)

// CacheCmd groups cache maintenance commands.
type CacheCmd struct {
	Invalidate CacheInvalidateCmd `cmd:"" help:"Delete cached TMDB responses"`
	Prune      CachePruneCmd      `cmd:"" help:"Delete cached TMDB responses older than cache.ttl"`
}

// CacheInvalidateCmd clears one or all cache tables.
type CacheInvalidateCmd struct {
	Source string `arg:"" optional:"" enum:"search,find,all" default:"all" help:"Which cache to clear (search, find, all)"`
}

// CachePruneCmd removes expired rows.
type CachePruneCmd struct{}

func (c *CacheInvalidateCmd) Run(app *appContext) error {
	return withCache(app, c.Source, func(db *cache.DB, table string) (int64, error) {
		return db.Invalidate(table)
	}, "Cache invalidated")
}

func (c *CachePruneCmd) Run(app *appContext) error {
	return withCache(app, "all", func(db *cache.DB, table string) (int64, error) {
		return db.ClearExpired(table)
	}, "Expired cache entries removed")
}

func withCache(app *appContext, source string, op func(*cache.DB, string) (int64, error), message string) error {
	tables, ok := cache.TablesForSource[source]
	if !ok {
		return fmt.Errorf("unknown cache source %q", source)
	}

	db, err := cache.Open(app.cfg.Cache.DBFile, app.cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range tables {
		rows, err := op(db, table)
		if err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
		app.logger.Info(message, "table", table, "rows", rows)
		if _, err := fmt.Fprintf(app.out, "%s: %d rows\n", table, rows); err != nil {
			return err
		}
	}
	return nil
}
