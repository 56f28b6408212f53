package cache

// All cache tables share the same shape: cache_key, JSON data and the time
// the row was written.

// SearchCacheSchema holds TMDB title search results keyed by strategy,
// normalized query, year and locale.
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS tmdb_search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tmdb_search_cached_at ON tmdb_search_cache(cached_at);
`

// FindCacheSchema holds external id lookups.
const FindCacheSchema = `
CREATE TABLE IF NOT EXISTS tmdb_find_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tmdb_find_cached_at ON tmdb_find_cache(cached_at);
`

const (
	// SearchTable is the table name for search results.
	SearchTable = "tmdb_search_cache"
	// FindTable is the table name for external id lookups.
	FindTable = "tmdb_find_cache"
)

// AllCacheSchemas contains every table schema created by Open.
var AllCacheSchemas = []string{
	SearchCacheSchema,
	FindCacheSchema,
}

// ValidCacheTableNames whitelists table names that may be interpolated
// into SQL.
var ValidCacheTableNames = map[string]bool{
	SearchTable: true,
	FindTable:   true,
}

// TablesForSource maps a user facing source name onto cache tables.
var TablesForSource = map[string][]string{
	"search": {SearchTable},
	"find":   {FindTable},
	"all":    {SearchTable, FindTable},
}
