package tmdb

import (
	"strings"

	"github.com/lepinkainen/marquee/internal/media"
)

// cachedFind wraps a find lookup so "not found" can be represented in the
// cache payload.
type cachedFind struct {
	Candidate *media.Candidate `json:"candidate"`
}

// normalizeQuery folds case and whitespace for use in cache keys.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), "_")
}
