package resolve

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/media"
)

// DefaultMinScore is the confidence gate applied when a query sets none.
const DefaultMinScore = 85.0

// Query is one title-resolution request.
type Query struct {
	Text          string
	ExternalID    string
	PreferredKind *media.Kind
	Allowed       media.KindSet
	Year          *int
	Description   string
	Tags          string
	Language      string
	Region        string
	MinScore      float64
}

// NewQuery returns a text query with every kind allowed and the default gate.
func NewQuery(text string) Query {
	return Query{
		Text:     text,
		Allowed:  media.AllKinds(),
		MinScore: DefaultMinScore,
	}
}

// ParseParams reads the flat parameter set used by the HTTP route:
// q, kind, types, year, imdbId, language, region, desc, tags and minScore.
// Unknown kinds and unparseable numbers are treated as absent.
func ParseParams(values url.Values) Query {
	q := NewQuery(strings.TrimSpace(values.Get("q")))
	q.ExternalID = strings.TrimSpace(values.Get("imdbId"))
	q.Allowed = media.ParseKindSet(values.Get("types"))
	q.Description = values.Get("desc")
	q.Tags = values.Get("tags")
	q.Language = strings.TrimSpace(values.Get("language"))
	q.Region = strings.TrimSpace(values.Get("region"))

	if raw := values.Get("kind"); raw != "" {
		if kind, err := media.ParseKind(raw); err == nil {
			q.PreferredKind = &kind
		}
	}
	if year, ok := parseYear(values.Get("year")); ok {
		q.Year = &year
	}
	if raw := strings.TrimSpace(values.Get("minScore")); raw != "" {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MinScore = score
		}
	}
	return q
}

func parseYear(raw string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
