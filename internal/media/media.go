// Package media defines the normalized search candidate shared by the TMDB
// fetchers, the resolver and its presentation layers.
package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the two-valued media type distinction.
type Kind string

const (
	// KindMovie is a feature film.
	KindMovie Kind = "movie"
	// KindSeries is an episodic show. TMDB calls it "tv".
	KindSeries Kind = "tv"
)

// ParseKind maps user or provider input onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film":
		return KindMovie, nil
	case "tv", "series", "show", "shows":
		return KindSeries, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// String returns the wire value of the kind.
func (k Kind) String() string { return string(k) }

// KindSet is an allow-list of kinds. The zero value allows nothing; use
// AllKinds or ParseKindSet.
type KindSet struct {
	Movie  bool
	Series bool
}

// AllKinds allows both movies and series.
func AllKinds() KindSet {
	return KindSet{Movie: true, Series: true}
}

// ParseKindSet parses a comma separated list such as "movie,tv". Unknown
// entries are ignored; an input naming no known kind allows everything.
func ParseKindSet(csv string) KindSet {
	var set KindSet
	for _, part := range strings.Split(csv, ",") {
		kind, err := ParseKind(part)
		if err != nil {
			continue
		}
		set = set.With(kind)
	}
	if set.Empty() {
		return AllKinds()
	}
	return set
}

// With returns a copy of s that also allows k.
func (s KindSet) With(k Kind) KindSet {
	switch k {
	case KindMovie:
		s.Movie = true
	case KindSeries:
		s.Series = true
	}
	return s
}

// Allows reports whether k is permitted.
func (s KindSet) Allows(k Kind) bool {
	switch k {
	case KindMovie:
		return s.Movie
	case KindSeries:
		return s.Series
	default:
		return false
	}
}

// Empty reports whether no kind is permitted.
func (s KindSet) Empty() bool {
	return !s.Movie && !s.Series
}

// Candidate is one normalized search hit.
type Candidate struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Kind       Kind    `json:"kind"`
	Year       *int    `json:"year"`
	Poster     *string `json:"poster"`
	Backdrop   *string `json:"backdrop"`
	Popularity float64 `json:"popularity"`
	Overview   string  `json:"overview,omitempty"`
	Score      float64 `json:"score"`
}

// YearFromDate parses the year from a YYYY-MM-DD style date. Returns nil when
// the first four characters are not a number.
func YearFromDate(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}

// YearLabel formats the candidate year for display.
func (c Candidate) YearLabel() string {
	if c.Year == nil {
		return "Unknown"
	}
	return strconv.Itoa(*c.Year)
}
