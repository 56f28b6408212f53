package tmdb

import (
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/media"
)

// SearchOptions contains optional parameters shared by the search endpoints.
type SearchOptions struct {
	Year     int
	Language string
	Region   string
}

func (o SearchOptions) cacheKey() string {
	var b strings.Builder
	b.WriteString("y=")
	b.WriteString(strconv.Itoa(o.Year))
	b.WriteString("|l=")
	b.WriteString(strings.ToLower(o.Language))
	b.WriteString("|r=")
	b.WriteString(strings.ToLower(o.Region))
	return b.String()
}

// rawHit is a single result as TMDB returns it. Movies populate title and
// release_date, series populate name and first_air_date; multi search adds
// media_type and may return people.
type rawHit struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
}

type searchResponse struct {
	Results []rawHit `json:"results"`
}

type findResponse struct {
	MovieResults []rawHit `json:"movie_results"`
	TVResults    []rawHit `json:"tv_results"`
}

// kind classifies the hit. The explicit media_type tag wins; untagged hits
// are classified by which name/date pair is populated. People and
// unclassifiable hits report false.
func (h rawHit) kind() (media.Kind, bool) {
	switch strings.ToLower(h.MediaType) {
	case "movie":
		return media.KindMovie, true
	case "tv":
		return media.KindSeries, true
	case "":
	default:
		return "", false
	}

	switch {
	case h.Title != "" || h.ReleaseDate != "":
		return media.KindMovie, true
	case h.Name != "" || h.FirstAirDate != "":
		return media.KindSeries, true
	default:
		return "", false
	}
}

// candidate converts the hit into the normalized Candidate for kind.
func (c *Client) candidate(h rawHit, kind media.Kind) media.Candidate {
	title, date := h.Title, h.ReleaseDate
	if kind == media.KindSeries {
		title, date = h.Name, h.FirstAirDate
	}
	if title == "" {
		title = firstNonEmpty(h.Title, h.Name)
	}

	return media.Candidate{
		ID:         h.ID,
		Title:      title,
		Kind:       kind,
		Year:       media.YearFromDate(date),
		Poster:     c.PosterURL(h.PosterPath),
		Backdrop:   c.BackdropURL(h.BackdropPath),
		Popularity: h.Popularity,
		Overview:   h.Overview,
	}
}

// candidates decodes a typed result list. When kind is empty each hit is
// classified individually and people are dropped.
func (c *Client) candidates(hits []rawHit, kind media.Kind) []media.Candidate {
	out := make([]media.Candidate, 0, len(hits))
	for _, h := range hits {
		k := kind
		if k == "" {
			var ok bool
			if k, ok = h.kind(); !ok {
				continue
			}
		}
		out = append(out, c.candidate(h, k))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
