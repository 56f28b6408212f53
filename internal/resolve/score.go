package resolve

import (
	"math"
	"strings"

	"github.com/lepinkainen/marquee/internal/media"
	"github.com/lepinkainen/marquee/internal/textnorm"
)

const (
	keywordWeight = 6.0
	keywordBoost  = 1.2
	kindBonus     = 10.0
	popularityCap = 10.0
)

// ScoreInput carries the query-side signals for scoring.
type ScoreInput struct {
	Text          string
	Year          *int
	PreferredKind *media.Kind
	Keywords      []string
}

// titleRule awards points when match holds for the normalized candidate and
// query titles. Rules are tried in order and only the first match counts.
type titleRule struct {
	name   string
	points float64
	match  func(candidate, query string) bool
}

var titleRules = []titleRule{
	{name: "exact", points: 100, match: func(c, q string) bool { return c == q }},
	{name: "prefix", points: 60, match: strings.HasPrefix},
	{name: "contains", points: 40, match: strings.Contains},
}

// Score computes the additive match score of c against in. The result is
// not written back to c.
func Score(c media.Candidate, in ScoreInput) float64 {
	return titleScore(c.Title, in.Text) +
		yearScore(c.Year, in.Year) +
		kindScore(c.Kind, in.PreferredKind) +
		popularityScore(c.Popularity) +
		keywordScore(c.Title, in.Keywords)
}

func titleScore(title, text string) float64 {
	query := textnorm.NormalizeTitle(text)
	if query == "" {
		return 0
	}
	candidate := textnorm.NormalizeTitle(title)
	for _, rule := range titleRules {
		if rule.match(candidate, query) {
			return rule.points
		}
	}
	return 0
}

func yearScore(candidate, query *int) float64 {
	if candidate == nil || query == nil {
		return 0
	}
	delta := *candidate - *query
	if delta < 0 {
		delta = -delta
	}
	switch delta {
	case 0:
		return 35
	case 1:
		return 20
	case 2:
		return 10
	default:
		return -float64(delta)
	}
}

func kindScore(candidate media.Kind, preferred *media.Kind) float64 {
	if preferred != nil && *preferred == candidate {
		return kindBonus
	}
	return 0
}

func popularityScore(popularity float64) float64 {
	if math.IsNaN(popularity) || popularity <= 0 {
		return 0
	}
	return math.Min(popularityCap, popularity/50)
}

// keywordScore counts keywords present as whole tokens of the title. The
// overview is not consulted.
func keywordScore(title string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	tokens := make(map[string]struct{})
	for _, token := range textnorm.Tokenize(title) {
		tokens[token] = struct{}{}
	}
	hits := 0
	for _, keyword := range keywords {
		if _, ok := tokens[keyword]; ok {
			hits++
		}
	}
	return float64(hits) * keywordWeight * keywordBoost
}
