package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "leading article", input: "The Wire", want: "wire"},
		{name: "no article", input: "Wire", want: "wire"},
		{name: "ampersand", input: "Law & Order", want: "law and order"},
		{name: "apostrophe stripped", input: "Schitt's Creek", want: "schitts creek"},
		{name: "typographic apostrophe", input: "Ocean’s Eleven", want: "oceans eleven"},
		{name: "backtick", input: "Don`t Look Up", want: "dont look up"},
		{name: "punctuation runs", input: "Mission: Impossible -- Fallout!", want: "mission impossible fallout"},
		{name: "inner articles", input: "A Man Called an Otto", want: "man called otto"},
		{name: "article inside word kept", input: "Theater Camp", want: "theater camp"},
		{name: "diacritics folded", input: "Amélie", want: "amelie"},
		{name: "whitespace", input: "   Dune    Part   Two  ", want: "dune part two"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.input))
		})
	}
}

func TestNormalizeTitle_ArticleEquivalence(t *testing.T) {
	assert.Equal(t, NormalizeTitle("The Wire"), NormalizeTitle("Wire"))
}

func TestExtractYear(t *testing.T) {
	year, ok := ExtractYear("Dune Part Two 2024")
	assert.True(t, ok)
	assert.Equal(t, 2024, year)

	_, ok = ExtractYear("no year here")
	assert.False(t, ok)

	year, ok = ExtractYear("Alien (1979) remastered 2003")
	assert.True(t, ok)
	assert.Equal(t, 1979, year, "first match wins")

	_, ok = ExtractYear("Room 2012x")
	assert.False(t, ok, "year must be word bounded")

	_, ok = ExtractYear("Episode 2150")
	assert.False(t, ok, "only 19xx and 20xx count")
}
