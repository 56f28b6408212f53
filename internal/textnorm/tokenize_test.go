package textnorm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("The office workers are trapped in a mysterious corporate SPLIT!")
	assert.Equal(t, []string{"office", "workers", "trapped", "mysterious", "corporate", "split"}, got)
}

func TestTokenize_DropsShortTokensAndStopWords(t *testing.T) {
	assert.Empty(t, Tokenize("it is an ox, to be or"))
	assert.Equal(t, []string{"fox"}, Tokenize("ox fox"))
}

func TestBuildKeywords_OrderAndDedup(t *testing.T) {
	got := BuildKeywords("Heist crew plans a heist", " Crime, thriller ,, heist ")
	assert.Equal(t, []string{"heist", "crew", "plans", "crime", "thriller"}, got)
}

func TestBuildKeywords_TagsKeepRawForm(t *testing.T) {
	got := BuildKeywords("", "Sci-Fi,  Time Travel")
	assert.Equal(t, []string{"sci-fi", "time travel"}, got)
}

func TestBuildKeywords_Capped(t *testing.T) {
	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		words = append(words, fmt.Sprintf("word%02d", i))
	}
	got := BuildKeywords(strings.Join(words, " "), "extra")
	assert.Len(t, got, MaxKeywords)
	assert.Equal(t, "word00", got[0])
	assert.NotContains(t, got, "extra")
}

func TestBuildKeywords_Empty(t *testing.T) {
	assert.Empty(t, BuildKeywords("", ""))
}
