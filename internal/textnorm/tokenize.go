package textnorm

import (
	"strings"
	"unicode/utf8"
)

// MaxKeywords caps the keyword set built from a description and tags.
const MaxKeywords = 20

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "in": {},
	"to": {}, "with": {}, "for": {}, "on": {}, "at": {}, "by": {}, "from": {},
	"into": {}, "about": {}, "as": {}, "is": {}, "it": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "be": {}, "are": {}, "was": {},
	"were": {},
}

// Tokenize splits s into lower-cased content words. Tokens of two runes or
// fewer and stop words are dropped.
func Tokenize(s string) []string {
	cleaned := nonAlnumRegex.ReplaceAllString(foldDiacritics(strings.ToLower(s)), " ")
	fields := strings.Fields(cleaned)

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) <= 2 {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// BuildKeywords merges description tokens and comma separated tags into a
// deduplicated keyword list. Description tokens come first; tags keep their
// raw lower-cased form.
func BuildKeywords(description, tagsCSV string) []string {
	candidates := Tokenize(description)
	for _, tag := range strings.Split(tagsCSV, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			candidates = append(candidates, tag)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	keywords := make([]string, 0, len(candidates))
	for _, kw := range candidates {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}
