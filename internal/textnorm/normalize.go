// Package textnorm normalizes free text for title comparison and keyword matching.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	apostropheRegex  = regexp.MustCompile("['`‘’ʼ]")
	nonAlnumRegex    = regexp.MustCompile(`[^a-z0-9]+`)
	articleRegex     = regexp.MustCompile(`\b(the|a|an)\b`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
	yearRegex        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	diacriticsFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeTitle reduces a title to a form suitable for equality and prefix
// checks. The output is never meant for display.
func NormalizeTitle(s string) string {
	out := foldDiacritics(strings.ToLower(s))
	out = strings.ReplaceAll(out, "&", "and")
	out = apostropheRegex.ReplaceAllString(out, "")
	out = nonAlnumRegex.ReplaceAllString(out, " ")
	out = articleRegex.ReplaceAllString(out, " ")
	out = multiSpaceRegex.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// ExtractYear returns the first standalone 19xx/20xx year in s.
func ExtractYear(s string) (int, bool) {
	match := yearRegex.FindString(s)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

func foldDiacritics(s string) string {
	out, _, err := transform.String(diacriticsFolder, s)
	if err != nil {
		return s
	}
	return out
}
