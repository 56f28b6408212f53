package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/lepinkainen/marquee/internal/media"
	"github.com/lepinkainen/marquee/internal/resolve"
	"github.com/lepinkainen/marquee/internal/tui"
)

var selectCandidate = tui.Select

// ResolveCmd resolves one title.
type ResolveCmd struct {
	Title       string  `arg:"" optional:"" help:"Free-text title, may include a year"`
	Year        int     `help:"Release or first-air year"`
	IMDbID      string  `name:"imdb-id" help:"IMDb id (tt1234567) for a direct lookup"`
	Kind        string  `help:"Preferred kind (movie or tv)"`
	Types       string  `help:"Allowed kinds, comma separated (movie,tv)"`
	Description string  `name:"desc" help:"Description used for keyword matching"`
	Tags        string  `help:"Comma separated tags used for keyword matching"`
	Language    string  `help:"TMDB language (e.g. en-US)"`
	Region      string  `help:"TMDB region (e.g. US)"`
	MinScore    float64 `help:"Confidence gate (defaults to resolve.min_score)"`
	JSON        bool    `help:"Print the result as JSON"`
	Interactive bool    `short:"i" help:"Pick from the ranked list when no confident match is found"`
}

// query builds the flat parameter set the HTTP route accepts so both entry
// points parse identically.
func (r *ResolveCmd) query(defaults resolve.Query) resolve.Query {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("q", r.Title)
	set("imdbId", r.IMDbID)
	set("kind", r.Kind)
	set("types", r.Types)
	set("desc", r.Description)
	set("tags", r.Tags)
	set("language", firstNonEmpty(r.Language, defaults.Language))
	set("region", firstNonEmpty(r.Region, defaults.Region))
	if r.Year > 0 {
		values.Set("year", strconv.Itoa(r.Year))
	}

	q := resolve.ParseParams(values)
	q.MinScore = defaults.MinScore
	if r.MinScore > 0 {
		q.MinScore = r.MinScore
	}
	return q
}

func (r *ResolveCmd) Run(app *appContext) error {
	resolver, cleanup, err := app.newResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	q := r.query(app.defaultQuery())
	result, err := resolver.Resolve(context.Background(), q)
	if err != nil {
		return err
	}

	if !result.Resolved() && r.Interactive && len(result.Results) > 0 {
		selection, err := selectCandidate(q.Text, result.Results, q.MinScore)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		if selection.Action == tui.ActionSelected && selection.Selection != nil {
			id, kind := selection.Selection.ID, selection.Selection.Kind
			result.ID, result.Kind = &id, &kind
		}
	}

	if r.JSON {
		enc := json.NewEncoder(app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printResult(app.out, result, q.MinScore)
}

func printResult(w io.Writer, result *resolve.Result, minScore float64) error {
	if result.ID != nil {
		if _, err := fmt.Fprintf(w, "Resolved: tmdb:%d (%s)\n", *result.ID, *result.Kind); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "No confident match (gate %.0f)\n", minScore); err != nil {
			return err
		}
	}
	for i, c := range result.Results {
		if _, err := fmt.Fprintf(w, "%2d. %-6.1f [%s] %s (%s) tmdb:%d\n", i+1, c.Score, kindTag(c.Kind), c.Title, c.YearLabel(), c.ID); err != nil {
			return err
		}
	}
	return nil
}

func kindTag(k media.Kind) string {
	if k == media.KindSeries {
		return "tv"
	}
	return "movie"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
