// Package resolve turns free-text title queries into ranked TMDB candidates
// and a confidence-gated best match.
package resolve

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/sourcegraph/conc"

	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/media"
	"github.com/lepinkainen/marquee/internal/textnorm"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d{7,}$`)

// Searcher is the candidate source. *tmdb.Client implements it.
type Searcher interface {
	FindByExternalID(ctx context.Context, externalID string, opts tmdb.SearchOptions) (*media.Candidate, error)
	SearchMulti(ctx context.Context, query string, opts tmdb.SearchOptions) ([]media.Candidate, error)
	SearchMovie(ctx context.Context, query string, opts tmdb.SearchOptions) ([]media.Candidate, error)
	SearchSeries(ctx context.Context, query string, opts tmdb.SearchOptions) ([]media.Candidate, error)
}

// Config holds the resolver's process-level settings.
type Config struct {
	// Token is the TMDB bearer credential. Resolution refuses to run without it.
	Token string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for strategy and scoring diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver ranks candidates for title queries. It holds no per-call state
// and is safe for concurrent use.
type Resolver struct {
	cfg      Config
	searcher Searcher
	logger   *slog.Logger
}

// New creates a Resolver backed by searcher.
func New(cfg Config, searcher Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:      Config{Token: strings.TrimSpace(cfg.Token)},
		searcher: searcher,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of one resolution. ID and Kind are nil when no
// candidate cleared the confidence gate; Results always holds the full
// ranked list.
type Result struct {
	ID      *int              `json:"id"`
	Kind    *media.Kind       `json:"kind"`
	Results []media.Candidate `json:"results"`

	// Strategy names the fetch path that produced Results.
	Strategy string `json:"-"`
}

// Resolved reports whether a best match was emitted.
func (r *Result) Resolved() bool {
	return r != nil && r.ID != nil
}

// Best returns the resolved candidate, or nil when unresolved.
func (r *Result) Best() *media.Candidate {
	if !r.Resolved() || len(r.Results) == 0 {
		return nil
	}
	return &r.Results[0]
}

func unresolved(strategy string, ranked []media.Candidate) *Result {
	if ranked == nil {
		ranked = []media.Candidate{}
	}
	return &Result{Results: ranked, Strategy: strategy}
}

func resolved(strategy string, ranked []media.Candidate) *Result {
	top := ranked[0]
	id, kind := top.ID, top.Kind
	return &Result{ID: &id, Kind: &kind, Results: ranked, Strategy: strategy}
}

// Resolve runs a query: direct external id lookup when possible, otherwise
// one of the search strategies, then scoring, ranking and the gate.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*Result, error) {
	text := strings.TrimSpace(q.Text)
	externalID := strings.TrimSpace(q.ExternalID)

	if text == "" && externalID == "" {
		return nil, marqueeerrors.NewInputError("q", "a title or an IMDb id is required")
	}
	if r.cfg.Token == "" {
		return nil, marqueeerrors.NewConfigError("tmdb.token", "TMDB bearer token is not set")
	}

	allowed := q.Allowed
	if allowed.Empty() {
		allowed = media.AllKinds()
	}
	opts := tmdb.SearchOptions{Language: q.Language, Region: q.Region}

	year := q.Year
	if year == nil {
		if extracted, ok := textnorm.ExtractYear(text); ok {
			year = &extracted
		}
	}

	input := ScoreInput{
		Text:          text,
		Year:          year,
		PreferredKind: q.PreferredKind,
		Keywords:      textnorm.BuildKeywords(q.Description, q.Tags),
	}

	if externalID != "" {
		if imdbIDPattern.MatchString(externalID) {
			found, err := r.searcher.FindByExternalID(ctx, externalID, opts)
			if err != nil {
				return nil, marqueeerrors.NewUpstreamError(tmdb.StrategyFind, err)
			}
			if found != nil {
				hit := *found
				hit.Score = Score(hit, input)
				r.logger.Debug("Resolved by external id",
					"imdb_id", externalID,
					"tmdb_id", hit.ID,
					"kind", hit.Kind,
					"score", hit.Score,
				)
				return resolved(tmdb.StrategyFind, []media.Candidate{hit}), nil
			}
			r.logger.Debug("External id lookup found nothing", "imdb_id", externalID)
		} else {
			r.logger.Debug("Ignoring malformed external id", "imdb_id", externalID)
		}
		if text == "" {
			return unresolved(tmdb.StrategyFind, nil), nil
		}
	}

	strategy, pool, err := r.gather(ctx, text, year, q.PreferredKind, allowed, opts)
	if err != nil {
		return nil, err
	}

	ranked := r.rank(pool, allowed, input)
	if len(ranked) > 0 && ranked[0].Score >= q.MinScore {
		r.logger.Debug("Title resolved",
			"query", text,
			"tmdb_id", ranked[0].ID,
			"kind", ranked[0].Kind,
			"score", ranked[0].Score,
			"min_score", q.MinScore,
		)
		return resolved(strategy, ranked), nil
	}

	if len(ranked) > 0 {
		r.logger.Debug("Best candidate below confidence gate",
			"query", text,
			"score", ranked[0].Score,
			"min_score", q.MinScore,
		)
	}
	return unresolved(strategy, ranked), nil
}

// gather selects and runs the fetch strategy, returning its name and the
// merged candidate pool.
func (r *Resolver) gather(ctx context.Context, text string, year *int, preferred *media.Kind, allowed media.KindSet, opts tmdb.SearchOptions) (string, []media.Candidate, error) {
	typedOpts := opts
	if year != nil {
		typedOpts.Year = *year
	}

	if preferred != nil && allowed.Allows(*preferred) {
		strategy := typedStrategy(*preferred)
		pool, err := r.typedSearch(ctx, *preferred, text, typedOpts)
		if err != nil {
			return strategy, nil, marqueeerrors.NewUpstreamError(strategy, err)
		}
		return strategy, pool, nil
	}

	if year != nil {
		return r.fanOut(ctx, text, allowed, typedOpts)
	}

	pool, err := r.searcher.SearchMulti(ctx, text, opts)
	if err != nil {
		return tmdb.StrategyMulti, nil, marqueeerrors.NewUpstreamError(tmdb.StrategyMulti, err)
	}
	return tmdb.StrategyMulti, pool, nil
}

type branch struct {
	kind    media.Kind
	results []media.Candidate
	err     error
}

// fanOut issues the allowed typed searches concurrently and merges their
// pools, movies first. A failing branch is dropped; the call fails only when
// every branch fails.
func (r *Resolver) fanOut(ctx context.Context, text string, allowed media.KindSet, opts tmdb.SearchOptions) (string, []media.Candidate, error) {
	var branches []*branch
	for _, kind := range []media.Kind{media.KindMovie, media.KindSeries} {
		if allowed.Allows(kind) {
			branches = append(branches, &branch{kind: kind})
		}
	}

	var wg conc.WaitGroup
	for _, b := range branches {
		wg.Go(func() {
			b.results, b.err = r.typedSearch(ctx, b.kind, text, opts)
		})
	}
	wg.Wait()

	names := make([]string, 0, len(branches))
	var (
		pool []media.Candidate
		errs []error
	)
	for _, b := range branches {
		strategy := typedStrategy(b.kind)
		names = append(names, strategy)
		if b.err != nil {
			r.logger.Warn("Typed search failed", "strategy", strategy, "query", text, "error", b.err)
			errs = append(errs, marqueeerrors.NewUpstreamError(strategy, b.err))
			continue
		}
		pool = append(pool, b.results...)
	}

	strategy := strings.Join(names, "+")
	if len(errs) == len(branches) {
		return strategy, nil, errors.Join(errs...)
	}
	return strategy, pool, nil
}

func (r *Resolver) typedSearch(ctx context.Context, kind media.Kind, text string, opts tmdb.SearchOptions) ([]media.Candidate, error) {
	if kind == media.KindSeries {
		return r.searcher.SearchSeries(ctx, text, opts)
	}
	return r.searcher.SearchMovie(ctx, text, opts)
}

func typedStrategy(kind media.Kind) string {
	if kind == media.KindSeries {
		return tmdb.StrategySeries
	}
	return tmdb.StrategyMovie
}

// rank filters pool to the allowed kinds, scores every candidate and sorts
// by descending score. Equal scores keep provider order.
func (r *Resolver) rank(pool []media.Candidate, allowed media.KindSet, input ScoreInput) []media.Candidate {
	ranked := make([]media.Candidate, 0, len(pool))
	for _, c := range pool {
		if !allowed.Allows(c.Kind) {
			continue
		}
		c.Score = Score(c, input)
		r.logger.Debug("Scored candidate",
			"title", c.Title,
			"year", c.YearLabel(),
			"kind", c.Kind,
			"popularity", c.Popularity,
			"score", c.Score,
		)
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
