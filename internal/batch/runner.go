package batch

import (
	"context"
	"fmt"
	"log/slog"

	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/media"
	"github.com/lepinkainen/marquee/internal/resolve"
	"github.com/lepinkainen/marquee/internal/tui"
)

// Entry statuses.
const (
	StatusResolved   = "resolved"
	StatusSelected   = "selected"
	StatusUnresolved = "unresolved"
	StatusSkipped    = "skipped"
	StatusFailed     = "failed"
)

// Resolver resolves a single query.
type Resolver interface {
	Resolve(ctx context.Context, q resolve.Query) (*resolve.Result, error)
}

// Selector asks the user to pick among ranked candidates.
type Selector func(query string, candidates []media.Candidate, minScore float64) (tui.SelectionResult, error)

// Entry is the outcome for one item.
type Entry struct {
	Item       Item        `json:"item"`
	Status     string      `json:"status"`
	ID         *int        `json:"id"`
	Kind       *media.Kind `json:"kind"`
	Title      string      `json:"title,omitempty"`
	Score      float64     `json:"score,omitempty"`
	Candidates int         `json:"candidates"`
	Error      string      `json:"error,omitempty"`
}

// Report summarizes a batch run.
type Report struct {
	Total      int     `json:"total"`
	Resolved   int     `json:"resolved"`
	Selected   int     `json:"selected"`
	Unresolved int     `json:"unresolved"`
	Skipped    int     `json:"skipped"`
	Failed     int     `json:"failed"`
	Entries    []Entry `json:"entries"`
}

func (r *Report) add(e Entry) {
	r.Entries = append(r.Entries, e)
	r.Total++
	switch e.Status {
	case StatusResolved:
		r.Resolved++
	case StatusSelected:
		r.Selected++
	case StatusUnresolved:
		r.Unresolved++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Runner resolves items one after another.
type Runner struct {
	resolver Resolver
	defaults resolve.Query
	selector Selector
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithSelector enables interactive selection for unresolved items.
func WithSelector(s Selector) Option {
	return func(r *Runner) { r.selector = s }
}

// WithLogger sets the logger for per-item progress.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner. defaults carries the gate and locale applied
// to every item.
func NewRunner(resolver Resolver, defaults resolve.Query, opts ...Option) *Runner {
	r := &Runner{resolver: resolver, defaults: defaults, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves every item. Per-item input and upstream failures are recorded
// in the report. A configuration error, cancellation or the user stopping
// the selection UI ends the run; the partial report is still returned.
func (r *Runner) Run(ctx context.Context, items []Item) (*Report, error) {
	report := &Report{Entries: make([]Entry, 0, len(items))}

	for idx, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		entry, err := r.runItem(ctx, item)
		if err != nil {
			return report, err
		}
		report.add(entry)

		r.logger.Info("Processed item",
			"progress", fmt.Sprintf("%d/%d", idx+1, len(items)),
			"item", item.Label(),
			"status", entry.Status,
			"tmdb_id", derefInt(entry.ID),
		)
	}

	return report, nil
}

func (r *Runner) runItem(ctx context.Context, item Item) (Entry, error) {
	q := item.Query(r.defaults)
	entry := Entry{Item: item}

	result, err := r.resolver.Resolve(ctx, q)
	if err != nil {
		if marqueeerrors.IsConfigError(err) {
			return entry, err
		}
		r.logger.Warn("Failed to resolve item", "item", item.Label(), "error", err)
		entry.Status = StatusFailed
		entry.Error = err.Error()
		return entry, nil
	}
	entry.Candidates = len(result.Results)

	if best := result.Best(); best != nil {
		entry.Status = StatusResolved
		fill(&entry, *best)
		return entry, nil
	}

	if r.selector == nil || len(result.Results) == 0 {
		entry.Status = StatusUnresolved
		return entry, nil
	}

	selection, err := r.selector(item.Label(), result.Results, q.MinScore)
	if err != nil {
		return entry, fmt.Errorf("selection for %q failed: %w", item.Label(), err)
	}
	switch selection.Action {
	case tui.ActionSelected:
		entry.Status = StatusSelected
		fill(&entry, *selection.Selection)
	case tui.ActionStopped:
		return entry, marqueeerrors.NewStopProcessingError("batch stopped by user")
	default:
		entry.Status = StatusSkipped
	}
	return entry, nil
}

func fill(e *Entry, c media.Candidate) {
	id, kind := c.ID, c.Kind
	e.ID = &id
	e.Kind = &kind
	e.Title = c.Title
	e.Score = c.Score
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
