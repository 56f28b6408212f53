package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/lepinkainen/marquee/internal/batch"
	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/fileutil"
)

// BatchCmd resolves a list of titles.
type BatchCmd struct {
	Input       string  `arg:"" type:"existingfile" help:"CSV or YAML file with title, year, imdb_id, kind, types, description and tags columns"`
	Output      string  `short:"o" help:"Path of the JSON report" default:"marquee-report.json"`
	Overwrite   bool    `help:"Overwrite an existing report"`
	Interactive bool    `short:"i" help:"Pick from the ranked list for unresolved titles (s skips, q stops)"`
	MinScore    float64 `help:"Confidence gate (defaults to resolve.min_score)"`
}

func (b *BatchCmd) Run(app *appContext) error {
	items, err := batch.LoadFile(b.Input)
	if err != nil {
		return err
	}
	app.logger.Info("Loaded batch input", "file", b.Input, "items", len(items))

	resolver, cleanup, err := app.newResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	defaults := app.defaultQuery()
	if b.MinScore > 0 {
		defaults.MinScore = b.MinScore
	}
	opts := []batch.Option{batch.WithLogger(app.logger)}
	if b.Interactive {
		opts = append(opts, batch.WithSelector(selectCandidate))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, runErr := batch.NewRunner(resolver, defaults, opts...).Run(ctx, items)
	if runErr != nil && !marqueeerrors.IsStopProcessingError(runErr) {
		return runErr
	}

	written, err := fileutil.WriteJSONFile(report, b.Output, b.Overwrite)
	if err != nil {
		return err
	}
	app.logger.Info("Batch finished",
		"total", report.Total,
		"resolved", report.Resolved,
		"selected", report.Selected,
		"unresolved", report.Unresolved,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"report", b.Output,
		"written", written,
	)
	return runErr
}
