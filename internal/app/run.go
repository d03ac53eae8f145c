package app

import (
	"context"
	"fmt"

	"github.com/vk/geounits/internal/ctxlog"
	"github.com/vk/geounits/internal/evaluator"
	"github.com/vk/geounits/internal/report"
	"golang.org/x/sync/errgroup"
)

// Run evaluates every worksheet and renders the report to the App's output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	results, err := a.Evaluate(ctx)
	if err != nil {
		return err
	}

	if err := report.Write(a.outW, a.config.Output, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// Evaluate runs the worksheets concurrently, at most Concurrency at a time,
// against the shared read-only registries. Results keep the load order. The
// first failure cancels the remaining worksheets.
func (a *App) Evaluate(ctx context.Context) ([]*evaluator.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	sheets := a.model.Sheets
	if len(sheets) == 0 {
		a.logger.Warn("No worksheets found, nothing to evaluate.")
		return nil, nil
	}

	a.logger.Info("Evaluating worksheets.", "count", len(sheets), "concurrency", a.config.Concurrency)
	results := make([]*evaluator.Result, len(sheets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Concurrency)
	for i, sheet := range sheets {
		g.Go(func() error {
			res, err := evaluator.Evaluate(gctx, a.regs, sheet)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	a.logger.Info("Evaluation finished.", "count", len(results))
	return results, nil
}
