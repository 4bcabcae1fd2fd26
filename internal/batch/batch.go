// Package batch converts many diagram sources concurrently.
package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 4

// Job is one named diagram source.
type Job struct {
	Name   string
	Source string
}

// Result holds the output for the job at the same index.
type Result struct {
	Name   string
	Output []byte
	Err    error
}

type Summary struct {
	Tried  int
	Failed int
}

// ConvertFunc turns one source into output bytes. It must not share
// mutable state between calls.
type ConvertFunc func(ctx context.Context, job Job) ([]byte, error)

// Run converts every job with at most workers in flight. Per-job failures
// are reported in the results and logged; only cancellation fails the run.
func Run(ctx context.Context, jobs []Job, workers int, convert ConvertFunc, logger *slog.Logger) ([]Result, Summary, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	results := make([]Result, len(jobs))
	summary := Summary{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, job := range jobs {
		summary.Tried++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := convert(gctx, job)
			results[idx] = Result{Name: job.Name, Output: out, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, summary, err
	}
	if err := ctx.Err(); err != nil {
		return results, summary, err
	}

	for _, r := range results {
		if r.Err == nil {
			continue
		}
		summary.Failed++
		if logger != nil {
			logger.Warn("conversion failed", "input", r.Name, "error", r.Err)
		}
	}
	return results, summary, nil
}
