package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yeager/tp-lint/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent lint runs for multiple languages.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-language execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each language.
	// A factory ensures each run gets a fresh pipeline instance and lets
	// callers vary per-language settings such as the output directory.
	pipelineFactory func(language string) *Pipeline

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed runs, indexed by input position.
	// Access is synchronized via mutex.
	results []*model.LintRun
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each language to create a
// fresh pipeline instance. This ensures that pipeline state doesn't leak
// between runs and allows for per-language customization if needed.
func NewBatchProcessor(pipelineFactory func(language string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.LintRun, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch lints multiple languages concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each language gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all runs in input order, even for languages that failed.
// The error return indicates whether the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, languages []string) ([]*model.LintRun, error) {
	bp.logger.Info("starting batch processing",
		"total_languages", len(languages),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.LintRun, len(languages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, language := range languages {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("linting language",
				"language", language,
				"index", i+1,
				"total", len(languages),
			)

			// Create run for this language
			run := model.NewLintRun(language)

			// Create and execute pipeline
			pipeline := bp.pipelineFactory(language)
			err := pipeline.Execute(ctx, run)

			// Store result regardless of error
			// The run contains error information if the language failed
			bp.mu.Lock()
			bp.results[i] = run
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("lint run failed",
					"language", language,
					"error", err,
				)
				// Don't return error to errgroup - we want to continue
				// other languages. The error is recorded in the run.
				return nil
			}

			bp.logger.Info("lint run completed",
				"language", language,
				"exit_code", run.ExitCode,
			)

			return nil
		})
	}

	// Wait for all runs to complete
	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch processing complete",
		"total_languages", len(languages),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// ProcessBatchWithCallback lints multiple languages and calls a callback
// for each completed run. This is useful for streaming results.
//
// The callback receives the run and the index of the language in the
// original slice. The callback is called from the goroutine that completed
// the run, so it should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	languages []string,
	callback func(run *model.LintRun, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_languages", len(languages),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, language := range languages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			run := model.NewLintRun(language)
			pipeline := bp.pipelineFactory(language)
			_ = pipeline.Execute(ctx, run) //nolint:errcheck // Error is stored in run

			// Call the callback with the result
			callback(run, i)

			return nil
		})
	}

	return g.Wait()
}

// MaxExitCode returns the worst exit code across runs. A run that failed
// before producing an exit code counts as 1, so a fetch failure is not
// reported as success.
func MaxExitCode(runs []*model.LintRun) int {
	code := 0
	for _, run := range runs {
		if run == nil {
			continue
		}
		if run.Err != nil && run.ExitCode == 0 && code < 1 {
			code = 1
		}
		if run.ExitCode > code {
			code = run.ExitCode
		}
	}
	return code
}
