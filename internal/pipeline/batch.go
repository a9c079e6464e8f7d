package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/wordlist/internal/model"
)

// Target names one file for a batch: where to read it and how to report it.
type Target struct {
	// Source is the path used to access the file on disk.
	Source string

	// Path is the path recorded in the result.
	Path string
}

// BatchProcessor validates multiple files with a fresh pipeline per file.
// It uses errgroup to bound the number of files in flight.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each file so that no
	// step state is shared between files.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of files processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of files processed at once.
// Default is 1; non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     1,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch validates every target and returns one result per target,
// in target order.
//
// Per-file failures are recorded on the corresponding result and never stop
// the batch. The only error returned is a context error, in which case the
// results of files that did not run are nil.
//
// The callback, if non-nil, is invoked once per result in target order,
// regardless of concurrency, and never concurrently with itself.
func (bp *BatchProcessor) ProcessBatch(
	ctx context.Context,
	targets []Target,
	callback func(f *model.WordlistFile, index int),
) ([]*model.WordlistFile, error) {
	bp.logger.Debug("starting batch processing",
		"total_files", len(targets),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	results := make([]*model.WordlistFile, len(targets))
	emitter := &orderedEmitter{results: results, callback: callback}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			a := NewAnalysis(target.Source, target.Path)
			err := bp.pipelineFactory().Execute(ctx, a)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				bp.logger.Debug("file failed validation",
					"file", target.Path,
					"error", err,
				)
			}

			emitter.done(i, a.File)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch processing complete",
		"total_files", len(targets),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// orderedEmitter stores index-addressed results and forwards the contiguous
// completed prefix to the callback.
type orderedEmitter struct {
	mu       sync.Mutex
	results  []*model.WordlistFile
	next     int
	callback func(f *model.WordlistFile, index int)
}

func (e *orderedEmitter) done(i int, f *model.WordlistFile) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.results[i] = f
	for e.next < len(e.results) && e.results[e.next] != nil {
		if e.callback != nil {
			e.callback(e.results[e.next], e.next)
		}
		e.next++
	}
}
