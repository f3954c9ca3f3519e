package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/retry"
)

const (
	DefaultBatchSize   = 1000
	DefaultConcurrency = 1
	defaultName        = "bulk-loader"
)

// SubmitFunc sends one batch to the store. Conflict handling (ignore or merge
// duplicates) is the business of the implementation, not of the loader.
type SubmitFunc[T any] func(ctx context.Context, batch []T) error

type Config struct {
	BatchSize int
	// Concurrency is the number of batches in flight. 0 means 1.
	Concurrency int
	Retry       retry.Policy
}

func DefaultConfig() Config {
	return Config{
		BatchSize:   DefaultBatchSize,
		Concurrency: DefaultConcurrency,
		Retry:       retry.NoRetry(),
	}
}

func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return apperr.NewConfiguration(fmt.Sprintf("batch size must be positive, got %d", c.BatchSize))
	}
	if c.Concurrency < 0 {
		return apperr.NewConfiguration(fmt.Sprintf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if c.Retry.MaxRetries < 0 {
		return apperr.NewConfiguration(fmt.Sprintf("max retries must not be negative, got %d", c.Retry.MaxRetries))
	}
	return nil
}

type options struct {
	name       string
	onProgress ProgressFunc
	classifier retry.Classifier
}

type Option func(*options)

// WithName sets the name attached to every log line of the loader.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithProgress registers the observer of per-batch progress events.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.onProgress = fn
	}
}

// WithClassifier overrides which submit errors are retried.
func WithClassifier(c retry.Classifier) Option {
	return func(o *options) {
		o.classifier = c
	}
}

// Loader is the batched bulk loader. A Loader holds no per-run state and may be
// reused for several loads.
type Loader[T any] struct {
	cfg      Config
	opts     options
	executor *retry.Executor
}

// New returns a *apperr.ConfigurationError when cfg is invalid.
func New[T any](cfg Config, opts ...Option) (*Loader[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}

	return &Loader[T]{
		cfg:      cfg,
		opts:     o,
		executor: retry.NewExecutor(cfg.Retry, o.classifier),
	}, nil
}

func (l *Loader[T]) Config() Config {
	return l.cfg
}

// Load submits records in batches and returns the summary of every attempted
// batch. Batch failures are part of the summary; the returned error is non-nil
// only for a missing submit function or when ctx was cancelled before all
// batches were attempted, in which case the partial summary is returned too.
func (l *Loader[T]) Load(ctx context.Context, records []T, submit SubmitFunc[T]) (*Summary, error) {
	if submit == nil {
		return nil, apperr.NewConfiguration("submit function is required")
	}

	bounds := CalculateBatches(len(records), l.cfg.BatchSize)
	t := newTracker(len(records), len(bounds))

	slog.Info("Starting load",
		"loader", l.opts.name,
		"records", len(records),
		"batches", len(bounds),
		"batch_size", l.cfg.BatchSize,
		"concurrency", l.cfg.Concurrency,
		"max_retries", l.cfg.Retry.MaxRetries,
	)

	var err error
	if l.cfg.Concurrency > 1 && len(bounds) > 1 {
		err = l.loadConcurrent(ctx, records, bounds, submit, t)
	} else {
		err = l.loadSequential(ctx, records, bounds, submit, t)
	}

	summary := t.finish()
	slog.Info("Load completed",
		"loader", l.opts.name,
		"attempted", summary.TotalAttempted,
		"succeeded", summary.TotalSucceeded,
		"failed", summary.TotalFailed,
		"duration", summary.Duration,
		"error", err,
	)

	return summary, err
}

func (l *Loader[T]) loadSequential(ctx context.Context, records []T, bounds [][2]int, submit SubmitFunc[T], t *tracker) error {
	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			slog.Info("Load cancelled, stopping before next batch",
				"loader", l.opts.name,
				"next_batch", i+1,
				"remaining_batches", len(bounds)-i,
			)
			return err
		}

		res := l.submitBatch(ctx, i, b, records[b[0]:b[1]:b[1]], submit)
		l.emit(t.record(res))
	}
	return nil
}

func (l *Loader[T]) submitBatch(ctx context.Context, index int, bound [2]int, batch []T, submit SubmitFunc[T]) BatchResult {
	start := time.Now()

	exec := l.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		slog.Warn("Retrying batch",
			"loader", l.opts.name,
			"batch", index+1,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
	})

	attempts, err := exec.Execute(ctx, func(ctx context.Context) error {
		return submit(ctx, batch)
	})

	res := BatchResult{
		Index:    index,
		Offset:   bound[0],
		Size:     len(batch),
		Attempts: attempts,
		Duration: time.Since(start),
	}

	if err != nil {
		res.Err = apperr.NewBatchSubmit(index, len(batch), err)
		slog.Error("Error submitting batch",
			"loader", l.opts.name,
			"batch", index+1,
			"count", len(batch),
			"attempts", attempts,
			"error", err,
		)
		return res
	}

	res.Succeeded = true
	slog.Debug("Batch submitted successfully",
		"loader", l.opts.name,
		"batch", index+1,
		"count", len(batch),
		"duration", res.Duration,
	)
	return res
}

func (l *Loader[T]) emit(p Progress) {
	if l.opts.onProgress != nil {
		l.opts.onProgress(p)
	}
}
