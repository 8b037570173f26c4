package walker

import (
	"context"

	"github.com/relictool/relic/internal/utils"
)

// WalkOptions configures the behavior of Walk.
type WalkOptions struct {
	Logger      utils.Logger
	Concurrent  bool
	MaxWorkers  int
	MaxFileSize int64
	Context     context.Context
}

func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:      utils.NoopLogger{},
		Concurrent:  false,
		MaxWorkers:  4,
		MaxFileSize: 0,
		Context:     context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions.
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker.
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithConcurrency enables or disables concurrent file processing.
func WithConcurrency(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.Concurrent = enabled
	}
}

// WithMaxWorkers sets the worker pool size for concurrent processing.
func WithMaxWorkers(workers int) Option {
	return func(opts *WalkOptions) {
		if workers > 0 {
			opts.MaxWorkers = workers
		}
	}
}

// WithMaxFileSize skips files larger than maxBytes; zero means no limit.
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithContext sets the context used for cancellation.
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}
