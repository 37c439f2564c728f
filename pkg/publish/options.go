package publish

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/sepdpc/pkg/logging"
)

// Options controls a publish run.
type Options struct {
	DryRun   bool            // Compute the delta without touching the remote
	Logger   *zerolog.Logger // Logger for step and mutation events
	Progress func(Event)     // Called before every remote mutation
}

// Event describes a remote mutation about to be issued.
type Event struct {
	Step   string // Step name, one of Order
	Entity string // Name of the domain or product
	Index  int    // 1-based position within the step
	Total  int    // Number of entities in the step
}

// Option is a function that configures publish Options.
type Option func(*Options)

// Defaults returns the default publish options.
func Defaults() *Options {
	return &Options{
		DryRun: false,
		Logger: logging.Default(),
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = &logging.Nop
	}
	return o
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn func(Event)) Option {
	return func(opts *Options) {
		opts.Progress = fn
	}
}
