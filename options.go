package sepdpc

import (
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/agentstation/sepdpc/internal/local"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Option is a function that configures a Client.
type Option func(*config) error

type config struct {
	remote   remote.Client
	fs       billy.Filesystem
	absPaths bool
	logger   *zerolog.Logger
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		fs:       local.HostFS(),
		absPaths: true,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithRemote sets the remote catalog.
func WithRemote(rc remote.Client) Option {
	return func(c *config) error {
		if rc == nil {
			return errors.NewConfigError("client", "remote must not be nil", nil)
		}
		c.remote = rc
		return nil
	}
}

// WithFilesystem reads and writes repositories on fs. Paths are passed to fs
// as given instead of being made absolute on the host.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(c *config) error {
		if fs == nil {
			return errors.NewConfigError("client", "filesystem must not be nil", nil)
		}
		c.fs = fs
		c.absPaths = false
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}
