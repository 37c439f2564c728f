// Package app wires configuration, logging and the sepdpc client into the
// command tree.
package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/sepdpc"
	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/internal/sep"
	"github.com/agentstation/sepdpc/internal/transport"
	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the sepdpc application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer

	// remote overrides the connection settings, used by tests.
	remote remote.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		out:     os.Stdout,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Out returns the writer for command results.
func (a *App) Out() io.Writer {
	return a.out
}

// Connection returns the resolved connection settings.
func (a *App) Connection() application.Connection {
	return a.config.Connection()
}

// CredentialsPath returns the credentials file location.
func (a *App) CredentialsPath() string {
	return a.config.CredentialsFile
}

// Client builds a client for the configured remote. Local-only commands
// work without a host; commands that need the remote fail with a
// configuration error when it is missing.
func (a *App) Client(opts ...sepdpc.Option) (sepdpc.Client, error) {
	base := []sepdpc.Option{sepdpc.WithLogger(a.logger)}

	switch conn := a.Connection(); {
	case a.remote != nil:
		base = append(base, sepdpc.WithRemote(a.remote))
	case conn.Host != "":
		if conn.User == "" {
			return nil, errors.NewConfigError("connection", "a user is required (--user or SEPDPC_USER)", nil)
		}
		base = append(base, sepdpc.WithRemote(sep.New(conn.Host, conn.User, conn.Token,
			transport.WithUserAgent(constants.DefaultUserAgent+"/"+a.version),
		)))
	}

	client, err := sepdpc.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("client", "creating client", err)
	}
	return client, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput sets where command results are written.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithRemote replaces the configured connection with rc.
func WithRemote(rc remote.Client) Option {
	return func(a *App) error {
		a.remote = rc
		return nil
	}
}
