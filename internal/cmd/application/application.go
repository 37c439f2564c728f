// Package application defines what commands need from the running
// application, so commands can be tested against a Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            _, err = client.Validate(args[0])
//	            return err
//	        },
//	    }
//	}
package application

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/sepdpc"
)

// Connection holds the remote catalog coordinates and credentials.
type Connection struct {
	Host  string
	User  string
	Token string
}

// Complete reports whether every field is set.
func (c Connection) Complete() bool {
	return c.Host != "" && c.User != "" && c.Token != ""
}

// Application provides the application interface that commands need.
// The App struct from cmd/sepdpc/app implements it.
type Application interface {
	// Client returns a client for the configured connection. Without a
	// configured host the client can only work on local repositories.
	Client(opts ...sepdpc.Option) (sepdpc.Client, error)

	// Connection returns the connection settings after flags, environment
	// and credential files have been applied.
	Connection() Connection

	// CredentialsPath is where configure stores the connection.
	CredentialsPath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format, or "" to detect.
	OutputFormat() string

	// Out is where command results are written.
	Out() io.Writer

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
