package application

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/sepdpc"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	var out bytes.Buffer
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...sepdpc.Option) (sepdpc.Client, error) {
//	        return sepdpc.New(append(opts, sepdpc.WithRemote(server), sepdpc.WithFilesystem(fs))...)
//	    },
//	    OutWriter: &out,
//	}
//	cmd := diff.NewCommand(mock)
type Mock struct {
	ClientFunc          func(opts ...sepdpc.Option) (sepdpc.Client, error)
	ConnectionFunc      func() Connection
	CredentialsPathFunc func() string
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	OutWriter           io.Writer
}

// Client returns a client using the mock function or an error-free nil.
func (m *Mock) Client(opts ...sepdpc.Option) (sepdpc.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	return nil, nil
}

// Connection returns the mock connection or an empty one.
func (m *Mock) Connection() Connection {
	if m.ConnectionFunc != nil {
		return m.ConnectionFunc()
	}
	return Connection{}
}

// CredentialsPath returns the mock path or "".
func (m *Mock) CredentialsPath() string {
	if m.CredentialsPathFunc != nil {
		return m.CredentialsPathFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Out returns OutWriter or io.Discard.
func (m *Mock) Out() io.Writer {
	if m.OutWriter != nil {
		return m.OutWriter
	}
	return io.Discard
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
