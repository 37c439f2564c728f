// Package constants provides shared constants used throughout sepdpc:
// timeouts, file permissions, and the names of the on-disk repository layout.
package constants

import "time"

// Timeouts
const (
	// DefaultHTTPTimeout bounds a single round-trip to the remote catalog
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for the credentials file (rw-------)
	SecureFilePermissions = 0600
)

// Repository layout
const (
	DomainsFile      = "domains.yaml"
	MetadataFile     = "metadata.yaml"
	ReadmeFile       = "readme.md"
	DatasetsDir      = "datasets"
	SamplesDir       = "samples"
	QueryExtension   = ".sql"
	YAMLExtension    = ".yaml"
	CredentialsFile  = ".sepdpc"
	EnvPrefix        = "SEPDPC"
	DefaultUserAgent = "sepdpc"
)

// Remote API
const (
	// APIBasePath is the root of the data product REST API
	APIBasePath = "/api/v1/dataProduct"

	// TrinoUserHeader carries the acting user on every request
	TrinoUserHeader = "X-Trino-User"
)
