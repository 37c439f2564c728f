package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/errors"
)

// Connection settings, read as SEPDPC_HOST, SEPDPC_USER and SEPDPC_TOKEN.
const (
	keyHost  = "host"
	keyUser  = "user"
	keyToken = "token"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the credentials file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// CredentialsFile is the dotenv file written by configure.
	CredentialsFile string

	viper *viper.Viper
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (bound by BindFlags)
//  2. Environment variables
//  3. .env.local, then .env
//  4. The credentials file (~/.sepdpc)
func LoadConfig() (*Config, error) {
	return loadConfig(defaultCredentialsPath())
}

func loadConfig(credentials string) (*Config, error) {
	// godotenv never overrides a variable that is already set, so the
	// files are loaded from highest to lowest precedence.
	loadEnvFiles(".env.local", ".env", credentials)

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{keyHost, keyUser, keyToken} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.NewConfigError("env", "binding "+key, err)
		}
	}

	return &Config{
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:       getEnvOrDefault("LOG_OUTPUT", "stderr"),
		CredentialsFile: credentials,
		viper:           v,
	}, nil
}

// BindFlags lets the connection flags in fs take precedence over the
// environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{keyHost, keyUser, keyToken} {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}
		if err := c.viper.BindPFlag(key, flag); err != nil {
			return errors.NewConfigError("flags", "binding --"+key, err)
		}
	}
	return nil
}

// Connection returns the resolved connection settings.
func (c *Config) Connection() application.Connection {
	return application.Connection{
		Host:  c.viper.GetString(keyHost),
		User:  c.viper.GetString(keyUser),
		Token: c.viper.GetString(keyToken),
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func loadEnvFiles(files ...string) {
	for _, f := range files {
		if f == "" {
			continue
		}
		_ = godotenv.Load(f)
	}
}

func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.CredentialsFile)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
