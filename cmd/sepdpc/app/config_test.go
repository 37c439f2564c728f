package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetAfter removes variables that godotenv sets process-wide.
func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".sepdpc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Empty(t, config.LogLevel, "empty so the verbose and quiet shortcuts apply")
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestConnectionFromCredentialsFile(t *testing.T) {
	unsetAfter(t, "SEPDPC_HOST", "SEPDPC_TOKEN")
	t.Setenv("SEPDPC_USER", "env-user")

	path := writeCredentials(t, "SEPDPC_HOST=https://sep.example.com\nSEPDPC_USER=file-user\nSEPDPC_TOKEN=\"pw\"\n")

	config, err := loadConfig(path)
	require.NoError(t, err)

	conn := config.Connection()
	assert.Equal(t, "https://sep.example.com", conn.Host)
	assert.Equal(t, "env-user", conn.User, "the environment wins over the credentials file")
	assert.Equal(t, "pw", conn.Token)
	assert.Equal(t, path, config.CredentialsFile)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SEPDPC_HOST", "env-host")
	t.Setenv("SEPDPC_USER", "env-user")

	config, err := loadConfig("")
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("host", "", "")
	fs.String("user", "", "")
	require.NoError(t, config.BindFlags(fs))
	require.NoError(t, fs.Parse([]string{"--host", "flag-host"}))

	conn := config.Connection()
	assert.Equal(t, "flag-host", conn.Host)
	assert.Equal(t, "env-user", conn.User, "an unset flag falls back to the environment")
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}
	config.UpdateFromFlags(true, false, true, "", "")

	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "debug")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
