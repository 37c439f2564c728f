package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sepdpc/internal/local"
	"github.com/agentstation/sepdpc/internal/remote/memory"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
	"github.com/agentstation/sepdpc/pkg/products"
)

func newTestApp(t *testing.T, opts ...Option) (*App, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out), WithLogger(&logging.Nop)}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	require.NoError(t, err)
	return app, &out
}

func writeRepository(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, local.Persist(local.HostFS(), root, products.NewRepository(
		[]products.Domain{{Name: "Finance"}},
		[]products.Product{{
			Name:     "Revenue",
			Catalog:  "hive",
			Domain:   "Finance",
			Datasets: []products.Dataset{{Name: "monthly", Query: "SELECT 1"}},
		}},
	)))
	return root
}

func TestNew(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestExecuteVersion(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Equal(t, "sepdpc 1.0.0\n", out.String())
}

func TestExecutePublish(t *testing.T) {
	server := memory.New()
	app, out := newTestApp(t, WithRemote(server))
	root := writeRepository(t)

	require.NoError(t, app.Execute(context.Background(), []string{"publish", root, "--yes", "--no-color"}))
	assert.Contains(t, out.String(), "products: 1 created")

	_, ok := server.ProductID("Revenue")
	assert.True(t, ok)
	assert.True(t, color.NoColor)

	out.Reset()
	require.NoError(t, app.Execute(context.Background(), []string{"diff", root, "--format", "json"}))
	assert.Contains(t, out.String(), `"created_products"`)
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	app, _ := newTestApp(t, WithRemote(memory.New()))
	root := writeRepository(t)

	err := app.Execute(context.Background(), []string{"diff", root, "--format", "csv"})
	assert.ErrorContains(t, err, "invalid format")
}

func TestClientWithoutHost(t *testing.T) {
	app, _ := newTestApp(t)
	root := writeRepository(t)

	// Validation works offline.
	require.NoError(t, app.Execute(context.Background(), []string{"validate", root, "--host", ""}))

	client, err := app.Client()
	require.NoError(t, err)
	if app.Connection().Host == "" {
		_, err = client.Diff(context.Background(), root)
		var cerr *errors.ConfigError
		assert.True(t, errors.As(err, &cerr))
	}
}

func TestClientRequiresUserWithHost(t *testing.T) {
	app, _ := newTestApp(t)
	t.Setenv("SEPDPC_HOST", "https://sep.example.com")
	t.Setenv("SEPDPC_USER", "")

	_, err := app.Client()
	var cerr *errors.ConfigError
	assert.True(t, errors.As(err, &cerr))
}
