package configure

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/pkg/errors"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sepdpc")
	conn := application.Connection{Host: "https://sep.example.com", User: "alice", Token: "s3cret word"}

	require.NoError(t, Write(path, conn))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SEPDPC_HOST":  "https://sep.example.com",
		"SEPDPC_USER":  "alice",
		"SEPDPC_TOKEN": "s3cret word",
	}, env)

	err = Write(path, conn)
	assert.True(t, errors.IsAlreadyExists(err))
}

func stubAsk(t *testing.T, answers map[string]string) *[]string {
	t.Helper()
	var asked []string
	prev := ask
	ask = func(qs []*survey.Question, response any) error {
		for _, q := range qs {
			asked = append(asked, q.Name)
			if err := core.WriteAnswer(response, q.Name, answers[q.Name]); err != nil {
				return err
			}
		}
		return nil
	}
	t.Cleanup(func() { ask = prev })
	return &asked
}

func TestConfigurePromptsForMissingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sepdpc")
	asked := stubAsk(t, map[string]string{"user": "bob", "token": "pw"})

	var out bytes.Buffer
	app := &application.Mock{
		ConnectionFunc:      func() application.Connection { return application.Connection{Host: "sep.example.com"} },
		CredentialsPathFunc: func() string { return path },
		OutWriter:           &out,
	}

	cmd := NewCommand(app)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []string{"user", "token"}, *asked)
	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "sep.example.com", env["SEPDPC_HOST"])
	assert.Equal(t, "bob", env["SEPDPC_USER"])
	assert.Equal(t, "pw", env["SEPDPC_TOKEN"])
	assert.Contains(t, out.String(), path)
}

func TestConfigureSkipsPromptsWhenComplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sepdpc")
	asked := stubAsk(t, nil)

	app := &application.Mock{
		ConnectionFunc: func() application.Connection {
			return application.Connection{Host: "h", User: "u", Token: "t"}
		},
		CredentialsPathFunc: func() string { return path },
	}

	cmd := NewCommand(app)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Empty(t, *asked)
}

func TestConfigureRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sepdpc")
	require.NoError(t, os.WriteFile(path, []byte("SEPDPC_HOST=old\n"), 0o600))
	asked := stubAsk(t, nil)

	app := &application.Mock{CredentialsPathFunc: func() string { return path }}

	cmd := NewCommand(app)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.True(t, errors.IsAlreadyExists(err))
	assert.Empty(t, *asked, "no prompts before the overwrite check")

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "SEPDPC_HOST=old\n", string(data))
}
