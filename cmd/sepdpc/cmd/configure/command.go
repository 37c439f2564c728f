// Package configure provides the configure command implementation.
package configure

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/internal/cmd/emoji"
	"github.com/agentstation/sepdpc/pkg/errors"
)

// NewCommand creates the configure command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "configure",
		GroupID: "setup",
		Short:   "Store connection settings in the credentials file",
		Long: `Configure writes the host, user and token to the credentials file
(~/.sepdpc) so later commands can omit them. Values given with --host,
--user and --token or set in the environment are used as they are; the
rest are prompted for.

An existing credentials file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.CredentialsPath()
			if path == "" {
				return errors.NewConfigError("configure", "cannot determine the home directory", nil)
			}
			if _, err := os.Stat(path); err == nil {
				return errors.NewAlreadyExistsError("credentials file", path)
			}

			conn, err := complete(app.Connection())
			if err != nil {
				return err
			}
			if err := Write(path, conn); err != nil {
				return err
			}

			app.Logger().Debug().Str("path", path).Str("host", conn.Host).Msg("Wrote credentials")
			fmt.Fprintf(app.Out(), "%s Credentials written to %s\n", emoji.Success, path)
			return nil
		},
	}
}

// ask runs the survey questions. Tests replace it.
var ask = func(qs []*survey.Question, answers any) error {
	return survey.Ask(qs, answers)
}

// complete prompts for every empty connection field.
func complete(conn application.Connection) (application.Connection, error) {
	var qs []*survey.Question
	if conn.Host == "" {
		qs = append(qs, &survey.Question{
			Name:     "host",
			Prompt:   &survey.Input{Message: "Host:", Help: "e.g. https://sep.example.com"},
			Validate: survey.Required,
		})
	}
	if conn.User == "" {
		qs = append(qs, &survey.Question{
			Name:     "user",
			Prompt:   &survey.Input{Message: "User:"},
			Validate: survey.Required,
		})
	}
	if conn.Token == "" {
		qs = append(qs, &survey.Question{
			Name:     "token",
			Prompt:   &survey.Password{Message: "Password or token:"},
			Validate: survey.Required,
		})
	}
	if len(qs) == 0 {
		return conn, nil
	}

	answers := struct {
		Host  string `survey:"host"`
		User  string `survey:"user"`
		Token string `survey:"token"`
	}{}
	if err := ask(qs, &answers); err != nil {
		return conn, errors.NewConfigError("configure", "reading answers", err)
	}

	if conn.Host == "" {
		conn.Host = answers.Host
	}
	if conn.User == "" {
		conn.User = answers.User
	}
	if conn.Token == "" {
		conn.Token = answers.Token
	}
	return conn, nil
}
