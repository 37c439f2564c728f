// Package validate provides the validate command implementation.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/internal/cmd/emoji"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate PATH",
		GroupID: "core",
		Short:   "Check a repository without contacting the remote",
		Long: `Validate loads the repository at PATH and checks that domain names and
product names are unique and that every product belongs to a declared domain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			repo, err := client.Validate(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out(), "%s %s is valid: %d domains, %d products\n",
				emoji.Success, args[0], len(repo.Domains), len(repo.Products))
			return nil
		},
	}
}
