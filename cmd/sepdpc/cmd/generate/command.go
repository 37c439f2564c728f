// Package generate provides the generate command implementation.
package generate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/internal/cmd/emoji"
)

// NewCommand creates the generate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "generate PATH",
		GroupID: "core",
		Short:   "Write the remote catalog to a new repository",
		Long: `Generate reads every domain and data product from the remote catalog,
including tags and sample queries, and writes them as a repository at PATH.

PATH must not exist yet.`,
		Example: `  sepdpc generate ./products
  sepdpc generate ./products --host https://sep.example.com --user admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			repo, err := client.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out(), "%s Generated %d domains and %d products in %s\n",
				emoji.Success, len(repo.Domains), len(repo.Products), args[0])
			return nil
		},
	}
}
