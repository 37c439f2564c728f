// Package diff provides the diff command implementation.
package diff

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/internal/cmd/output"
)

// NewCommand creates the diff command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "diff PATH",
		GroupID: "core",
		Short:   "Show what publishing a repository would change",
		Long: `Diff compares the repository at PATH with the remote catalog and lists
the changes publish would make, in the order it would make them:

  -  deleted      +  created      △  updated      →  moved to another domain`,
		Example: `  sepdpc diff ./products
  sepdpc diff ./products --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			delta, err := client.Diff(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = delta
			if format == output.FormatTable {
				data = output.DeltaTable(delta)
			}
			return output.NewFormatter(format).Format(app.Out(), data)
		},
	}
}
