// Package publish provides the publish command implementation.
package publish

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/internal/cmd/emoji"
	"github.com/agentstation/sepdpc/internal/cmd/output"
	"github.com/agentstation/sepdpc/pkg/publish"
)

// Flags holds the publish command flags.
type Flags struct {
	DryRun      bool
	AutoApprove bool
}

// NewCommand creates the publish command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "publish PATH",
		GroupID: "core",
		Short:   "Make the remote catalog match a repository",
		Long: `Publish validates the repository at PATH, compares it with the remote
catalog and applies the difference: products are deleted first, new domains
are created before products move into them, emptied domains are removed,
and changed or new products are written, tagged and published last.

The changes are shown and confirmed before anything is modified unless
--yes is given. A failing remote call stops the run; publishing again picks
up from the state the remote was left in.`,
		Example: `  sepdpc publish ./products --dry-run   # Show the changes only
  sepdpc publish ./products             # Confirm, then apply
  sepdpc publish ./products -y          # Apply without asking`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args[0])
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show the changes without applying them")
	cmd.Flags().BoolVarP(&flags.AutoApprove, "yes", "y", false, "apply without asking for confirmation")

	return cmd
}

// Execute runs publish for path.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags, path string) error {
	ctx := cmd.Context()
	out := app.Out()

	client, err := app.Client()
	if err != nil {
		return err
	}

	if flags.DryRun || !flags.AutoApprove {
		preview, err := client.Publish(ctx, path, publish.WithDryRun(true))
		if err != nil {
			return err
		}
		if err := render(app, preview); err != nil {
			return err
		}
		if flags.DryRun || !preview.HasChanges() {
			return nil
		}

		confirmed, err := confirm(fmt.Sprintf("Apply %d changes to the remote catalog?", preview.Delta.Summary().TotalChanges))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintf(out, "%s Publish cancelled\n", emoji.Skipped)
			return nil
		}
	}

	progress := func(e publish.Event) {
		app.Logger().Info().
			Str("step", e.Step).
			Str("entity", e.Entity).
			Msgf("%s [%d/%d]", e.Step, e.Index, e.Total)
	}

	result, err := client.Publish(ctx, path, publish.WithProgress(progress))
	if err != nil {
		if result != nil && len(result.Completed) > 0 {
			fmt.Fprintf(out, "%s Completed steps before the failure: %v\n", emoji.Error, result.Completed)
		}
		return err
	}

	fmt.Fprintf(out, "%s %s\n", emoji.Success, result.Summary())
	return nil
}

func render(app application.Application, result *publish.Result) error {
	format := output.DetectFormat(app.OutputFormat())
	var data any = result.Delta
	if format == output.FormatTable {
		data = output.DeltaTable(result.Delta)
	}
	return output.NewFormatter(format).Format(app.Out(), data)
}
