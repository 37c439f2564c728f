package app

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentstation/sepdpc/cmd/sepdpc/cmd/configure"
	"github.com/agentstation/sepdpc/cmd/sepdpc/cmd/diff"
	"github.com/agentstation/sepdpc/cmd/sepdpc/cmd/generate"
	"github.com/agentstation/sepdpc/cmd/sepdpc/cmd/publish"
	"github.com/agentstation/sepdpc/cmd/sepdpc/cmd/validate"
	"github.com/agentstation/sepdpc/internal/cmd/output"
	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/logging"
)

// Execute runs the sepdpc CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	rootCmd, err := a.createRootCommand()
	if err != nil {
		return err
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.out)

	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:     "sepdpc",
		Short:   "Manage Starburst data products as code",
		Version: a.version,
		Long: `sepdpc keeps the data products and domains of a Starburst Enterprise
catalog in a directory of YAML and SQL files.

Generate a repository from a running catalog, edit it, check what would
change with diff and apply it with publish. Publishing creates, updates,
moves and deletes remote entities until the catalog matches the repository.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "setup", Title: "Setup Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("host", "", "Starburst host, e.g. https://sep.example.com (env SEPDPC_HOST)")
	flags.String("user", "", "user sent as X-Trino-User and basic auth user (env SEPDPC_USER)")
	flags.String("token", "", "password or token; \"Bearer ...\" is sent verbatim (env SEPDPC_TOKEN)")

	if err := a.config.BindFlags(flags); err != nil {
		return nil, err
	}

	rootCmd.SetVersionTemplate("sepdpc {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd, nil
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}
	if a.config.NoColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(generate.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(diff.NewCommand(a))
	rootCmd.AddCommand(publish.NewCommand(a))

	// Setup commands
	rootCmd.AddCommand(configure.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "setup",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("sepdpc %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
