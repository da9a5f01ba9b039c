package app

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the checkstate CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command. The root command
// itself runs the check; set and instance are positional so an instance
// can be given without repeating the set on every machine.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "checkstate [set] [instance]",
		Short:   "Check the state of a set of related projects",
		Version: a.version,
		Long: `Checkstate compares copies of the same projects checked out on
multiple machines. It inspects the local folders of one instance,
merges the result with the last-known state of the other instances
from a shared repository, and reports uncommitted changes, unpushed
or unpulled commits, and which machine holds the newest copy.`,
		Args:              cobra.MaximumNArgs(2),
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              a.runCheck,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.Flags().String("repo", a.config.Repo, "git repository storing checkstate settings and results")
	rootCmd.Flags().Bool("no-store", false, "don't update the repository results on exit")
	rootCmd.Flags().Bool("list", false, "list sets and instances from the repository")
	rootCmd.Flags().Bool("show-stored", false, "don't re-inspect, just show stored results (all sets unless one is given)")

	rootCmd.SetVersionTemplate("checkstate {{.Version}}\n")

	rootCmd.AddCommand(a.NewVersionCommand())

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	if repo, err := cmd.Flags().GetString("repo"); err == nil && repo != "" {
		a.config.Repo = normalizeRepo(repo)
	}
	if noStore, err := cmd.Flags().GetBool("no-store"); err == nil && noStore {
		a.config.NoStore = true
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// mustGetBool retrieves a boolean flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
