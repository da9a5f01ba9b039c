package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/checkstate"
	"github.com/agentstation/checkstate/internal/cmd/output"
	"github.com/agentstation/checkstate/internal/cmd/report"
	"github.com/agentstation/checkstate/pkg/logging"
	"github.com/agentstation/checkstate/pkg/state"
)

// runCheck is the root command: fetch the shared document, figure out
// which set/instance this machine is, inspect, reconcile, report, and
// store the updated document back.
func (a *App) runCheck(cmd *cobra.Command, args []string) error {
	ctx := logging.WithLogger(cmd.Context(), a.logger)

	var set, instance string
	if len(args) > 0 {
		set = args[0]
	}
	if len(args) > 1 {
		instance = args[1]
	}

	checker, err := checkstate.New(
		checkstate.WithRepo(a.config.Repo),
		checkstate.WithNoStore(a.config.NoStore),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := checker.Close(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to clean up transport")
		}
	}()

	if err := checker.Load(ctx); err != nil {
		return err
	}

	if mustGetBool(cmd, "list") {
		return a.runList(cmd, checker.Document())
	}
	if mustGetBool(cmd, "show-stored") {
		return a.runShowStored(cmd, checker, set)
	}

	local, err := LoadLocalState()
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to read local state, starting empty")
		local = &LocalState{}
	}

	set, instance, err = a.ChooseSetInstance(ctx, checker.Document().Resolver(), local, set, instance)
	if err != nil {
		return err
	}

	rep, err := checker.Check(ctx, set, instance)
	if err != nil {
		return err
	}

	format := output.DetectFormat(a.config.Format)
	if err := report.Render(cmd.OutOrStdout(), format, rep); err != nil {
		return err
	}

	// The report is already on screen; a store failure must not look
	// like a failed check, but still exits non-zero.
	if err := checker.Store(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Results computed but could not be stored")
		return err
	}
	return nil
}

// runList prints the known sets and instances from the settings
// document.
func (a *App) runList(cmd *cobra.Command, doc *state.Document) error {
	w := cmd.OutOrStdout()
	resolver := doc.Resolver()

	fmt.Fprintf(w, "\nKnown sets / instances\n\n")
	for _, set := range resolver.Sets() {
		fmt.Fprintln(w, set)
		instances, err := resolver.Instances(set)
		if err != nil {
			continue
		}
		for _, instance := range instances {
			fmt.Fprintf(w, "    %s\n", instance)
		}
	}
	fmt.Fprintln(w)
	return nil
}

// runShowStored renders reports from stored observations without
// inspecting anything. With a set argument only that set is shown and
// any failure is fatal; without one a failing set is reported and the
// rest still render.
func (a *App) runShowStored(cmd *cobra.Command, checker *checkstate.Checker, set string) error {
	format := output.DetectFormat(a.config.Format)
	w := cmd.OutOrStdout()

	sets := []string{set}
	if set == "" {
		sets = checker.Document().ObservedSets()
		if len(sets) == 0 {
			fmt.Fprintln(w, "No stored results")
			return nil
		}
	}

	var firstErr error
	for _, name := range sets {
		rep, err := checker.Report(name)
		if err != nil {
			if set != "" {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s\n", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(w, "\n== %s ==\n", name)
		if err := report.Render(w, format, rep); err != nil {
			return err
		}
	}
	return firstErr
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "checkstate %s (commit %s, built %s)\n",
				a.version, a.commit, a.date)
			return err
		},
	}
}
