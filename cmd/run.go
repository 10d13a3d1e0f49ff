package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/takus/internal/logger"
	"github.com/maxkimambo/takus/internal/taskmanager"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [task...]",
		Short: "Run tasks and their dependencies",
		Long: `Run the named tasks after everything they depend on.

This is what "takus [task...]" does; use it to run a task whose name matches
a takus subcommand, e.g. "takus run list".`,
		Args: cobra.ArbitraryArgs,
		RunE: runTasks,
	}
}

func runTasks(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	targets, err := resolveTargets(args, s.workflow.Registry)
	if err != nil {
		return err
	}

	if s.settings.DryRun {
		logger.User.Infof("Dry run of %s, no command will be executed", strings.Join(targets, ", "))
		return printPlans(cmd, s, targets, taskmanager.FormatText)
	}

	logger.User.Startingf("Running %s", strings.Join(targets, ", "))
	err = s.workflow.Run(cmd.Context(), targets)
	summarizeRun(cmd.Context(), s.workflow)
	return err
}

// summarizeRun reports how a finished workflow ended. The error itself is
// printed by the root command.
func summarizeRun(ctx context.Context, wf *taskmanager.Workflow) {
	elapsed := wf.Duration.Round(time.Millisecond)
	switch {
	case wf.Status == taskmanager.StatusCompleted:
		logger.User.Successf("Completed %d task(s) in %s", len(wf.Executed), elapsed)
	case ctx.Err() != nil:
		logger.User.Warn("Run interrupted")
	default:
		logger.User.Errorf("Stopped after %d task(s) in %s", len(wf.Executed), elapsed)
	}
}
