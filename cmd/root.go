package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	taskerrors "github.com/maxkimambo/takus/internal/errors"
	"github.com/maxkimambo/takus/internal/logger"
	"github.com/maxkimambo/takus/internal/taskmanager"
	"github.com/maxkimambo/takus/internal/utils"
	"github.com/spf13/cobra"
)

var version = "v0.1.0"

type logOptions struct {
	debug    bool
	verbose  bool
	jsonLogs bool
	quiet    bool
}

// NewRootCmd builds the takus command tree.
func NewRootCmd() *cobra.Command {
	opts := &logOptions{}

	rootCmd := &cobra.Command{
		Use:   "takus [task...]",
		Short: "A declarative task runner",
		Long: `takus runs the tasks described in takus.yml.

Each task is a list of shell commands with optional dependencies, working
directory and environment variables. Requested tasks run after everything they
depend on, one task at a time. Without arguments takus runs the task named
"default".`,
		Example: `takus build
takus -f ci/takus.yml lint test
takus --dry-run release`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(opts.verbose || opts.debug, opts.jsonLogs, opts.quiet)
			logger.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if opts.debug {
				logger.Op.Debug("Debug logging enabled")
			}
		},
		RunE: runTasks,
	}

	rootCmd.Version = version

	pf := rootCmd.PersistentFlags()
	pf.StringP("file", "f", "", "Task file (default: takus.yml or takus.yaml in the working directory)")
	pf.String("shell", taskmanager.DefaultShell, "Shell used to interpret commands")
	pf.Bool("dry-run", false, "Print the execution plan without running any command")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&opts.jsonLogs, "json", false, "Output logs in JSON format")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(newRunCmd(), newListCmd(), newPlanCmd(), newValidateCmd())
	return rootCmd
}

// Execute runs the root command, stopping between commands on SIGINT or
// SIGTERM, and prints any error to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

// reportError prints err in the shape of the current log mode: one line when
// quiet, plain text next to JSON logs, a message box otherwise.
func reportError(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	switch {
	case logger.Quiet():
		fmt.Fprintln(out, taskerrors.DisplayErrorSummary(err))
		if taskerrors.ShouldDisplayTroubleshooting(err) {
			fmt.Fprintln(out, "Run without --quiet for troubleshooting steps")
		}
	case logger.JSON():
		fmt.Fprint(out, taskerrors.FormatForCLI(err))
	default:
		title, lines := taskerrors.FormatLines(err)
		fmt.Fprintln(out, utils.Error(title, lines...))
	}

	logger.Op.WithFields(map[string]interface{}{
		"code":       taskerrors.GetErrorCode(err),
		"severity":   taskerrors.GetErrorSeverity(err),
		"user_error": taskerrors.IsUserError(err),
	}).Debug(taskerrors.DisplayError(err))
}
