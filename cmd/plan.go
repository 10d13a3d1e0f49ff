package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/takus/internal/taskmanager"
)

func newPlanCmd() *cobra.Command {
	var format string

	planCmd := &cobra.Command{
		Use:   "plan [task...]",
		Short: "Print the execution plan of tasks",
		Long: `Print, for each named task, the tasks it needs in execution order without
running anything. Tasks on the same layer only depend on earlier layers.

The plan can also be printed as a Graphviz graph (--format dot) or as JSON.`,
		Example: `takus plan build
takus plan --format dot release | dot -Tsvg > release.svg`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			targets, err := resolveTargets(args, s.workflow.Registry)
			if err != nil {
				return err
			}
			return printPlans(cmd, s, targets, format)
		},
	}

	planCmd.Flags().StringVar(&format, "format", taskmanager.FormatText,
		fmt.Sprintf("Output format: %s, %s or %s", taskmanager.FormatText, taskmanager.FormatDOT, taskmanager.FormatJSON))
	return planCmd
}

// printPlans writes the plan of every target in format.
func printPlans(cmd *cobra.Command, s *session, targets []string, format string) error {
	plans, err := s.workflow.Plan(targets)
	if err != nil {
		return err
	}

	out, err := taskmanager.NewPlanVisualization(s.workflow.Registry, plans).Render(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
