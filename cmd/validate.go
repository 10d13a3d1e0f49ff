package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/takus/internal/utils"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the task file without running anything",
		Long: `Load the task file, validate it against the document schema and check that
every task's dependencies exist and contain no cycle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			if err := s.workflow.Validate(); err != nil {
				return err
			}

			if s.workflow.Registry.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), utils.Warning("Task file is valid but defines no tasks",
					fmt.Sprintf("File: %s", s.file.Path()),
					"Add entries under 'tasks' to have something to run",
				))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), utils.Success("Task file is valid",
				fmt.Sprintf("File: %s", s.file.Path()),
				fmt.Sprintf("Version: %s", s.file.Version),
				fmt.Sprintf("Tasks: %d", s.workflow.Registry.Len()),
			))
			return nil
		},
	}
}
