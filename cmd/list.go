package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/takus/internal/utils"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the tasks of the task file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			registry := s.workflow.Registry
			if registry.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), utils.Info("No tasks defined", fmt.Sprintf("File: %s", s.file.Path())))
				return nil
			}

			table := utils.NewTableFormatter("TASK", "DEPENDS ON", "DIR", "COMMANDS")
			for _, name := range registry.Names() {
				task, _ := registry.Get(name)
				deps := strings.Join(task.Dependencies(), ", ")
				if deps == "" {
					deps = "-"
				}
				dir := task.Dir()
				if dir == "" {
					dir = "."
				}
				table.AddRow(name, deps, dir, strconv.Itoa(len(task.Commands())))
			}

			fmt.Fprint(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}
