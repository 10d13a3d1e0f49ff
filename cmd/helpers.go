package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maxkimambo/takus/internal/config"
	taskerrors "github.com/maxkimambo/takus/internal/errors"
	"github.com/maxkimambo/takus/internal/taskmanager"
)

// DefaultTaskName is run when takus is invoked without task names.
const DefaultTaskName = "default"

type session struct {
	settings *config.Settings
	file     *config.File
	workflow *taskmanager.Workflow
}

// loadSession resolves settings, loads the task file and prepares a workflow
// writing to the command's output streams.
func loadSession(cmd *cobra.Command) (*session, error) {
	settings, err := config.LoadSettings(viper.New(), cmd.Flags())
	if err != nil {
		return nil, err
	}

	ec, err := taskmanager.NewExecutionContext(settings.Shell)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	path, err := config.FindFile(fs, ec.WorkingDir(), settings.File)
	if err != nil {
		return nil, err
	}

	file, err := config.Load(fs, path)
	if err != nil {
		return nil, err
	}

	registry, err := file.Registry()
	if err != nil {
		return nil, err
	}

	wf := taskmanager.NewWorkflow(registry, ec)
	wf.Stdout = cmd.OutOrStdout()
	wf.Stderr = cmd.ErrOrStderr()

	return &session{
		settings: settings,
		file:     file,
		workflow: wf,
	}, nil
}

// resolveTargets returns the task names to run for args.
func resolveTargets(args []string, registry *taskmanager.Registry) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if registry.Has(DefaultTaskName) {
		return []string{DefaultTaskName}, nil
	}
	return nil, taskerrors.NewNoTaskRequestedError(DefaultTaskName, registry.Names())
}
