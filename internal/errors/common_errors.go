package errors

import (
	"fmt"
	"strings"
)

// Common error codes
const (
	// Configuration error codes
	CodeConfigRead    = "001"
	CodeConfigParse   = "002"
	CodeConfigInvalid = "003"

	// Lookup error codes
	CodeTaskNotFound       = "001"
	CodeDependencyNotFound = "002"
	CodeNoTaskRequested    = "003"

	// Dependency graph error codes
	CodeCyclicDependency = "001"

	// Execution error codes
	CodeCommandFailed = "001"
	CodeCommandSpawn  = "002"
	CodeInterrupted   = "003"
)

// NewConfigReadError creates an error for a configuration file that cannot be read
func NewConfigReadError(path string, originalErr error) *TaskError {
	return NewConfigurationError(CodeConfigRead,
		fmt.Sprintf("Failed to read configuration file '%s'", path),
		"Configuration load").
		WithContext("file", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Run takus from the directory containing takus.yml",
			"Pass the file explicitly with --file",
		)
}

// NewConfigParseError creates an error for a document that is not valid YAML
// or does not match the expected structure
func NewConfigParseError(path string, originalErr error) *TaskError {
	return NewConfigurationError(CodeConfigParse,
		fmt.Sprintf("Failed to parse configuration file '%s'", path),
		"Configuration load").
		WithContext("file", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Check the YAML syntax, indentation and anchors",
			"Make sure every task has a 'cmds' list",
		)
}

// NewConfigInvalidError creates an error for a document whose content does
// not match the expected structure
func NewConfigInvalidError(path string, originalErr error) *TaskError {
	return NewConfigurationError(CodeConfigInvalid,
		fmt.Sprintf("Configuration file '%s' is not a valid task document", path),
		"Configuration validation").
		WithContext("file", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"The document needs a string 'version' and a 'tasks' mapping",
			"Every task needs a 'cmds' list of strings; 'deps' is a list of task names",
			"Quote 'envs' values that look like numbers or booleans",
		)
}

// NewTaskNotFoundError creates an error for a requested task that does not exist
func NewTaskNotFoundError(name string, available []string) *TaskError {
	err := NewLookupError(CodeTaskNotFound,
		fmt.Sprintf("Task '%s' not found", name),
		"Task lookup").
		WithContext("task", name)
	if len(available) > 0 {
		err = err.WithTroubleshooting(
			fmt.Sprintf("Available tasks: %s", strings.Join(available, ", ")),
			"Run 'takus list' to see every task",
		)
	}
	return err
}

// NewNoTaskRequestedError creates an error for a run without task names when
// the document has no default task
func NewNoTaskRequestedError(defaultTask string, available []string) *TaskError {
	err := NewLookupError(CodeNoTaskRequested,
		fmt.Sprintf("No task given and no '%s' task defined", defaultTask),
		"Task lookup").
		WithTroubleshooting(
			"Pass one or more task names: takus <task>...",
			fmt.Sprintf("Or define a task named '%s'", defaultTask),
		)
	if len(available) > 0 {
		err = err.WithContext("available", strings.Join(available, ", "))
	}
	return err
}

// NewDependencyNotFoundError creates an error for a dependency name that does
// not match any task
func NewDependencyNotFoundError(task, dependency string) *TaskError {
	return NewLookupError(CodeDependencyNotFound,
		fmt.Sprintf("Task '%s' depends on unknown task '%s'", task, dependency),
		"Dependency selection").
		WithContext("task", task).
		WithContext("dependency", dependency).
		WithTroubleshooting(
			fmt.Sprintf("Define a task named '%s' or remove it from the deps of '%s'", dependency, task),
		)
}

// NewCyclicDependencyError creates an error for tasks whose dependencies form a cycle
func NewCyclicDependencyError(unresolved []string) *TaskError {
	return NewDependencyError(CodeCyclicDependency,
		fmt.Sprintf("Cyclic dependency between tasks: %s", strings.Join(unresolved, ", ")),
		"Execution ordering").
		WithContext("unresolved", strings.Join(unresolved, ", ")).
		WithTroubleshooting(
			"Remove one of the deps entries that closes the cycle",
		)
}

// NewCommandFailedError creates an error for a command that exited non-zero
func NewCommandFailedError(task, command string, exitCode int, stderr string, originalErr error) *TaskError {
	err := NewExecutionError(CodeCommandFailed,
		fmt.Sprintf("Command in task '%s' exited with status %d", task, exitCode),
		"Command execution").
		WithContext("task", task).
		WithContext("command", command).
		WithContext("exit_code", exitCode).
		WithOriginalError(originalErr)
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		err = err.WithContext("stderr", stderr)
	}
	return err
}

// NewCommandSpawnError creates an error for a command that could not be started
func NewCommandSpawnError(task, command, shell string, originalErr error) *TaskError {
	return NewExecutionError(CodeCommandSpawn,
		fmt.Sprintf("Failed to start command in task '%s'", task),
		"Command execution").
		WithContext("task", task).
		WithContext("command", command).
		WithContext("shell", shell).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			fmt.Sprintf("Check that the shell '%s' is installed and on PATH", shell),
			"Check that the task's dir exists",
		)
}

// NewInterruptedError creates an error for a run stopped before a command started
func NewInterruptedError(task, command string, originalErr error) *TaskError {
	return NewExecutionError(CodeInterrupted,
		fmt.Sprintf("Task '%s' interrupted", task),
		"Command execution").
		WithContext("task", task).
		WithContext("command", command).
		WithOriginalError(originalErr)
}

// GetErrorSeverity returns the severity level of an error
func GetErrorSeverity(err error) string {
	if taskErr, ok := asTaskError(err); ok {
		switch taskErr.Category {
		case ErrorCategoryConfiguration, ErrorCategoryLookup:
			return "WARNING"
		case ErrorCategoryDependency:
			return "ERROR"
		case ErrorCategoryExecution:
			return "CRITICAL"
		default:
			return "ERROR"
		}
	}
	return "ERROR"
}
