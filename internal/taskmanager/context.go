package taskmanager

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultShell interprets task commands when no other shell is configured.
const DefaultShell = "sh"

// ExecutionContext is the run-wide state handed to every task execution.
// It is created once per run and never modified afterwards.
type ExecutionContext struct {
	workingDir string
	shell      string
}

// NewExecutionContext captures the process working directory.
func NewExecutionContext(shell string) (*ExecutionContext, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return NewExecutionContextAt(wd, shell), nil
}

// NewExecutionContextAt creates a context rooted at workingDir.
// An empty shell falls back to DefaultShell.
func NewExecutionContextAt(workingDir, shell string) *ExecutionContext {
	if shell == "" {
		shell = DefaultShell
	}
	return &ExecutionContext{
		workingDir: workingDir,
		shell:      shell,
	}
}

// WorkingDir returns the directory the run was started from.
func (c *ExecutionContext) WorkingDir() string {
	return c.workingDir
}

// Shell returns the shell used to interpret commands.
func (c *ExecutionContext) Shell() string {
	return c.shell
}

// Resolve returns dir as an absolute path, relative paths being taken from
// the working directory. An empty dir resolves to the working directory.
func (c *ExecutionContext) Resolve(dir string) string {
	if dir == "" {
		return c.workingDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.workingDir, dir)
}
