package taskmanager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	taskerrors "github.com/maxkimambo/takus/internal/errors"
	"github.com/maxkimambo/takus/internal/logger"
)

const killWaitDelay = 2 * time.Second

// Task is a named unit of shell work. Tasks never change after NewTask.
type Task struct {
	name     string
	commands []string
	deps     NameSet
	dir      string
	env      map[string]string
}

// NewTask creates a task. Inputs are copied, so later changes by the caller
// do not leak into the task. Duplicate dependency names collapse into one.
func NewTask(name string, commands, deps []string, dir string, env map[string]string) *Task {
	t := &Task{
		name:     name,
		commands: append([]string(nil), commands...),
		deps:     NewNameSet(deps...),
		dir:      dir,
		env:      make(map[string]string, len(env)),
	}
	for k, v := range env {
		t.env[k] = v
	}
	return t
}

func (t *Task) Name() string {
	return t.name
}

// Commands returns the shell commands in execution order.
func (t *Task) Commands() []string {
	return append([]string(nil), t.commands...)
}

// Dependencies returns the names of the tasks this task depends on, sorted.
func (t *Task) Dependencies() []string {
	return t.deps.Sorted()
}

// DependsOn reports whether name is a direct dependency of the task.
func (t *Task) DependsOn(name string) bool {
	return t.deps.Contains(name)
}

// Dir returns the working directory override, empty when unset.
func (t *Task) Dir() string {
	return t.dir
}

// Env returns a copy of the task's environment overrides.
func (t *Task) Env() map[string]string {
	env := make(map[string]string, len(t.env))
	for k, v := range t.env {
		env[k] = v
	}
	return env
}

// WorkingDir returns the directory the task's commands run in.
func (t *Task) WorkingDir(ec *ExecutionContext) string {
	return ec.Resolve(t.dir)
}

// Environ returns parent with the task's variables applied on top. Inherited
// variables with the same name are dropped so the override always wins.
func (t *Task) Environ(parent []string) []string {
	environ := make([]string, 0, len(parent)+len(t.env))
	for _, kv := range parent {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := t.env[key]; overridden {
			continue
		}
		environ = append(environ, kv)
	}

	keys := make([]string, 0, len(t.env))
	for k := range t.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+t.env[k])
	}
	return environ
}

// Execute runs the task's commands one after another. Each command's stdout
// is written to stdout once the command has exited. The first command that
// cannot be started or exits non-zero stops the task.
func (t *Task) Execute(ctx context.Context, ec *ExecutionContext, stdout, stderr io.Writer) error {
	if len(t.commands) == 0 {
		logger.Op.Debugf("Task %s has no commands", t.name)
		return nil
	}

	for _, command := range t.commands {
		if err := ctx.Err(); err != nil {
			return taskerrors.NewInterruptedError(t.name, command, err)
		}
		if err := t.runCommand(ctx, ec, command, stdout, stderr); err != nil {
			return err
		}
	}
	return nil
}

func (t *Task) runCommand(ctx context.Context, ec *ExecutionContext, command string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, ec.Shell(), "-c", command)
	cmd.Dir = t.WorkingDir(ec)
	cmd.Env = t.Environ(os.Environ())
	// children of a killed shell may keep the output pipes open
	cmd.WaitDelay = killWaitDelay

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	logger.Op.WithFields(map[string]interface{}{
		"task": t.name,
		"dir":  cmd.Dir,
	}).Debugf("$ %s", command)

	start := time.Now()
	runErr := cmd.Run()
	logger.Op.Debugf("Command finished in %s", time.Since(start).Round(time.Millisecond))

	if _, err := stdout.Write(outBuf.Bytes()); err != nil {
		return err
	}

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return taskerrors.NewInterruptedError(t.name, command, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return taskerrors.NewCommandFailedError(t.name, command, exitErr.ExitCode(), errBuf.String(), runErr)
		}
		return taskerrors.NewCommandSpawnError(t.name, command, ec.Shell(), runErr)
	}

	_, err := stderr.Write(errBuf.Bytes())
	return err
}
