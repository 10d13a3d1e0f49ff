package taskmanager

import (
	"fmt"
)

type taskDraft struct {
	commands []string
	deps     []string
	dir      string
	env      map[string]string
}

// RegistryBuilder assembles a Registry task by task.
type RegistryBuilder struct {
	drafts map[string]*taskDraft
	order  []string
	errs   []error
}

// NewRegistryBuilder creates an empty RegistryBuilder
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		drafts: make(map[string]*taskDraft),
	}
}

// AddTask adds a task with its commands to the registry being built
func (rb *RegistryBuilder) AddTask(name string, commands ...string) *RegistryBuilder {
	if name == "" {
		rb.errs = append(rb.errs, fmt.Errorf("task name cannot be empty"))
		return rb
	}
	if _, exists := rb.drafts[name]; exists {
		rb.errs = append(rb.errs, fmt.Errorf("task %s is defined more than once", name))
		return rb
	}
	rb.drafts[name] = &taskDraft{
		commands: commands,
		env:      make(map[string]string),
	}
	rb.order = append(rb.order, name)
	return rb
}

// AddDependency records that taskName depends on dependencyName. The
// dependency does not have to be defined; missing names are reported when a
// selection reaches them.
func (rb *RegistryBuilder) AddDependency(taskName, dependencyName string) *RegistryBuilder {
	if draft := rb.draft(taskName); draft != nil {
		draft.deps = append(draft.deps, dependencyName)
	}
	return rb
}

// SetDir sets the working directory override of taskName
func (rb *RegistryBuilder) SetDir(taskName, dir string) *RegistryBuilder {
	if draft := rb.draft(taskName); draft != nil {
		draft.dir = dir
	}
	return rb
}

// SetEnv sets an environment variable for taskName
func (rb *RegistryBuilder) SetEnv(taskName, key, value string) *RegistryBuilder {
	if draft := rb.draft(taskName); draft != nil {
		draft.env[key] = value
	}
	return rb
}

// Build validates and constructs the final Registry
func (rb *RegistryBuilder) Build() (*Registry, error) {
	if len(rb.errs) > 0 {
		return nil, rb.errs[0]
	}

	tasks := make([]*Task, 0, len(rb.order))
	for _, name := range rb.order {
		d := rb.drafts[name]
		tasks = append(tasks, NewTask(name, d.commands, d.deps, d.dir, d.env))
	}
	return NewRegistry(tasks...)
}

func (rb *RegistryBuilder) draft(name string) *taskDraft {
	d, exists := rb.drafts[name]
	if !exists {
		rb.errs = append(rb.errs, fmt.Errorf("task %s is not defined", name))
		return nil
	}
	return d
}
