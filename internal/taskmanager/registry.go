package taskmanager

import (
	"fmt"
	"sort"
)

// Registry maps task names to tasks. It is built once and only read afterwards.
type Registry struct {
	tasks map[string]*Task
}

// NewRegistry creates a registry from tasks. Names must be non-empty and unique.
func NewRegistry(tasks ...*Task) (*Registry, error) {
	r := &Registry{tasks: make(map[string]*Task, len(tasks))}
	for _, task := range tasks {
		if task == nil {
			return nil, fmt.Errorf("task cannot be nil")
		}
		if task.Name() == "" {
			return nil, fmt.Errorf("task name cannot be empty")
		}
		if _, exists := r.tasks[task.Name()]; exists {
			return nil, fmt.Errorf("task %s is defined more than once", task.Name())
		}
		r.tasks[task.Name()] = task
	}
	return r, nil
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (*Task, bool) {
	task, ok := r.tasks[name]
	return task, ok
}

// Has reports whether a task named name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.tasks[name]
	return ok
}

// Names returns every task name in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.tasks)
}
