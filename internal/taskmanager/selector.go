package taskmanager

import (
	"sort"

	taskerrors "github.com/maxkimambo/takus/internal/errors"
	"github.com/maxkimambo/takus/internal/logger"
)

// Selection is the set of tasks needed to run one requested task: the task
// itself and everything it transitively depends on.
type Selection map[string]*Task

// Names returns the selected task names in ascending order.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DAG builds the dependency graph of the selection. Edges to tasks outside
// the selection are kept but never block ordering.
func (s Selection) DAG() *DAG {
	dag := NewDAG()
	for name, task := range s {
		dag.AddNode(name)
		for _, dep := range task.Dependencies() {
			dag.AddEdge(name, dep)
		}
	}
	return dag
}

type dependencyEdge struct {
	from string
	to   string
}

// Select computes the dependency closure of name breadth first. Each task is
// expanded at most once, so cyclic graphs terminate. A requested name or a
// dependency name without a task fails with a TaskNotFound error.
func Select(registry *Registry, name string) (Selection, error) {
	root, ok := registry.Get(name)
	if !ok {
		return nil, taskerrors.NewTaskNotFoundError(name, registry.Names())
	}

	selection := Selection{name: root}
	expanded := NewNameSet(name)
	frontier := edgesFrom(root)

	for len(frontier) > 0 {
		var next []dependencyEdge
		for _, edge := range frontier {
			if expanded.Contains(edge.to) {
				continue
			}
			task, ok := registry.Get(edge.to)
			if !ok {
				return nil, taskerrors.NewDependencyNotFoundError(edge.from, edge.to)
			}
			expanded.Add(edge.to)
			selection[edge.to] = task
			next = append(next, edgesFrom(task)...)
		}
		frontier = next
	}

	logger.Op.Debugf("Selected %d task(s) for %s: %v", len(selection), name, selection.Names())
	return selection, nil
}

func edgesFrom(task *Task) []dependencyEdge {
	deps := task.Dependencies()
	edges := make([]dependencyEdge, 0, len(deps))
	for _, dep := range deps {
		edges = append(edges, dependencyEdge{from: task.Name(), to: dep})
	}
	return edges
}
