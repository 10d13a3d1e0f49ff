package taskmanager

import (
	taskerrors "github.com/maxkimambo/takus/internal/errors"
)

// DAG is a dependency graph over task names.
type DAG struct {
	nodes NameSet
	edges map[string]NameSet // node -> nodes it depends on
}

// NewDAG creates a new empty DAG.
func NewDAG() *DAG {
	return &DAG{
		nodes: NewNameSet(),
		edges: make(map[string]NameSet),
	}
}

// AddNode adds a node to the DAG. Adding an existing node is a no-op.
func (d *DAG) AddNode(id string) {
	d.nodes.Add(id)
}

// AddEdge records that 'from' depends on 'to'. It does not add nodes: an edge
// whose target is not a node is treated as already satisfied.
func (d *DAG) AddEdge(from, to string) {
	if d.edges[from] == nil {
		d.edges[from] = NewNameSet()
	}
	d.edges[from].Add(to)
}

// Len returns the number of nodes.
func (d *DAG) Len() int {
	return d.nodes.Len()
}

// Layers groups the nodes into passes of Kahn's algorithm: every node in a
// layer depends only on nodes of earlier layers. Nodes within a layer are
// sorted by name. A pass that places nothing means the remaining nodes form
// or depend on a cycle; they are reported as a CyclicDependency error.
func (d *DAG) Layers() ([][]string, error) {
	placed := NewNameSet()
	remaining := d.nodes.Sorted()
	var layers [][]string

	for len(remaining) > 0 {
		var layer, blocked []string
		for _, id := range remaining {
			if d.ready(id, placed) {
				layer = append(layer, id)
			} else {
				blocked = append(blocked, id)
			}
		}

		if len(layer) == 0 {
			return nil, taskerrors.NewCyclicDependencyError(blocked)
		}

		for _, id := range layer {
			placed.Add(id)
		}
		layers = append(layers, layer)
		remaining = blocked
	}

	return layers, nil
}

// TopologicalSort returns the nodes in execution order, dependencies first.
// Ties are broken by name so the result is deterministic.
func (d *DAG) TopologicalSort() ([]string, error) {
	layers, err := d.Layers()
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, d.Len())
	for _, layer := range layers {
		result = append(result, layer...)
	}
	return result, nil
}

func (d *DAG) ready(id string, placed NameSet) bool {
	for dep := range d.edges[id] {
		if d.nodes.Contains(dep) && !placed.Contains(dep) {
			return false
		}
	}
	return true
}

// Order returns the execution order of a selection.
func Order(selection Selection) ([]string, error) {
	return selection.DAG().TopologicalSort()
}

// Layers returns the execution layers of a selection.
func Layers(selection Selection) ([][]string, error) {
	return selection.DAG().Layers()
}
