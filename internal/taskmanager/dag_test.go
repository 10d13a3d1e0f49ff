package taskmanager

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	taskerrors "github.com/maxkimambo/takus/internal/errors"
)

func TestDAG_AddNode(t *testing.T) {
	dag := NewDAG()

	dag.AddNode("task1")
	dag.AddNode("task1")

	if dag.Len() != 1 {
		t.Errorf("Len() = %d, want 1", dag.Len())
	}
}

func TestDAG_AddEdgeDoesNotAddNodes(t *testing.T) {
	dag := NewDAG()

	dag.AddEdge("task1", "task2")

	if dag.Len() != 0 {
		t.Errorf("Len() = %d, want 0", dag.Len())
	}
}

func TestDAG_TopologicalSort_SimpleCase(t *testing.T) {
	dag := NewDAG()

	// task1 -> task2 -> task3
	for _, id := range []string{"task1", "task2", "task3"} {
		dag.AddNode(id)
	}
	dag.AddEdge("task1", "task2")
	dag.AddEdge("task2", "task3")

	result, err := dag.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}

	want := []string{"task3", "task2", "task1"}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("TopologicalSort() = %v, want %v", result, want)
	}
}

func TestDAG_Layers_Diamond(t *testing.T) {
	dag := NewDAG()

	// top depends on left and right, both depend on base
	for _, id := range []string{"top", "left", "right", "base"} {
		dag.AddNode(id)
	}
	dag.AddEdge("top", "left")
	dag.AddEdge("top", "right")
	dag.AddEdge("left", "base")
	dag.AddEdge("right", "base")

	layers, err := dag.Layers()
	if err != nil {
		t.Fatalf("Layers() error = %v", err)
	}

	want := [][]string{{"base"}, {"left", "right"}, {"top"}}
	if !reflect.DeepEqual(layers, want) {
		t.Errorf("Layers() = %v, want %v", layers, want)
	}
}

func TestDAG_Layers_IndependentNodesSorted(t *testing.T) {
	dag := NewDAG()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		dag.AddNode(id)
	}

	layers, err := dag.Layers()
	if err != nil {
		t.Fatalf("Layers() error = %v", err)
	}

	want := [][]string{{"alpha", "mid", "zeta"}}
	if !reflect.DeepEqual(layers, want) {
		t.Errorf("Layers() = %v, want %v", layers, want)
	}
}

func TestDAG_EdgeOutsideGraphIsSatisfied(t *testing.T) {
	dag := NewDAG()
	dag.AddNode("test")
	dag.AddEdge("test", "build")

	result, err := dag.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}
	if !reflect.DeepEqual(result, []string{"test"}) {
		t.Errorf("TopologicalSort() = %v, want [test]", result)
	}
}

func TestDAG_CircularDependency(t *testing.T) {
	dag := NewDAG()

	// task1 -> task2 -> task3 -> task1, and task4 -> task1
	for _, id := range []string{"task1", "task2", "task3", "task4", "task5"} {
		dag.AddNode(id)
	}
	dag.AddEdge("task1", "task2")
	dag.AddEdge("task2", "task3")
	dag.AddEdge("task3", "task1")
	dag.AddEdge("task4", "task1")

	_, err := dag.TopologicalSort()
	if err == nil {
		t.Fatal("TopologicalSort() should fail on a cycle")
	}
	if !errors.Is(err, taskerrors.ErrCyclicDependency) {
		t.Errorf("error should be a cyclic dependency error, got %v", err)
	}

	msg := err.Error()
	for _, id := range []string{"task1", "task2", "task3", "task4"} {
		if !strings.Contains(msg, id) {
			t.Errorf("error should name %s, got %q", id, msg)
		}
	}
	if strings.Contains(msg, "task5") {
		t.Errorf("error should not name the placed task5, got %q", msg)
	}
}

func TestDAG_SelfDependency(t *testing.T) {
	dag := NewDAG()
	dag.AddNode("loop")
	dag.AddEdge("loop", "loop")

	_, err := dag.Layers()
	if !errors.Is(err, taskerrors.ErrCyclicDependency) {
		t.Errorf("Layers() error = %v, want cyclic dependency", err)
	}
}

func TestOrder_FullRegistry(t *testing.T) {
	registry := exampleRegistry(t)

	selection, err := Select(registry, "A")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	order, err := Order(selection)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}

	want := []string{"E", "D", "C", "B", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestOrder_DependenciesComeFirst(t *testing.T) {
	registry := exampleRegistry(t)

	for _, name := range registry.Names() {
		selection, err := Select(registry, name)
		if err != nil {
			t.Fatalf("Select(%s) error = %v", name, err)
		}
		order, err := Order(selection)
		if err != nil {
			t.Fatalf("Order(%s) error = %v", name, err)
		}

		if len(order) != len(selection) {
			t.Errorf("Order(%s) has %d names, selection has %d", name, len(order), len(selection))
		}

		position := make(map[string]int, len(order))
		for i, n := range order {
			position[n] = i
		}
		for _, n := range order {
			task, _ := registry.Get(n)
			for _, dep := range task.Dependencies() {
				if position[dep] >= position[n] {
					t.Errorf("Order(%s): %s runs before its dependency %s", name, n, dep)
				}
			}
		}
	}
}

func TestOrder_Deterministic(t *testing.T) {
	registry := exampleRegistry(t)
	selection, err := Select(registry, "A")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	first, err := Order(selection)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		again, _ := Order(selection)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Order() changed between calls: %v then %v", first, again)
		}
	}
}

func TestOrder_Cycle(t *testing.T) {
	registry := cyclicRegistry(t)

	selection, err := Select(registry, "A")
	if err != nil {
		t.Fatalf("Select() should terminate without error on a cycle, got %v", err)
	}
	if len(selection) != 2 {
		t.Errorf("Select() returned %d tasks, want 2", len(selection))
	}

	_, err = Order(selection)
	if !errors.Is(err, taskerrors.ErrCyclicDependency) {
		t.Fatalf("Order() error = %v, want cyclic dependency", err)
	}
	if !strings.Contains(err.Error(), "A, B") {
		t.Errorf("error should list the unresolved tasks, got %q", err.Error())
	}
}
