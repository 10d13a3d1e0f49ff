package taskmanager

import "testing"

// exampleRegistry builds E:[], D:[E], C:[D], B:[E,C], A:[B].
func exampleRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := NewRegistryBuilder().
		AddTask("E").
		AddTask("D").AddDependency("D", "E").
		AddTask("C").AddDependency("C", "D").
		AddTask("B").AddDependency("B", "E").AddDependency("B", "C").
		AddTask("A").AddDependency("A", "B").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return registry
}

func cyclicRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := NewRegistryBuilder().
		AddTask("A").AddDependency("A", "B").
		AddTask("B").AddDependency("B", "A").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return registry
}
