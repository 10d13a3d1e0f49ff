package taskmanager

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskerrors "github.com/maxkimambo/takus/internal/errors"
)

// recordingRegistry builds the example graph with every task appending its
// name to order.txt.
func recordingRegistry(t *testing.T) *Registry {
	t.Helper()
	rb := NewRegistryBuilder()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		rb.AddTask(name, "echo "+name+" >> order.txt", "echo ran "+name)
	}
	rb.AddDependency("D", "E").
		AddDependency("C", "D").
		AddDependency("B", "E").AddDependency("B", "C").
		AddDependency("A", "B")

	registry, err := rb.Build()
	require.NoError(t, err)
	return registry
}

func newTestWorkflow(t *testing.T, registry *Registry) (*Workflow, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	wf := NewWorkflow(registry, NewExecutionContextAt(dir, ""))
	out := &bytes.Buffer{}
	wf.Stdout = out
	wf.Stderr = &bytes.Buffer{}
	return wf, out, dir
}

func readOrder(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "order.txt"))
	require.NoError(t, err)
	return strings.Fields(string(data))
}

func TestNewWorkflow(t *testing.T) {
	wf := NewWorkflow(exampleRegistry(t), NewExecutionContextAt("/", ""))

	assert.Equal(t, StatusPending, wf.Status)
	assert.Equal(t, os.Stdout, wf.Stdout)
	assert.Equal(t, os.Stderr, wf.Stderr)
}

func TestWorkflow_Run(t *testing.T) {
	wf, out, dir := newTestWorkflow(t, recordingRegistry(t))

	err := wf.Run(context.Background(), []string{"A"})
	require.NoError(t, err)

	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, readOrder(t, dir))
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, wf.Executed)
	assert.Equal(t, StatusCompleted, wf.Status)
	assert.Positive(t, wf.Duration)

	output := out.String()
	assert.Contains(t, output, "[1/5] E")
	assert.Contains(t, output, "[5/5] A")
	assert.Less(t, strings.Index(output, "ran E"), strings.Index(output, "ran A"))
}

func TestWorkflow_RunOnlyClosure(t *testing.T) {
	wf, _, dir := newTestWorkflow(t, recordingRegistry(t))

	require.NoError(t, wf.Run(context.Background(), []string{"C"}))

	assert.Equal(t, []string{"E", "D", "C"}, readOrder(t, dir))
}

func TestWorkflow_RunPlansInRequestOrder(t *testing.T) {
	wf, _, dir := newTestWorkflow(t, recordingRegistry(t))

	require.NoError(t, wf.Run(context.Background(), []string{"D", "C"}))

	// shared tasks run once per requested plan
	assert.Equal(t, []string{"E", "D", "E", "D", "C"}, readOrder(t, dir))
}

func TestWorkflow_RunFailureIdentifiesTask(t *testing.T) {
	registry, err := NewRegistryBuilder().
		AddTask("build", "exit 2").
		AddTask("test", "touch tested").
		AddDependency("test", "build").
		Build()
	require.NoError(t, err)
	wf, _, dir := newTestWorkflow(t, registry)

	err = wf.Run(context.Background(), []string{"test"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "task build failed")
	assert.True(t, errors.Is(err, taskerrors.ErrCommandExecution))
	assert.Equal(t, StatusFailed, wf.Status)
	assert.Empty(t, wf.Executed)

	_, statErr := os.Stat(filepath.Join(dir, "tested"))
	assert.True(t, os.IsNotExist(statErr), "dependent task should not run")
}

func TestWorkflow_RunFailureStopsRemainingRequests(t *testing.T) {
	registry, err := NewRegistryBuilder().
		AddTask("build", "exit 1").
		AddTask("other", "touch other-ran").
		Build()
	require.NoError(t, err)
	wf, _, dir := newTestWorkflow(t, registry)

	err = wf.Run(context.Background(), []string{"build", "other"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, taskerrors.ErrCommandExecution))
	assert.Equal(t, StatusFailed, wf.Status)
	assert.Empty(t, wf.Executed)

	_, statErr := os.Stat(filepath.Join(dir, "other-ran"))
	assert.True(t, os.IsNotExist(statErr), "later requested task should not run")
}

func TestWorkflow_RunUnknownTask(t *testing.T) {
	wf, _, _ := newTestWorkflow(t, recordingRegistry(t))

	err := wf.Run(context.Background(), []string{"A", "deploy"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, taskerrors.ErrTaskNotFound))
	assert.Equal(t, StatusFailed, wf.Status)
	assert.Len(t, wf.Executed, 5, "plans before the unknown name run")
}

func TestWorkflow_RunCycleRunsNothing(t *testing.T) {
	wf, out, _ := newTestWorkflow(t, cyclicRegistry(t))

	err := wf.Run(context.Background(), []string{"A"})

	assert.True(t, errors.Is(err, taskerrors.ErrCyclicDependency))
	assert.Empty(t, out.String())
}

func TestWorkflow_Plan(t *testing.T) {
	wf, out, _ := newTestWorkflow(t, exampleRegistry(t))

	plans, err := wf.Plan([]string{"A", "D"})
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, "A", plans[0].Target)
	assert.Equal(t, [][]string{{"E"}, {"D"}, {"C"}, {"B"}, {"A"}}, plans[0].Layers)
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, plans[0].Order())
	assert.Equal(t, 5, plans[0].Len())
	assert.Equal(t, []string{"E", "D"}, plans[1].Order())
	assert.Empty(t, out.String())
}

func TestWorkflow_Validate(t *testing.T) {
	wf, _, _ := newTestWorkflow(t, exampleRegistry(t))
	assert.NoError(t, wf.Validate())

	wf, _, _ = newTestWorkflow(t, cyclicRegistry(t))
	assert.True(t, errors.Is(wf.Validate(), taskerrors.ErrCyclicDependency))
}
