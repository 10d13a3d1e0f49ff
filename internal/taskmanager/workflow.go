package taskmanager

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maxkimambo/takus/internal/logger"
	"github.com/maxkimambo/takus/internal/utils"
)

// Workflow status values
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Plan is the execution plan of one requested task.
type Plan struct {
	Target string
	Layers [][]string
}

// Order returns the plan's tasks in execution order.
func (p Plan) Order() []string {
	var order []string
	for _, layer := range p.Layers {
		order = append(order, layer...)
	}
	return order
}

// Len returns the number of tasks in the plan.
func (p Plan) Len() int {
	n := 0
	for _, layer := range p.Layers {
		n += len(layer)
	}
	return n
}

// Workflow runs requested tasks from a registry, one plan after another.
type Workflow struct {
	Registry *Registry
	Context  *ExecutionContext
	Stdout   io.Writer
	Stderr   io.Writer

	Duration time.Duration // Total duration of the run
	Status   string        // "pending", "running", "completed" or "failed"
	Executed []string      // Tasks that completed, in run order

	started time.Time
}

// NewWorkflow creates a workflow writing task output to the process streams.
func NewWorkflow(registry *Registry, ec *ExecutionContext) *Workflow {
	return &Workflow{
		Registry: registry,
		Context:  ec,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Status:   StatusPending,
	}
}

// PlanFor selects and orders everything needed to run name.
func (w *Workflow) PlanFor(name string) (Plan, error) {
	selection, err := Select(w.Registry, name)
	if err != nil {
		return Plan{}, err
	}
	layers, err := Layers(selection)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Target: name, Layers: layers}, nil
}

// Plan computes the plans of all requested names without running anything.
func (w *Workflow) Plan(names []string) ([]Plan, error) {
	plans := make([]Plan, 0, len(names))
	for _, name := range names {
		plan, err := w.PlanFor(name)
		if err != nil {
			return nil, fmt.Errorf("failed to plan task %s: %w", name, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Validate plans every task in the registry, reporting the first missing
// dependency or cycle.
func (w *Workflow) Validate() error {
	_, err := w.Plan(w.Registry.Names())
	return err
}

// Run executes the requested tasks in the order given. Each name is planned
// and run to completion before the next one is planned. The first failing
// task stops the whole run.
func (w *Workflow) Run(ctx context.Context, names []string) error {
	w.started = time.Now()
	w.Status = StatusRunning
	w.Executed = nil

	for _, name := range names {
		plan, err := w.PlanFor(name)
		if err != nil {
			w.finish(StatusFailed)
			return fmt.Errorf("failed to plan task %s: %w", name, err)
		}
		logger.Op.Debugf("Execution order for %s: %v", name, plan.Order())

		if err := w.runPlan(ctx, plan); err != nil {
			w.finish(StatusFailed)
			return err
		}
	}

	w.finish(StatusCompleted)
	return nil
}

func (w *Workflow) runPlan(ctx context.Context, plan Plan) error {
	order := plan.Order()
	for i, name := range order {
		task, ok := w.Registry.Get(name)
		if !ok {
			return fmt.Errorf("task %s disappeared from the registry", name)
		}

		if _, err := fmt.Fprintln(w.Stdout, utils.TaskBanner(name, i+1, len(order))); err != nil {
			return err
		}

		start := time.Now()
		if err := task.Execute(ctx, w.Context, w.Stdout, w.Stderr); err != nil {
			logger.Op.Debugf("Task %s failed after %s", name, time.Since(start).Round(time.Millisecond))
			return fmt.Errorf("task %s failed: %w", name, err)
		}
		logger.Op.Debugf("Task %s finished in %s", name, time.Since(start).Round(time.Millisecond))
		w.Executed = append(w.Executed, name)
	}
	return nil
}

func (w *Workflow) finish(status string) {
	w.Duration = time.Since(w.started)
	w.Status = status
}
