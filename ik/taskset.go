package ik

import (
	"sort"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TaskOutput is what the external solver consumes for one task on one
// control cycle.
type TaskOutput struct {
	// Name of the producing task.
	Name string

	// Jacobian with excluded columns zeroed.
	Jacobian *mat.Dense

	// Residual already scaled by the task's gain.
	Residual []float64

	// Weight of the task in the stacked cost.
	Weight float64

	// ExcludedDOFs echoes which columns were zeroed.
	ExcludedDOFs []int
}

// TaskSet is the registry of active tasks for one control loop. One Evaluate
// call is one control cycle: every task is evaluated against the same body
// state, and by the single-writer discipline of the loop no transform is
// written until Evaluate returns. Add and Remove between Evaluate calls
// therefore take effect exactly on a cycle boundary. TaskSet is not
// goroutine safe; it belongs to the control loop's goroutine.
type TaskSet struct {
	logger golog.Logger
	tasks  map[string]Task
}

// NewTaskSet returns an empty task set.
func NewTaskSet(logger golog.Logger) *TaskSet {
	return &TaskSet{logger: logger, tasks: map[string]Task{}}
}

// Add registers a task under its name, replacing any task already there.
func (ts *TaskSet) Add(t Task) {
	if _, ok := ts.tasks[t.Name()]; ok {
		ts.logger.Warnw("overwriting task", "name", t.Name(), "type", t.Type())
	}
	ts.tasks[t.Name()] = t
}

// Remove drops a task by name. Removing an absent name is a no-op.
func (ts *TaskSet) Remove(name string) {
	delete(ts.tasks, name)
}

// Task looks a task up by name.
func (ts *TaskSet) Task(name string) (Task, bool) {
	t, ok := ts.tasks[name]
	return t, ok
}

// Names returns the registered task names in sorted order.
func (ts *TaskSet) Names() []string {
	names := make([]string, 0, len(ts.tasks))
	for name := range ts.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs every task once and returns their outputs in sorted name
// order. Each output pairs the task's Jacobian, with excluded columns
// zeroed, with its gain-scaled residual and weight.
func (ts *TaskSet) Evaluate() ([]TaskOutput, error) {
	outputs := make([]TaskOutput, 0, len(ts.tasks))
	for _, name := range ts.Names() {
		task := ts.tasks[name]
		out, err := evaluateTask(task)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot evaluate %s task %q", task.Type(), name)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func evaluateTask(task Task) (TaskOutput, error) {
	jac, err := task.Jacobian()
	if err != nil {
		return TaskOutput{}, err
	}
	residual, err := task.Residual()
	if err != nil {
		return TaskOutput{}, err
	}
	rows, cols := jac.Dims()
	if rows != len(residual) {
		return TaskOutput{}, errors.Errorf("jacobian has %d rows but residual has %d elements", rows, len(residual))
	}

	scaled := make([]float64, len(residual))
	for i, r := range residual {
		scaled[i] = task.Gain() * r
	}

	masked := mat.DenseCopyOf(jac)
	for _, dof := range task.ExcludedDOFs() {
		if dof >= cols {
			return TaskOutput{}, errors.Errorf("excluded DOF %d out of range, jacobian has %d columns", dof, cols)
		}
		for r := 0; r < rows; r++ {
			masked.Set(r, dof, 0)
		}
	}

	return TaskOutput{
		Name:         task.Name(),
		Jacobian:     masked,
		Residual:     scaled,
		Weight:       task.Weight(),
		ExcludedDOFs: task.ExcludedDOFs(),
	}, nil
}
