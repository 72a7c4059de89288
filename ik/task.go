// Package ik defines the differential task abstraction consumed by a
// velocity-level inverse-kinematics solver. Each task maps current robot
// state to a Jacobian and a task-space residual; the solver stacks every
// active task's (Jacobian, gain-scaled residual, weight) tuple into one
// optimization problem per control cycle. Tasks are pure evaluators: they
// hold no cached state across cycles and never write body state.
package ik

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/gomanoid/core/body"
)

// Default task parameters. A gain below 1 corrects only a fraction of the
// residual per cycle, giving a damped convergence profile that avoids
// overshoot when several tasks are composed.
const (
	DefaultGain   = 0.85
	DefaultWeight = 1.
)

// Kinematics is the external provider of Jacobians and whole-robot
// quantities for the links of a kinematic chain. Calls are synchronous, read
// only, and evaluated against the same unchanging state within one control
// cycle.
type Kinematics interface {
	// DoF returns the number of controllable degrees of freedom, i.e. the
	// column count of every Jacobian.
	DoF() int

	// ComputeLinkPositionJacobian maps joint velocities to the linear
	// velocity of a link (3 x DoF).
	ComputeLinkPositionJacobian(link *body.Body) (*mat.Dense, error)

	// ComputeLinkPoseJacobian maps joint velocities to the rate of change of
	// a link's flattened pose (7 x DoF).
	ComputeLinkPoseJacobian(link *body.Body) (*mat.Dense, error)

	// COM returns the robot's center of mass in the world frame.
	COM() r3.Vector

	// ComputeCOMJacobian maps joint velocities to the velocity of the center
	// of mass (3 x DoF).
	ComputeCOMJacobian() (*mat.Dense, error)
}

// Task is one control objective. Implementations are stateless beyond their
// construction-time bindings and are re-evaluated every control cycle.
type Task interface {
	// Name identifies the task inside a TaskSet.
	Name() string

	// Type is the task kind, e.g. "link_pos".
	Type() string

	// Jacobian returns the matrix mapping joint velocities to task-space
	// velocity for the current state.
	Jacobian() (*mat.Dense, error)

	// Residual returns the raw task-space error between current and target
	// state. Gain scaling is applied by the consumer, not here.
	Residual() ([]float64, error)

	// Gain is the fraction of the residual to correct per control cycle,
	// in (0, 1].
	Gain() float64

	// Weight is the task's relative importance in the stacked cost.
	Weight() float64

	// ExcludedDOFs lists Jacobian columns this task must ignore.
	ExcludedDOFs() []int
}

// TaskConfig carries the tunable parameters of a task. The zero value of
// Gain or Weight selects the package default.
type TaskConfig struct {
	Gain        float64 `json:"gain"`
	Weight      float64 `json:"weight"`
	ExcludeDOFs []int   `json:"exclude_dofs,omitempty"`
}

// withDefaults fills unset parameters.
func (cfg TaskConfig) withDefaults() TaskConfig {
	if cfg.Gain == 0 {
		cfg.Gain = DefaultGain
	}
	if cfg.Weight == 0 {
		cfg.Weight = DefaultWeight
	}
	return cfg
}

// Validate checks the parameter ranges. It is called by every task
// constructor so bad configuration fails at creation time, not per cycle.
func (cfg TaskConfig) Validate() error {
	if cfg.Gain <= 0 || cfg.Gain > 1 {
		return errors.Errorf("gain must be in (0, 1], got %f", cfg.Gain)
	}
	if cfg.Weight <= 0 {
		return errors.Errorf("weight must be positive, got %f", cfg.Weight)
	}
	for _, dof := range cfg.ExcludeDOFs {
		if dof < 0 {
			return errors.Errorf("excluded DOF index must be non-negative, got %d", dof)
		}
	}
	return nil
}

// baseTask carries the name, type and parameters shared by all task kinds.
type baseTask struct {
	name     string
	taskType string
	cfg      TaskConfig
}

func newBaseTask(name, taskType string, cfg TaskConfig) (baseTask, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return baseTask{}, errors.Wrapf(err, "invalid config for %s task %q", taskType, name)
	}
	return baseTask{name: name, taskType: taskType, cfg: cfg}, nil
}

func (t *baseTask) Name() string        { return t.name }
func (t *baseTask) Type() string        { return t.taskType }
func (t *baseTask) Gain() float64       { return t.cfg.Gain }
func (t *baseTask) Weight() float64     { return t.cfg.Weight }
func (t *baseTask) ExcludedDOFs() []int { return t.cfg.ExcludeDOFs }
