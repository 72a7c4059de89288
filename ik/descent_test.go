package ik_test

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/gomanoid/core/ik"
	"github.com/gomanoid/core/testutils"
)

// descend runs a plain Jacobian-transpose velocity loop over the task set,
// standing in for the external solver.
func descend(t *testing.T, chain *testutils.PlanarChain, ts *ik.TaskSet, iterations int, step float64) {
	t.Helper()
	for i := 0; i < iterations; i++ {
		outs, err := ts.Evaluate()
		test.That(t, err, test.ShouldBeNil)

		q := chain.JointPositions()
		for _, out := range outs {
			rows, cols := out.Jacobian.Dims()
			for c := 0; c < cols; c++ {
				var dq float64
				for r := 0; r < rows; r++ {
					dq += out.Jacobian.At(r, c) * out.Residual[r]
				}
				q[c] += step * out.Weight * dq
			}
		}
		test.That(t, chain.SetJointPositions(q), test.ShouldBeNil)
	}
}

func residualNorm(t *testing.T, task ik.Task) float64 {
	t.Helper()
	r, err := task.Residual()
	test.That(t, err, test.ShouldBeNil)
	var sum float64
	for _, v := range r {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func TestPositionTaskConverges(t *testing.T) {
	logger := golog.NewTestLogger(t)
	chain, err := testutils.NewPlanarChain([]float64{1, 1}, logger)
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, chain.Close(), test.ShouldBeNil)
	}()
	test.That(t, chain.SetJointPositions([]float64{0.1, 0.2}), test.ShouldBeNil)

	target := r3.Vector{X: 1, Y: 0.5}
	task, err := ik.NewLinkPositionTask(chain, chain.Link(1), ik.PointTarget(target), ik.TaskConfig{})
	test.That(t, err, test.ShouldBeNil)

	ts := ik.NewTaskSet(logger)
	ts.Add(task)
	descend(t, chain, ts, 1000, 0.2)

	test.That(t, residualNorm(t, task), test.ShouldBeLessThan, 1e-3)
	end := chain.Link(1).Position()
	test.That(t, end.X, test.ShouldAlmostEqual, target.X, 1e-3)
	test.That(t, end.Y, test.ShouldAlmostEqual, target.Y, 1e-3)
}

func TestExcludedDOFStaysFixed(t *testing.T) {
	logger := golog.NewTestLogger(t)
	chain, err := testutils.NewPlanarChain([]float64{1, 1}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.SetJointPositions([]float64{0.3, 0.4}), test.ShouldBeNil)

	// the base joint is excluded, so only the elbow may move
	task, err := ik.NewLinkPositionTask(chain, chain.Link(1),
		ik.PointTarget(r3.Vector{X: 1.5, Y: 1}), ik.TaskConfig{ExcludeDOFs: []int{0}})
	test.That(t, err, test.ShouldBeNil)

	ts := ik.NewTaskSet(logger)
	ts.Add(task)
	descend(t, chain, ts, 200, 0.2)

	test.That(t, chain.JointPositions()[0], test.ShouldAlmostEqual, 0.3, 1e-12)
}

func TestPoseTaskTracksBody(t *testing.T) {
	logger := golog.NewTestLogger(t)
	chain, err := testutils.NewPlanarChain([]float64{1, 1}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.SetJointPositions([]float64{0.2, -0.1}), test.ShouldBeNil)

	// track a body pinned at a reachable pose for the chain tip
	goal, err := testutils.NewPlanarChain([]float64{1, 1}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal.SetJointPositions([]float64{0.9, -0.5}), test.ShouldBeNil)

	task, err := ik.NewLinkPoseTask(chain, chain.Link(1), ik.BodyTarget(goal.Link(1)), ik.TaskConfig{})
	test.That(t, err, test.ShouldBeNil)

	ts := ik.NewTaskSet(logger)
	ts.Add(task)
	descend(t, chain, ts, 5000, 0.1)

	test.That(t, residualNorm(t, task), test.ShouldBeLessThan, 1e-3)
	q := chain.JointPositions()
	test.That(t, q[0], test.ShouldAlmostEqual, 0.9, 1e-2)
	test.That(t, q[1], test.ShouldAlmostEqual, -0.5, 1e-2)
}
