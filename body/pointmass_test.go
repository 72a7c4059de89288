package body_test

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/testutils"
)

func TestFreeFall(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine := testutils.NewFakeEngine()
	pm, err := body.NewPointMass(engine, r3.Vector{}, 1, "ball", logger)
	test.That(t, err, test.ShouldBeNil)

	gravity := r3.Vector{Z: -9.8}
	test.That(t, pm.IntegrateAcceleration(gravity, 1), test.ShouldBeNil)
	test.That(t, pm.Position().Z, test.ShouldAlmostEqual, -4.9)
	test.That(t, pm.Velocity().Z, test.ShouldAlmostEqual, -9.8)
}

func TestIntegrationMatchesClosedForm(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine := testutils.NewFakeEngine()

	p0 := r3.Vector{X: 1, Y: -2, Z: 0.5}
	v0 := r3.Vector{X: 0.3, Y: 1.1, Z: -0.7}
	a := r3.Vector{X: -0.2, Y: 0.4, Z: 9.81}
	dt := 0.37

	pm, err := body.NewPointMass(engine, p0, 2.5, "pm", logger)
	test.That(t, err, test.ShouldBeNil)
	pm.SetVelocity(v0)
	test.That(t, pm.IntegrateAcceleration(a, dt), test.ShouldBeNil)

	wantP := p0.Add(v0.Mul(dt)).Add(a.Mul(0.5 * dt * dt))
	wantV := v0.Add(a.Mul(dt))
	test.That(t, pm.Position().X, test.ShouldAlmostEqual, wantP.X, 1e-12)
	test.That(t, pm.Position().Y, test.ShouldAlmostEqual, wantP.Y, 1e-12)
	test.That(t, pm.Position().Z, test.ShouldAlmostEqual, wantP.Z, 1e-12)
	test.That(t, pm.Velocity(), test.ShouldResemble, wantV)
}

func TestIntegrationEdgeDurations(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine := testutils.NewFakeEngine()
	pm, err := body.NewPointMass(engine, r3.Vector{X: 1}, 1, "pm", logger)
	test.That(t, err, test.ShouldBeNil)
	pm.SetVelocity(r3.Vector{Y: 3})

	// dt == 0 is a valid no-op
	test.That(t, pm.IntegrateAcceleration(r3.Vector{Z: -9.8}, 0), test.ShouldBeNil)
	test.That(t, pm.Position(), test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, pm.Velocity(), test.ShouldResemble, r3.Vector{Y: 3})

	// dt < 0 is a precondition violation and changes nothing
	test.That(t, pm.IntegrateAcceleration(r3.Vector{Z: -9.8}, -1), test.ShouldBeError, body.ErrNegativeDuration)
	test.That(t, pm.Position(), test.ShouldResemble, r3.Vector{X: 1})
}

func TestPointMassSizing(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine := testutils.NewFakeEngine()

	// heavy masses scale the cube, light ones get the floor size
	heavy, err := body.NewPointMass(engine, r3.Vector{}, 100, "heavy", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, heavy.Geometry().HalfSize().X, test.ShouldAlmostEqual, 0.06)
	test.That(t, heavy.Mass(), test.ShouldEqual, 100.)

	light, err := body.NewPointMass(engine, r3.Vector{}, 0.001, "light", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, light.Geometry().HalfSize().X, test.ShouldAlmostEqual, 5e-3)
}
