package body

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
)

// A point mass is rendered as a small cube whose size grows with its mass.
const (
	minPointSize     = 5e-3
	pointSizePerKilo = 6e-4
)

// PointMass is a rigid body with translational velocity state and mass. Mass
// is set once at construction and is informational here; the velocity is
// mutated only by SetVelocity and the integrator, which always updates
// velocity and position together so the kinematic state stays consistent.
type PointMass struct {
	*Body
	mass     float64
	velocity r3.Vector
}

// NewPointMass registers a point mass at the given position. The attached
// cube descriptor is sized proportionally to the mass.
func NewPointMass(engine Engine, pos r3.Vector, mass float64, name string, logger golog.Logger) (*PointMass, error) {
	size := math.Max(minPointSize, pointSizePerKilo*mass)
	b, err := NewCubeBody(engine, size, name, logger)
	if err != nil {
		return nil, err
	}
	b.SetPosition(pos)
	return &PointMass{Body: b, mass: mass}, nil
}

// Mass returns the mass in kilograms.
func (pm *PointMass) Mass() float64 {
	return pm.mass
}

// Velocity returns the current translational velocity.
func (pm *PointMass) Velocity() r3.Vector {
	return pm.velocity
}

// SetVelocity overwrites the velocity state.
func (pm *PointMass) SetVelocity(v r3.Vector) {
	pm.velocity = v
}

// IntegrateAcceleration applies one constant-acceleration step over dt,
// updating position and velocity for the same instant:
//
//	p' = p + v*dt + 0.5*a*dt^2
//	v' = v + a*dt
//
// dt must be non-negative; dt == 0 is a valid no-op.
func (pm *PointMass) IntegrateAcceleration(a r3.Vector, dt float64) error {
	if dt < 0 {
		return ErrNegativeDuration
	}
	pm.SetPosition(pm.Position().Add(pm.velocity.Mul(dt)).Add(a.Mul(0.5 * dt * dt)))
	pm.SetVelocity(pm.velocity.Add(a.Mul(dt)))
	return nil
}
