package body

import (
	"fmt"
	"sync/atomic"

	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/num/quat"

	"github.com/gomanoid/core/spatialmath"
)

// ErrNegativeDuration is returned when a kinematic update is asked to
// integrate over a negative duration.
var ErrNegativeDuration = errors.New("duration must be non-negative")

// counter for anonymous bodies
var bodyCount int64

// Body is a rigid body bound to an engine handle. The engine-held transform
// is the only mutable state; every reader is a pure projection of it and
// every partial writer re-reads the current transform, patches the one
// component it targets and writes the whole transform back in a single
// SetTransform call, so untouched components are preserved exactly.
type Body struct {
	engine Engine
	handle Handle
	name   string
	geom   *Box
	logger golog.Logger
	closed bool
}

// NewBody registers a body with the engine at the identity transform. An
// empty name is replaced with a generated one.
func NewBody(engine Engine, name string, logger golog.Logger) (*Body, error) {
	return newBody(engine, name, nil, logger)
}

// NewBoxBody registers a body carrying a box geometry descriptor.
func NewBoxBody(engine Engine, dims r3.Vector, name string, logger golog.Logger) (*Body, error) {
	geom, err := NewBox(dims)
	if err != nil {
		return nil, err
	}
	return newBody(engine, name, geom, logger)
}

// NewCubeBody registers a body carrying a cube geometry descriptor with the
// given half-length per side.
func NewCubeBody(engine Engine, size float64, name string, logger golog.Logger) (*Body, error) {
	return NewBoxBody(engine, r3.Vector{X: size, Y: size, Z: size}, name, logger)
}

func newBody(engine Engine, name string, geom *Box, logger golog.Logger) (*Body, error) {
	if name == "" {
		name = fmt.Sprintf("body%d", atomic.AddInt64(&bodyCount, 1)-1)
	}
	handle, err := engine.AddBody(name)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot add body %q", name)
	}
	logger.Debugw("added body", "name", name, "handle", handle)
	return &Body{engine: engine, handle: handle, name: name, geom: geom, logger: logger}, nil
}

// Name returns the body's name.
func (b *Body) Name() string {
	return b.name
}

// Handle returns the engine handle the body is bound to.
func (b *Body) Handle() Handle {
	return b.handle
}

// Geometry returns the body's box descriptor, or nil for bodies without one.
func (b *Body) Geometry() *Box {
	return b.geom
}

// Transform returns the body's current transform.
func (b *Body) Transform() spatialmath.Transform {
	return b.engine.Transform(b.handle)
}

// Pose returns the body's pose, quaternion scalar component non-negative.
func (b *Body) Pose() spatialmath.Pose {
	return spatialmath.NewPoseFromTransform(b.Transform())
}

// RotationMatrix returns the rotation block of the body's transform.
func (b *Body) RotationMatrix() mgl64.Mat3 {
	return b.Transform().Rotation()
}

// Position returns the body's position in the world frame.
func (b *Body) Position() r3.Vector {
	return b.Transform().Point()
}

// X returns the x coordinate of the body's position.
func (b *Body) X() float64 { return b.Position().X }

// Y returns the y coordinate of the body's position.
func (b *Body) Y() float64 { return b.Position().Y }

// Z returns the z coordinate of the body's position.
func (b *Body) Z() float64 { return b.Position().Z }

// Tangent returns the first basis vector of the body frame.
func (b *Body) Tangent() r3.Vector { return basisCol(b.RotationMatrix(), 0) }

// Binormal returns the second basis vector of the body frame.
func (b *Body) Binormal() r3.Vector { return basisCol(b.RotationMatrix(), 1) }

// Normal returns the third basis vector of the body frame.
func (b *Body) Normal() r3.Vector { return basisCol(b.RotationMatrix(), 2) }

func basisCol(m mgl64.Mat3, c int) r3.Vector {
	col := m.Col(c)
	return r3.Vector{X: col[0], Y: col[1], Z: col[2]}
}

// Quaternion returns the orientation quaternion of the body's pose.
func (b *Body) Quaternion() quat.Number {
	return b.Pose().Orientation
}

// EulerAngles returns the body's orientation as roll-pitch-yaw.
func (b *Body) EulerAngles() *spatialmath.EulerAngles {
	return spatialmath.QuatToEulerAngles(b.Quaternion())
}

// Roll returns the rotation about the x axis.
func (b *Body) Roll() float64 { return b.EulerAngles().Roll }

// Pitch returns the rotation about the y axis.
func (b *Body) Pitch() float64 { return b.EulerAngles().Pitch }

// Yaw returns the rotation about the z axis.
func (b *Body) Yaw() float64 { return b.EulerAngles().Yaw }

// SetTransform replaces the body's transform wholesale.
func (b *Body) SetTransform(t spatialmath.Transform) {
	b.engine.SetTransform(b.handle, t)
}

// SetPosition moves the body, preserving its orientation.
func (b *Body) SetPosition(pt r3.Vector) {
	b.SetTransform(b.Transform().WithPoint(pt))
}

// SetRotationMatrix reorients the body, preserving its position.
func (b *Body) SetRotationMatrix(rot mgl64.Mat3) {
	b.SetTransform(b.Transform().WithRotation(rot))
}

// SetX moves the body along x, preserving everything else.
func (b *Body) SetX(x float64) {
	pt := b.Position()
	pt.X = x
	b.SetPosition(pt)
}

// SetY moves the body along y, preserving everything else.
func (b *Body) SetY(y float64) {
	pt := b.Position()
	pt.Y = y
	b.SetPosition(pt)
}

// SetZ moves the body along z, preserving everything else.
func (b *Body) SetZ(z float64) {
	pt := b.Position()
	pt.Z = z
	b.SetPosition(pt)
}

// SetEulerAngles reorients the body from roll-pitch-yaw, preserving position.
func (b *Body) SetEulerAngles(ea *spatialmath.EulerAngles) {
	b.SetRotationMatrix(ea.RotationMatrix())
}

// SetRoll overwrites the roll angle, preserving pitch and yaw.
func (b *Body) SetRoll(roll float64) {
	ea := b.EulerAngles()
	ea.Roll = roll
	b.SetEulerAngles(ea)
}

// SetPitch overwrites the pitch angle, preserving roll and yaw.
func (b *Body) SetPitch(pitch float64) {
	ea := b.EulerAngles()
	ea.Pitch = pitch
	b.SetEulerAngles(ea)
}

// SetYaw overwrites the yaw angle, preserving roll and pitch.
func (b *Body) SetYaw(yaw float64) {
	ea := b.EulerAngles()
	ea.Yaw = yaw
	b.SetEulerAngles(ea)
}

// SetPose replaces the body's transform with the one the pose denotes.
// Either quaternion sign is accepted.
func (b *Body) SetPose(p spatialmath.Pose) {
	b.SetTransform(p.Transform())
}

// SetQuaternion reorients the body from a quaternion, preserving position.
func (b *Body) SetQuaternion(q quat.Number) {
	b.SetRotationMatrix(spatialmath.QuatToRotationMatrix(q))
}

// ApplyTwist integrates the body twist (v, w) over duration dt with one
// explicit Euler step: position moves by v*dt and the rotation block by
// skew(w)*R*dt. The rotation update does not preserve orthonormality, so
// repeated large steps drift; see spatialmath.Transform.Orthonormalize.
func (b *Body) ApplyTwist(v, w r3.Vector, dt float64) error {
	if dt < 0 {
		return ErrNegativeDuration
	}
	b.SetTransform(spatialmath.TwistStep(b.Transform(), v, w, dt))
	return nil
}

// Close releases the body's engine handle. The release happens exactly once;
// closing an already-closed body is a no-op.
func (b *Body) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.logger.Debugw("removing body", "name", b.name, "handle", b.handle)
	if err := b.engine.RemoveBody(b.handle); err != nil {
		return errors.Wrapf(err, "cannot remove body %q", b.name)
	}
	return nil
}

// CloseAll closes every given body, combining any errors.
func CloseAll(bodies ...*Body) error {
	var err error
	for _, b := range bodies {
		err = multierr.Combine(err, b.Close())
	}
	return err
}
