package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// PoseLen is the number of components in a flattened pose: four orientation
// components followed by three translation components.
const PoseLen = 7

// Pose is the 7-component representation of a rigid transform: a unit
// rotation quaternion plus a translation. Poses produced by
// NewPoseFromTransform keep the scalar quaternion component non-negative;
// a quaternion and its negation denote the same rotation, and pinning the
// sign guarantees shortest-path interpolation between consecutive poses.
// Poses are derived from transforms on demand and never stored as
// independent state.
type Pose struct {
	Orientation quat.Number
	Point       r3.Vector
}

// NewZeroPose returns the pose of an untransformed body.
func NewZeroPose() Pose {
	return Pose{Orientation: quat.Number{Real: 1}}
}

// NewPose assembles a pose from an orientation quaternion and a point. The
// quaternion is stored as given; no sign canonicalization is applied.
func NewPose(o quat.Number, pt r3.Vector) Pose {
	return Pose{Orientation: o, Point: pt}
}

// NewPoseFromTransform decomposes a rigid transform into a pose, negating the
// quaternion when the decomposition lands on the negative side of the double
// cover so that the scalar component is always non-negative.
func NewPoseFromTransform(t Transform) Pose {
	q := MatToQuat(t.Rotation())
	if q.Real < 0 {
		q = Flip(q)
	}
	return Pose{Orientation: q, Point: t.Point()}
}

// Transform converts the pose back to a 4x4 transform. Both signs of the
// quaternion produce the same transform, so no assumption is made about the
// input obeying the canonical-sign convention.
func (p Pose) Transform() Transform {
	return NewTransform(QuatToRotationMatrix(p.Orientation), p.Point)
}

// Slice flattens the pose to [qw qx qy qz x y z].
func (p Pose) Slice() []float64 {
	return []float64{
		p.Orientation.Real, p.Orientation.Imag, p.Orientation.Jmag, p.Orientation.Kmag,
		p.Point.X, p.Point.Y, p.Point.Z,
	}
}

// NewPoseFromSlice builds a pose from a [qw qx qy qz x y z] slice.
func NewPoseFromSlice(s []float64) (Pose, error) {
	if len(s) != PoseLen {
		return Pose{}, errors.Errorf("pose slice must have %d elements, got %d", PoseLen, len(s))
	}
	return Pose{
		Orientation: quat.Number{Real: s[0], Imag: s[1], Jmag: s[2], Kmag: s[3]},
		Point:       r3.Vector{X: s[4], Y: s[5], Z: s[6]},
	}, nil
}

// dualQuat packs a pose into a unit dual quaternion, real part rotation and
// dual part half the translation times the rotation.
func dualQuat(p Pose) dualquat.Number {
	tq := quat.Number{Imag: p.Point.X, Jmag: p.Point.Y, Kmag: p.Point.Z}
	return dualquat.Number{
		Real: p.Orientation,
		Dual: quat.Scale(0.5, quat.Mul(tq, p.Orientation)),
	}
}

func poseFromDualQuat(d dualquat.Number) Pose {
	q := d.Real
	tq := quat.Scale(2, quat.Mul(d.Dual, quat.Conj(q)))
	if q.Real < 0 {
		q = Flip(q)
	}
	return Pose{Orientation: q, Point: r3.Vector{X: tq.Imag, Y: tq.Jmag, Z: tq.Kmag}}
}

// Compose returns the pose of b expressed in the frame a is relative to,
// i.e. the pose equivalent of multiplying the two transforms.
func Compose(a, b Pose) Pose {
	return poseFromDualQuat(dualquat.Mul(dualQuat(a), dualQuat(b)))
}

// PoseBetween returns the pose that takes a to b, so that
// Compose(a, PoseBetween(a, b)) == b.
func PoseBetween(a, b Pose) Pose {
	return poseFromDualQuat(dualquat.Mul(dualquat.Conj(dualQuat(a)), dualQuat(b)))
}

// PoseAlmostEqual reports whether two poses agree within tol, comparing
// orientations up to quaternion sign.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	if a.Point.Sub(b.Point).Norm() > tol {
		return false
	}
	return QuaternionAlmostEqual(a.Orientation, b.Orientation, tol) ||
		QuaternionAlmostEqual(a.Orientation, Flip(b.Orientation), tol)
}
