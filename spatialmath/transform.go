// Package spatialmath defines the spatial mathematical operations used to
// describe and move rigid bodies: homogeneous transforms, quaternion poses,
// and conversions between the common orientation parameterizations.
package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Transform is a rigid 3D transform: a proper rotation block plus a
// translation, stored as a 4x4 homogeneous matrix. Transforms are values;
// mutators return a new Transform so a body's state can always be replaced
// wholesale rather than patched in place.
type Transform struct {
	Mat mgl64.Mat4
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() Transform {
	return Transform{Mat: mgl64.Ident4()}
}

// NewTransform assembles a transform from a rotation matrix and a point.
func NewTransform(rot mgl64.Mat3, pt r3.Vector) Transform {
	return NewZeroTransform().WithRotation(rot).WithPoint(pt)
}

// Rotation returns the 3x3 rotation block.
func (t Transform) Rotation() mgl64.Mat3 {
	var m mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, t.Mat.At(r, c))
		}
	}
	return m
}

// Point returns the translation component.
func (t Transform) Point() r3.Vector {
	return r3.Vector{X: t.Mat.At(0, 3), Y: t.Mat.At(1, 3), Z: t.Mat.At(2, 3)}
}

// WithRotation returns a copy of t with the rotation block replaced and the
// translation untouched.
func (t Transform) WithRotation(rot mgl64.Mat3) Transform {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t.Mat.Set(r, c, rot.At(r, c))
		}
	}
	return t
}

// WithPoint returns a copy of t with the translation replaced and the
// rotation block untouched.
func (t Transform) WithPoint(pt r3.Vector) Transform {
	t.Mat.Set(0, 3, pt.X)
	t.Mat.Set(1, 3, pt.Y)
	t.Mat.Set(2, 3, pt.Z)
	return t
}

// Mul composes two transforms, applying other in the frame of t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{Mat: t.Mat.Mul4(other.Mat)}
}

// TwistStep advances t by one explicit Euler step of the body twist (v, w)
// over duration dt: the point moves by v*dt and the rotation block by
// skew(w)*R*dt. The rotation update is first order and does not preserve
// orthonormality; callers integrating many large steps should periodically
// call Orthonormalize.
func TwistStep(t Transform, v, w r3.Vector, dt float64) Transform {
	rot := t.Rotation()
	rot = rot.Add(Skew(w).Mul3(rot).Mul(dt))
	return NewTransform(rot, t.Point().Add(v.Mul(dt)))
}

// Orthonormalize returns a copy of t whose rotation block has been projected
// back onto a proper rotation by Gram-Schmidt on its columns.
func (t Transform) Orthonormalize() Transform {
	rot := t.Rotation()
	c0 := rot.Col(0).Normalize()
	c1 := rot.Col(1)
	c1 = c1.Sub(c0.Mul(c0.Dot(c1))).Normalize()
	c2 := c0.Cross(c1)
	return t.WithRotation(mgl64.Mat3FromCols(c0, c1, c2))
}

// AlmostEqual reports whether every element of the two transforms is within
// tol of its counterpart.
func (t Transform) AlmostEqual(other Transform, tol float64) bool {
	for i, v := range t.Mat {
		d := v - other.Mat[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}
