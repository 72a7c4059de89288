package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestTransformPoseRoundTrip(t *testing.T) {
	cases := []struct {
		ea *EulerAngles
		pt r3.Vector
	}{
		{NewEulerAngles(0, 0, 0), r3.Vector{}},
		{NewEulerAngles(0.1, 0.2, 0.3), r3.Vector{X: 1, Y: 2, Z: 3}},
		{NewEulerAngles(math.Pi / 2, 0, 0), r3.Vector{X: -1}},
		{NewEulerAngles(0, math.Pi / 4, math.Pi / 3), r3.Vector{Y: 0.5}},
		// large angles land on the negative side of the double cover
		{NewEulerAngles(3, 0, 0), r3.Vector{Z: 2}},
		{NewEulerAngles(3, 0.5, 3), r3.Vector{X: 0.1, Y: -0.2, Z: 0.3}},
		{NewEulerAngles(-3, 1.2, -2.9), r3.Vector{X: -5}},
	}
	for _, c := range cases {
		tf := NewTransform(c.ea.RotationMatrix(), c.pt)
		p := NewPoseFromTransform(tf)
		test.That(t, p.Orientation.Real, test.ShouldBeGreaterThanOrEqualTo, 0)

		back := p.Transform()
		test.That(t, back.AlmostEqual(tf, 1e-9), test.ShouldBeTrue)
	}
}

func TestPoseCanonicalSign(t *testing.T) {
	// both signs of a quaternion convert to the same transform
	ea := NewEulerAngles(0.4, -0.7, 2.2)
	q := ea.Quaternion()
	tfPos := NewPose(q, r3.Vector{X: 1}).Transform()
	tfNeg := NewPose(Flip(q), r3.Vector{X: 1}).Transform()
	test.That(t, tfPos.AlmostEqual(tfNeg, 1e-12), test.ShouldBeTrue)

	// and both decompose back to the non-negative representative
	test.That(t, NewPoseFromTransform(tfNeg).Orientation.Real, test.ShouldBeGreaterThanOrEqualTo, 0)
}

func TestPoseSlice(t *testing.T) {
	p := NewPose(quat.Number{Real: 0.5, Imag: 0.5, Jmag: 0.5, Kmag: 0.5}, r3.Vector{X: 1, Y: 2, Z: 3})
	s := p.Slice()
	test.That(t, s, test.ShouldResemble, []float64{0.5, 0.5, 0.5, 0.5, 1, 2, 3})

	back, err := NewPoseFromSlice(s)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, p)

	_, err = NewPoseFromSlice([]float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCompose(t *testing.T) {
	// composing two translations adds them
	a := NewPose(quat.Number{Real: 1}, r3.Vector{X: 1})
	b := NewPose(quat.Number{Real: 1}, r3.Vector{Y: 2})
	ab := Compose(a, b)
	test.That(t, ab.Point.X, test.ShouldAlmostEqual, 1)
	test.That(t, ab.Point.Y, test.ShouldAlmostEqual, 2)
	test.That(t, ab.Point.Z, test.ShouldAlmostEqual, 0)

	// rotation then translation matches the matrix product
	rot := NewPoseFromTransform(NewTransform(NewEulerAngles(0.3, -0.2, 1.1).RotationMatrix(), r3.Vector{X: 0.5, Z: -1}))
	trans := NewPose(quat.Number{Real: 1}, r3.Vector{X: 1, Y: 1, Z: 1})
	viaQuat := Compose(rot, trans)
	viaMat := NewPoseFromTransform(rot.Transform().Mul(trans.Transform()))
	test.That(t, PoseAlmostEqual(viaQuat, viaMat, 1e-9), test.ShouldBeTrue)
}

func TestPoseBetween(t *testing.T) {
	a := NewPoseFromTransform(NewTransform(NewEulerAngles(0.1, 0.9, -0.4).RotationMatrix(), r3.Vector{X: 1, Y: -2}))
	b := NewPoseFromTransform(NewTransform(NewEulerAngles(-1.2, 0.3, 2.5).RotationMatrix(), r3.Vector{Z: 4}))
	delta := PoseBetween(a, b)
	test.That(t, PoseAlmostEqual(Compose(a, delta), b, 1e-9), test.ShouldBeTrue)

	// the delta from a pose to itself is the zero pose
	self := PoseBetween(a, a)
	test.That(t, PoseAlmostEqual(self, NewZeroPose(), 1e-9), test.ShouldBeTrue)
}
