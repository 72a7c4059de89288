package testutils

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/spatialmath"
)

// finite-difference step for the numeric Jacobians
const jacobianStep = 1e-6

// PlanarChain is a serial chain of revolute joints rotating about z, each
// followed by a segment along its local x axis. Link i is a body at the far
// end of segment i. It implements both body.Engine (via the embedded
// FakeEngine) and the ik Kinematics interface, giving task tests a real
// kinematic model with a closed-form position Jacobian.
type PlanarChain struct {
	*FakeEngine
	lengths []float64
	joints  []float64
	links   []*body.Body
}

// NewPlanarChain builds a chain with the given segment lengths, all joints
// at zero.
func NewPlanarChain(lengths []float64, logger golog.Logger) (*PlanarChain, error) {
	if len(lengths) == 0 {
		return nil, errors.New("chain needs at least one segment")
	}
	c := &PlanarChain{
		FakeEngine: NewFakeEngine(),
		lengths:    lengths,
		joints:     make([]float64, len(lengths)),
	}
	for i := range lengths {
		link, err := body.NewBody(c.FakeEngine, fmt.Sprintf("link%d", i+1), logger)
		if err != nil {
			return nil, err
		}
		c.links = append(c.links, link)
	}
	c.writeLinkPoses()
	return c, nil
}

// Link returns the body at the end of segment i.
func (c *PlanarChain) Link(i int) *body.Body {
	return c.links[i]
}

// DoF returns the number of joints.
func (c *PlanarChain) DoF() int {
	return len(c.joints)
}

// JointPositions returns a copy of the current joint angles.
func (c *PlanarChain) JointPositions() []float64 {
	out := make([]float64, len(c.joints))
	copy(out, c.joints)
	return out
}

// SetJointPositions updates the joint angles and writes the resulting link
// poses into the engine.
func (c *PlanarChain) SetJointPositions(q []float64) error {
	if len(q) != len(c.joints) {
		return errors.Errorf("expected %d joint positions, got %d", len(c.joints), len(q))
	}
	copy(c.joints, q)
	c.writeLinkPoses()
	return nil
}

func (c *PlanarChain) writeLinkPoses() {
	for i, link := range c.links {
		link.SetPose(c.linkPose(i, c.joints))
	}
}

// linkPose computes the pose of link idx for joint angles q without touching
// any engine state.
func (c *PlanarChain) linkPose(idx int, q []float64) spatialmath.Pose {
	pose := spatialmath.NewZeroPose()
	for i := 0; i <= idx; i++ {
		joint := spatialmath.NewPose(
			spatialmath.NewEulerAngles(0, 0, q[i]).Quaternion(),
			r3.Vector{},
		)
		segment := spatialmath.NewPose(quat.Number{Real: 1}, r3.Vector{X: c.lengths[i]})
		pose = spatialmath.Compose(pose, spatialmath.Compose(joint, segment))
	}
	return pose
}

func (c *PlanarChain) linkIndex(link *body.Body) (int, error) {
	for i, l := range c.links {
		if l == link {
			return i, nil
		}
	}
	return 0, errors.Errorf("link %q is not part of this chain", link.Name())
}

// ComputeLinkPositionJacobian returns the closed-form 3xDoF positional
// Jacobian of a link.
func (c *PlanarChain) ComputeLinkPositionJacobian(link *body.Body) (*mat.Dense, error) {
	idx, err := c.linkIndex(link)
	if err != nil {
		return nil, err
	}
	jac := mat.NewDense(3, len(c.joints), nil)
	for j := 0; j <= idx; j++ {
		var dx, dy float64
		angle := 0.
		for i := 0; i <= idx; i++ {
			angle += c.joints[i]
			if i >= j {
				dx -= c.lengths[i] * math.Sin(angle)
				dy += c.lengths[i] * math.Cos(angle)
			}
		}
		jac.Set(0, j, dx)
		jac.Set(1, j, dy)
	}
	return jac, nil
}

// ComputeLinkPoseJacobian returns the 7xDoF pose Jacobian of a link by
// central differences on the flattened pose.
func (c *PlanarChain) ComputeLinkPoseJacobian(link *body.Body) (*mat.Dense, error) {
	idx, err := c.linkIndex(link)
	if err != nil {
		return nil, err
	}
	return c.numericJacobian(func(q []float64) []float64 {
		return c.linkPose(idx, q).Slice()
	}), nil
}

// COM returns the chain's center of mass, treating each segment as a unit
// point mass at its far end.
func (c *PlanarChain) COM() r3.Vector {
	return c.comAt(c.joints)
}

func (c *PlanarChain) comAt(q []float64) r3.Vector {
	var sum r3.Vector
	for i := range c.links {
		sum = sum.Add(c.linkPose(i, q).Point)
	}
	return sum.Mul(1 / float64(len(c.links)))
}

// ComputeCOMJacobian returns the 3xDoF Jacobian of the center of mass by
// central differences.
func (c *PlanarChain) ComputeCOMJacobian() (*mat.Dense, error) {
	return c.numericJacobian(func(q []float64) []float64 {
		com := c.comAt(q)
		return []float64{com.X, com.Y, com.Z}
	}), nil
}

func (c *PlanarChain) numericJacobian(f func(q []float64) []float64) *mat.Dense {
	q := c.JointPositions()
	rows := len(f(q))
	jac := mat.NewDense(rows, len(q), nil)
	for j := range q {
		orig := q[j]
		q[j] = orig + jacobianStep
		plus := f(q)
		q[j] = orig - jacobianStep
		minus := f(q)
		q[j] = orig
		for r := 0; r < rows; r++ {
			jac.Set(r, j, (plus[r]-minus[r])/(2*jacobianStep))
		}
	}
	return jac
}

// Close releases every link body.
func (c *PlanarChain) Close() error {
	return body.CloseAll(c.links...)
}
