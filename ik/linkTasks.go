package ik

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/spatialmath"
)

// Task type names.
const (
	LinkPositionTaskType = "link_pos"
	LinkPoseTaskType     = "link_pose"
	COMTaskType          = "com"
)

// LinkPositionTask drives a link's position toward a target point. Task
// space is translation only, so the residual is 3-dimensional.
type LinkPositionTask struct {
	baseTask
	kin       Kinematics
	link      *body.Body
	targetPos func() r3.Vector
}

// NewLinkPositionTask binds a link to a point or body target. The task's
// name is the link's name. A pose target is a configuration error.
func NewLinkPositionTask(kin Kinematics, link *body.Body, target Target, cfg TaskConfig) (*LinkPositionTask, error) {
	base, err := newBaseTask(link.Name(), LinkPositionTaskType, cfg)
	if err != nil {
		return nil, err
	}
	targetPos, err := target.positionFunc(LinkPositionTaskType)
	if err != nil {
		return nil, err
	}
	return &LinkPositionTask{baseTask: base, kin: kin, link: link, targetPos: targetPos}, nil
}

// Jacobian returns the link's positional Jacobian.
func (t *LinkPositionTask) Jacobian() (*mat.Dense, error) {
	return t.kin.ComputeLinkPositionJacobian(t.link)
}

// Residual returns target position minus link position.
func (t *LinkPositionTask) Residual() ([]float64, error) {
	d := t.targetPos().Sub(t.link.Position())
	return []float64{d.X, d.Y, d.Z}, nil
}

// LinkPoseTask drives a link's full pose toward a target pose. Task space is
// the flattened 7-component pose.
type LinkPoseTask struct {
	baseTask
	kin        Kinematics
	link       *body.Body
	targetPose func() spatialmath.Pose
}

// NewLinkPoseTask binds a link to a pose or body target. The task's name is
// the link's name. A point target is a configuration error.
func NewLinkPoseTask(kin Kinematics, link *body.Body, target Target, cfg TaskConfig) (*LinkPoseTask, error) {
	base, err := newBaseTask(link.Name(), LinkPoseTaskType, cfg)
	if err != nil {
		return nil, err
	}
	targetPose, err := target.poseFunc(LinkPoseTaskType)
	if err != nil {
		return nil, err
	}
	return &LinkPoseTask{baseTask: base, kin: kin, link: link, targetPose: targetPose}, nil
}

// Jacobian returns the link's pose Jacobian.
func (t *LinkPoseTask) Jacobian() (*mat.Dense, error) {
	return t.kin.ComputeLinkPoseJacobian(t.link)
}

// Residual returns the componentwise pose difference target minus link. A
// quaternion and its negation represent the same rotation, so when the
// orientation block of the difference has squared norm above 1 the two
// quaternions sit on opposite sides of the double cover; the block is then
// recomputed against the negated target quaternion, leaving the translation
// block untouched, so the reported error always corresponds to the shorter
// rotation.
func (t *LinkPoseTask) Residual() ([]float64, error) {
	target := t.targetPose().Slice()
	current := t.link.Pose().Slice()

	residual := make([]float64, spatialmath.PoseLen)
	quadNorm := 0.
	for i := range residual {
		residual[i] = target[i] - current[i]
		if i < 4 {
			quadNorm += residual[i] * residual[i]
		}
	}
	if quadNorm > 1 {
		for i := 0; i < 4; i++ {
			residual[i] = -target[i] - current[i]
		}
	}
	return residual, nil
}
