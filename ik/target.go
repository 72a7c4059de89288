package ik

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/spatialmath"
)

type targetKind int

const (
	targetPoint targetKind = iota
	targetPose
	targetBody
)

func (k targetKind) String() string {
	switch k {
	case targetPoint:
		return "point"
	case targetPose:
		return "pose"
	case targetBody:
		return "body"
	}
	return "unknown"
}

// Target is what a task tracks: a literal point, a literal pose, or another
// body whose state is read live each cycle. The variant is fixed at
// construction; a task given a target kind it cannot use fails immediately
// rather than at evaluation time.
type Target struct {
	kind  targetKind
	point r3.Vector
	pose  spatialmath.Pose
	body  *body.Body
}

// PointTarget tracks a fixed coordinate.
func PointTarget(pt r3.Vector) Target {
	return Target{kind: targetPoint, point: pt}
}

// PoseTarget tracks a fixed pose.
func PoseTarget(p spatialmath.Pose) Target {
	return Target{kind: targetPose, pose: p}
}

// BodyTarget tracks another body, read live each cycle.
func BodyTarget(b *body.Body) Target {
	return Target{kind: targetBody, body: b}
}

func (tg Target) String() string {
	if tg.kind == targetBody {
		return "body target " + tg.body.Name()
	}
	return tg.kind.String() + " target"
}

// positionFunc resolves the target to a position provider, or fails if the
// variant has no position for the asking task.
func (tg Target) positionFunc(taskType string) (func() r3.Vector, error) {
	switch tg.kind {
	case targetPoint:
		pt := tg.point
		return func() r3.Vector { return pt }, nil
	case targetBody:
		b := tg.body
		return b.Position, nil
	default:
		return nil, errors.Errorf("%s has no position for a %s task", tg, taskType)
	}
}

// poseFunc resolves the target to a pose provider, or fails if the variant
// has no pose for the asking task.
func (tg Target) poseFunc(taskType string) (func() spatialmath.Pose, error) {
	switch tg.kind {
	case targetPose:
		p := tg.pose
		return func() spatialmath.Pose { return p }, nil
	case targetBody:
		b := tg.body
		return b.Pose, nil
	default:
		return nil, errors.Errorf("%s has no pose for a %s task", tg, taskType)
	}
}
