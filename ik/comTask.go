package ik

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// COMTask drives the robot's center of mass toward a target point. Task
// space is translation only.
type COMTask struct {
	baseTask
	kin       Kinematics
	targetPos func() r3.Vector
}

// NewCOMTask binds the whole-robot center of mass to a point or body target.
func NewCOMTask(kin Kinematics, target Target, cfg TaskConfig) (*COMTask, error) {
	base, err := newBaseTask("com", COMTaskType, cfg)
	if err != nil {
		return nil, err
	}
	targetPos, err := target.positionFunc(COMTaskType)
	if err != nil {
		return nil, err
	}
	return &COMTask{baseTask: base, kin: kin, targetPos: targetPos}, nil
}

// Jacobian returns the center-of-mass Jacobian.
func (t *COMTask) Jacobian() (*mat.Dense, error) {
	return t.kin.ComputeCOMJacobian()
}

// Residual returns target position minus current center of mass.
func (t *COMTask) Residual() ([]float64, error) {
	d := t.targetPos().Sub(t.kin.COM())
	return []float64{d.X, d.Y, d.Z}, nil
}
