// Package inject provides injectable mocks of the external engine
// interfaces: each method defers to an override func when one is set and
// falls through to the embedded implementation otherwise.
package inject

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/ik"
	"github.com/gomanoid/core/spatialmath"
)

// Engine is an injectable body.Engine.
type Engine struct {
	body.Engine
	AddBodyFunc      func(name string) (body.Handle, error)
	RemoveBodyFunc   func(h body.Handle) error
	TransformFunc    func(h body.Handle) spatialmath.Transform
	SetTransformFunc func(h body.Handle, t spatialmath.Transform)
}

// AddBody calls the injected AddBody or the real version.
func (e *Engine) AddBody(name string) (body.Handle, error) {
	if e.AddBodyFunc == nil {
		return e.Engine.AddBody(name)
	}
	return e.AddBodyFunc(name)
}

// RemoveBody calls the injected RemoveBody or the real version.
func (e *Engine) RemoveBody(h body.Handle) error {
	if e.RemoveBodyFunc == nil {
		return e.Engine.RemoveBody(h)
	}
	return e.RemoveBodyFunc(h)
}

// Transform calls the injected Transform or the real version.
func (e *Engine) Transform(h body.Handle) spatialmath.Transform {
	if e.TransformFunc == nil {
		return e.Engine.Transform(h)
	}
	return e.TransformFunc(h)
}

// SetTransform calls the injected SetTransform or the real version.
func (e *Engine) SetTransform(h body.Handle, t spatialmath.Transform) {
	if e.SetTransformFunc == nil {
		e.Engine.SetTransform(h, t)
		return
	}
	e.SetTransformFunc(h, t)
}

// Kinematics is an injectable ik.Kinematics.
type Kinematics struct {
	ik.Kinematics
	DoFFunc                         func() int
	ComputeLinkPositionJacobianFunc func(link *body.Body) (*mat.Dense, error)
	ComputeLinkPoseJacobianFunc     func(link *body.Body) (*mat.Dense, error)
	COMFunc                         func() r3.Vector
	ComputeCOMJacobianFunc          func() (*mat.Dense, error)
}

// DoF calls the injected DoF or the real version.
func (k *Kinematics) DoF() int {
	if k.DoFFunc == nil {
		return k.Kinematics.DoF()
	}
	return k.DoFFunc()
}

// ComputeLinkPositionJacobian calls the injected version or the real one.
func (k *Kinematics) ComputeLinkPositionJacobian(link *body.Body) (*mat.Dense, error) {
	if k.ComputeLinkPositionJacobianFunc == nil {
		return k.Kinematics.ComputeLinkPositionJacobian(link)
	}
	return k.ComputeLinkPositionJacobianFunc(link)
}

// ComputeLinkPoseJacobian calls the injected version or the real one.
func (k *Kinematics) ComputeLinkPoseJacobian(link *body.Body) (*mat.Dense, error) {
	if k.ComputeLinkPoseJacobianFunc == nil {
		return k.Kinematics.ComputeLinkPoseJacobian(link)
	}
	return k.ComputeLinkPoseJacobianFunc(link)
}

// COM calls the injected COM or the real version.
func (k *Kinematics) COM() r3.Vector {
	if k.COMFunc == nil {
		return k.Kinematics.COM()
	}
	return k.COMFunc()
}

// ComputeCOMJacobian calls the injected version or the real one.
func (k *Kinematics) ComputeCOMJacobian() (*mat.Dense, error) {
	if k.ComputeCOMJacobianFunc == nil {
		return k.Kinematics.ComputeCOMJacobian()
	}
	return k.ComputeCOMJacobianFunc()
}
