// Package testutils provides in-memory stand-ins for the external rigid-body
// engine used by tests across the module.
package testutils

import (
	"github.com/pkg/errors"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/spatialmath"
)

// FakeEngine is a map-backed body.Engine. It records how many times each
// handle was removed so tests can assert exactly-once release.
type FakeEngine struct {
	next       body.Handle
	transforms map[body.Handle]spatialmath.Transform
	names      map[body.Handle]string

	// Removed counts RemoveBody calls per handle, including failed ones.
	Removed map[body.Handle]int
}

// NewFakeEngine returns an empty engine.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		transforms: map[body.Handle]spatialmath.Transform{},
		names:      map[body.Handle]string{},
		Removed:    map[body.Handle]int{},
	}
}

// AddBody registers a body at the identity transform.
func (e *FakeEngine) AddBody(name string) (body.Handle, error) {
	h := e.next
	e.next++
	e.transforms[h] = spatialmath.NewZeroTransform()
	e.names[h] = name
	return h, nil
}

// RemoveBody releases a handle, failing on unknown or already-removed ones.
func (e *FakeEngine) RemoveBody(h body.Handle) error {
	e.Removed[h]++
	if _, ok := e.transforms[h]; !ok {
		return errors.Errorf("no body with handle %d", h)
	}
	delete(e.transforms, h)
	delete(e.names, h)
	return nil
}

// Transform returns the stored transform for a handle.
func (e *FakeEngine) Transform(h body.Handle) spatialmath.Transform {
	return e.transforms[h]
}

// SetTransform stores a transform for a handle.
func (e *FakeEngine) SetTransform(h body.Handle, t spatialmath.Transform) {
	e.transforms[h] = t
}

// NumBodies returns how many bodies are currently registered.
func (e *FakeEngine) NumBodies() int {
	return len(e.transforms)
}
