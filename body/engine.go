// Package body represents rigid bodies bound to an external rigid-body
// engine. The engine owns geometry, rendering and forward kinematics; this
// package only reads and writes body transforms through it and layers pose
// accessors and simple kinematic state on top.
package body

import "github.com/gomanoid/core/spatialmath"

// Handle identifies a body inside the engine.
type Handle int

// Engine is the external rigid-body engine bodies are registered with. The
// engine-held transform is the single authoritative copy of a body's state;
// all accessors in this package are projections of it. Implementations are
// assumed synchronous and are driven by exactly one goroutine.
type Engine interface {
	// AddBody registers a new body and returns its handle.
	AddBody(name string) (Handle, error)

	// RemoveBody releases a handle. Removing a handle twice is an error;
	// Body.Close guarantees it is called at most once per body.
	RemoveBody(h Handle) error

	// Transform returns the current transform of a body.
	Transform(h Handle) spatialmath.Transform

	// SetTransform replaces a body's transform wholesale.
	SetTransform(h Handle, t spatialmath.Transform)
}
