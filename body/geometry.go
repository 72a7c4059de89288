package body

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Box is a rectangular geometry descriptor, stored as half-extents along each
// axis. It is held by a Body through composition; the engine owns the actual
// geometry, this descriptor only records the dimensions the body was created
// with.
type Box struct {
	halfSize r3.Vector
}

// NewBox validates and returns a box descriptor. Negative dimensions are not
// allowed; zero dimensions are, for degenerate boxes such as points.
func NewBox(halfSize r3.Vector) (*Box, error) {
	if halfSize.X < 0 || halfSize.Y < 0 || halfSize.Z < 0 {
		return nil, errors.Errorf("box dimensions must be non-negative, got %v", halfSize)
	}
	return &Box{halfSize: halfSize}, nil
}

// HalfSize returns the box's half-extents.
func (b *Box) HalfSize() r3.Vector {
	return b.halfSize
}

// String returns a human readable description of the box.
func (b *Box) String() string {
	return fmt.Sprintf("Box | Half-size: X:%.3f, Y:%.3f, Z:%.3f", b.halfSize.X, b.halfSize.Y, b.halfSize.Z)
}
