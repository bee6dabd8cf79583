package core

import "errors"

// ErrDegenerateDirection is raised when a ray is built from a zero-length or NaN direction
var ErrDegenerateDirection = errors.New("degenerate ray direction")

// Ray represents a ray with an origin and a unit-length direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray. The direction must already be normalized.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// MustBeValid panics with ErrDegenerateDirection if the ray direction cannot
// have come from a normalization (zero length or NaN components).
func (r Ray) MustBeValid() {
	if r.Direction.IsZero() || r.Direction.HasNaN() {
		panic(ErrDegenerateDirection)
	}
}
