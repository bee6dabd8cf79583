package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidRadius is returned when a sphere is built with a non-positive radius
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Sphere represents a sphere shape. It is immutable after construction.
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Radius2  float32 // Radius squared, cached for intersection
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Radius2:  radius * radius,
		Material: mat,
	}, nil
}

// Intersect tests if a ray intersects with the sphere using the geometric solution.
// It returns the entry and exit distances along the ray. Spheres whose center
// projects behind the ray origin are reported as a miss, even when the origin
// lies inside them. A zero or NaN direction panics with core.ErrDegenerateDirection.
func (s *Sphere) Intersect(ray core.Ray) (t0, t1 float32, ok bool) {
	ray.MustBeValid()

	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)
	if tca < 0 {
		return 0, 0, false
	}

	// Squared distance from the center to the ray line
	d2 := l.Dot(l) - tca*tca
	if d2 > s.Radius2 {
		return 0, 0, false
	}

	thc := math32.Sqrt(s.Radius2 - d2)
	return tca - thc, tca + thc, true
}

// NormalAt returns the outward unit normal at a point on the sphere surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
