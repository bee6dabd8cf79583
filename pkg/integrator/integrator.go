package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the (unclamped) color carried by a ray through the scene.
	// depth is the number of bounces already taken by the ray.
	Trace(ray core.Ray, spheres []*geometry.Sphere, depth int) core.Vec3
}
