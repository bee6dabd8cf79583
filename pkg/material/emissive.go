package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewEmissive creates a light material. The surface is black so that only the
// emission is visible when the light itself is hit.
func NewEmissive(emission core.Vec3) Material {
	return Material{EmissionColor: emission}
}
