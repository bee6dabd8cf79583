package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a sphere's surface shades and emits light
type Material struct {
	SurfaceColor  core.Vec3 // Albedo used as the diffuse, reflective and refractive tint
	EmissionColor core.Vec3 // Emitted radiance; a nonzero red channel marks a light
	Transparency  float32   // Fraction of light transmitted, in [0,1]
	Reflection    float32   // Reflectivity in [0,1]; only decides whether the surface is specular
}

// New creates a material from its surface color, reflectivity, transparency and emission
func New(surfaceColor core.Vec3, reflection, transparency float32, emission core.Vec3) Material {
	return Material{
		SurfaceColor:  surfaceColor,
		EmissionColor: emission,
		Transparency:  transparency,
		Reflection:    reflection,
	}
}

// NewLambertian creates a purely diffuse, non-emissive material
func NewLambertian(albedo core.Vec3) Material {
	return Material{SurfaceColor: albedo}
}

// IsLight reports whether the material acts as a light source.
// Only the red channel of the emission is checked.
func (m Material) IsLight() bool {
	return m.EmissionColor.X > 0
}

// IsSpecular reports whether rays hitting the material spawn reflection/refraction rays
func (m Material) IsSpecular() bool {
	return m.Transparency > 0 || m.Reflection > 0
}

// IsTransparent reports whether the material spawns refraction rays
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}
