package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Spheres        []*geometry.Sphere // Objects in the scene, lights included, in tie-breaking order
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the recommended rendering configuration of a scene
type SamplingConfig struct {
	Width    int     // Image width
	Height   int     // Image height
	FOV      float64 // Vertical field of view in degrees
	MaxDepth int     // Maximum specular recursion depth
}

// DefaultSamplingConfig returns the settings used when a scene does not override them
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:    640,
		Height:   480,
		FOV:      50,
		MaxDepth: 5,
	}
}

// MaxFOV is the exclusive upper bound on the vertical field of view in degrees
const MaxFOV = 180

// ErrInvalidFOV is returned for a field of view outside [0, MaxFOV). Zero means unset.
var ErrInvalidFOV = errors.New("invalid field of view")

// CheckFOV validates a field of view override in degrees
func CheckFOV(fov float64) error {
	if !(fov >= 0 && fov < MaxFOV) {
		return fmt.Errorf("%w: %g degrees, must be below %d", ErrInvalidFOV, fov, MaxFOV)
	}
	return nil
}

// WithOverrides returns c with every positive field of o applied on top.
// Fields that remain unset take their DefaultSamplingConfig value.
func (c SamplingConfig) WithOverrides(o SamplingConfig) SamplingConfig {
	d := DefaultSamplingConfig()
	return SamplingConfig{
		Width:    firstPositive(o.Width, c.Width, d.Width),
		Height:   firstPositive(o.Height, c.Height, d.Height),
		FOV:      firstPositive(o.FOV, c.FOV, d.FOV),
		MaxDepth: firstPositive(o.MaxDepth, c.MaxDepth, d.MaxDepth),
	}
}

func firstPositive[T int | float64](values ...T) T {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// NewScene creates an empty scene
func NewScene(config SamplingConfig) *Scene {
	return &Scene{
		Spheres:        make([]*geometry.Sphere, 0),
		SamplingConfig: config,
	}
}

// GetSpheres returns the spheres of the scene
func (s *Scene) GetSpheres() []*geometry.Sphere {
	return s.Spheres
}

// Lights returns the spheres that act as light sources
func (s *Scene) Lights() []*geometry.Sphere {
	var lights []*geometry.Sphere
	for _, sphere := range s.Spheres {
		if sphere.Material.IsLight() {
			lights = append(lights, sphere)
		}
	}
	return lights
}

// AddSphere adds a sphere with the given material to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return fmt.Errorf("sphere %d: %w", len(s.Spheres), err)
	}
	s.Spheres = append(s.Spheres, sphere)
	return nil
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float32, emission core.Vec3) error {
	return s.AddSphere(center, radius, material.NewEmissive(emission))
}
