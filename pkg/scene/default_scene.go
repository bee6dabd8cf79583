package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the classic scene: a huge grey ground sphere, four
// reflective spheres (the center one half transparent) and one light above them
func NewDefaultScene() *Scene {
	s := NewScene(DefaultSamplingConfig())

	ground := material.NewLambertian(core.NewVec3(0.2, 0.2, 0.2))
	redGlass := material.New(core.NewVec3(1.0, 0.0, 0.0), 1, 0.5, core.Vec3{})
	green := material.New(core.NewVec3(0.0, 1.0, 0.0), 1, 0.0, core.Vec3{})
	yellow := material.New(core.NewVec3(1.0, 1.0, 0.0), 1, 0.0, core.Vec3{})
	cyan := material.New(core.NewVec3(0.0, 1.0, 1.0), 1, 0.0, core.Vec3{})

	mustAdd(s.AddSphere(core.NewVec3(0.0, -10004, -20), 10000, ground))
	mustAdd(s.AddSphere(core.NewVec3(0.0, 0, -20), 4, redGlass))
	mustAdd(s.AddSphere(core.NewVec3(5.0, -1, -15), 2, green))
	mustAdd(s.AddSphere(core.NewVec3(5.0, 0, -25), 3, yellow))
	mustAdd(s.AddSphere(core.NewVec3(-5.5, 0, -15), 3, cyan))

	// Light
	mustAdd(s.AddSphereLight(core.NewVec3(0.0, 20, -30), 3, core.Splat(5)))

	return s
}

// mustAdd panics on errors from built-in scene definitions, which only use valid radii
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
