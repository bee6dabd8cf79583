package integrator

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Config contains the tunables of the Whitted integrator
type Config struct {
	MaxDepth     int       // Specular bounces allowed before surfaces are shaded diffusely
	Bias         float32   // Offset along the normal applied to secondary ray origins
	IOR          float32   // Index of refraction of transparent spheres
	FresnelFloor float32   // Constant blended into the facing-ratio Fresnel term
	Background   core.Vec3 // Color returned by rays that hit nothing
}

// DefaultConfig returns the classic settings: 5 bounces, bias 1e-4, ior 1.1 and an
// over-bright background that clamps to pure white at write time
func DefaultConfig() Config {
	return Config{
		MaxDepth:     5,
		Bias:         1e-4,
		IOR:          1.1,
		FresnelFloor: 0.1,
		Background:   core.Splat(2),
	}
}

// Whitted implements recursive Whitted-style ray tracing: direct lighting with hard
// shadows on diffuse surfaces, Fresnel-weighted reflection and refraction on specular ones
type Whitted struct {
	config Config
}

// NewWhitted creates a new Whitted integrator
func NewWhitted(config Config) *Whitted {
	return &Whitted{config: config}
}

// surfaceHit describes the nearest intersection of a ray with the scene
type surfaceHit struct {
	sphere *geometry.Sphere
	point  core.Vec3
	normal core.Vec3 // Faces against the incoming ray
	inside bool      // Ray started inside the sphere
}

// Trace returns the color seen along ray
func (w *Whitted) Trace(ray core.Ray, spheres []*geometry.Sphere, depth int) core.Vec3 {
	ray.MustBeValid()

	sphere, tNear := nearestHit(ray, spheres)
	if sphere == nil {
		return w.config.Background
	}

	hit := w.shadePoint(ray, sphere, tNear)

	var color core.Vec3
	if sphere.Material.IsSpecular() && depth < w.config.MaxDepth {
		color = w.specularColor(ray, hit, spheres, depth)
	} else {
		color = w.diffuseColor(hit, spheres)
	}

	return color.Add(sphere.Material.EmissionColor)
}

// nearestHit finds the closest sphere along the ray. When the origin is inside a
// sphere the exit distance is used. Ties go to the earlier sphere.
func nearestHit(ray core.Ray, spheres []*geometry.Sphere) (*geometry.Sphere, float32) {
	tNear := math32.Inf(1)
	var nearest *geometry.Sphere

	for _, sphere := range spheres {
		t0, t1, ok := sphere.Intersect(ray)
		if !ok {
			continue
		}
		if t0 < 0 {
			t0 = t1
		}
		if t0 < tNear {
			tNear = t0
			nearest = sphere
		}
	}

	return nearest, tNear
}

// shadePoint computes the hit point and a normal facing the incoming ray
func (w *Whitted) shadePoint(ray core.Ray, sphere *geometry.Sphere, t float32) surfaceHit {
	point := ray.At(t)
	normal := sphere.NormalAt(point)

	inside := false
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
		inside = true
	}

	return surfaceHit{sphere: sphere, point: point, normal: normal, inside: inside}
}

// SurfaceInfo describes the nearest surface along a ray
type SurfaceInfo struct {
	Sphere   *geometry.Sphere
	Index    int // Position of Sphere in the scene
	Distance float32
	Point    core.Vec3
	Normal   core.Vec3 // Faces against the ray
	Inside   bool
}

// Inspect reports the surface a ray would shade first, without shading it
func (w *Whitted) Inspect(ray core.Ray, spheres []*geometry.Sphere) (SurfaceInfo, bool) {
	ray.MustBeValid()

	sphere, tNear := nearestHit(ray, spheres)
	if sphere == nil {
		return SurfaceInfo{Index: -1}, false
	}

	hit := w.shadePoint(ray, sphere, tNear)
	info := SurfaceInfo{
		Sphere:   sphere,
		Distance: tNear,
		Point:    hit.point,
		Normal:   hit.normal,
		Inside:   hit.inside,
	}
	for i, s := range spheres {
		if s == sphere {
			info.Index = i
			break
		}
	}
	return info, true
}

// fresnel approximates the reflectance from the facing ratio of the ray and normal.
// The cube is evaluated in float64 and rounded once.
func (w *Whitted) fresnel(facingRatio float32) float32 {
	grazing := float32(math.Pow(float64(1-facingRatio), 3))
	return core.Mix(grazing, 1, w.config.FresnelFloor)
}

// specularColor blends the reflected and refracted colors by the Fresnel term
func (w *Whitted) specularColor(ray core.Ray, hit surfaceHit, spheres []*geometry.Sphere, depth int) core.Vec3 {
	dir, n := ray.Direction, hit.normal
	mat := hit.sphere.Material

	fresnel := w.fresnel(-dir.Dot(n))

	reflDir := dir.Subtract(n.Multiply(2 * dir.Dot(n))).Normalize()
	reflection := w.Trace(core.NewRay(hit.point.Add(n.Multiply(w.config.Bias)), reflDir), spheres, depth+1)

	var refraction core.Vec3
	if mat.IsTransparent() {
		if refrDir, ok := w.refract(dir, n, hit.inside); ok {
			refraction = w.Trace(core.NewRay(hit.point.Subtract(n.Multiply(w.config.Bias)), refrDir), spheres, depth+1)
		}
	}

	return reflection.Multiply(fresnel).
		Add(refraction.Multiply(1 - fresnel).Multiply(mat.Transparency)).
		MultiplyVec(mat.SurfaceColor)
}

// refract bends dir through the surface with Snell's law. It reports false on
// total internal reflection, in which case no light is transmitted.
func (w *Whitted) refract(dir, n core.Vec3, inside bool) (core.Vec3, bool) {
	eta := 1 / w.config.IOR
	if inside {
		eta = w.config.IOR
	}

	cosi := -n.Dot(dir)
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}, false
	}

	return dir.Multiply(eta).Add(n.Multiply(eta*cosi - math32.Sqrt(k))).Normalize(), true
}

// diffuseColor sums the unoccluded Lambertian contribution of every light
func (w *Whitted) diffuseColor(hit surfaceHit, spheres []*geometry.Sphere) core.Vec3 {
	var radiance core.Vec3
	for i, light := range spheres {
		if !light.Material.IsLight() {
			continue
		}
		radiance = radiance.Add(w.lightContribution(hit, spheres, i))
	}
	return radiance
}

// lightContribution returns the direct light received from spheres[lightIndex].
// Shadowing is binary: any other sphere crossing the shadow ray blocks the light.
func (w *Whitted) lightContribution(hit surfaceHit, spheres []*geometry.Sphere, lightIndex int) core.Vec3 {
	light := spheres[lightIndex]
	lightDir := light.Center.Subtract(hit.point).Normalize()
	shadowRay := core.NewRay(hit.point.Add(hit.normal.Multiply(w.config.Bias)), lightDir)

	for j, occluder := range spheres {
		if j == lightIndex {
			continue
		}
		if _, _, ok := occluder.Intersect(shadowRay); ok {
			return core.Vec3{}
		}
	}

	return hit.sphere.Material.SurfaceColor.
		Multiply(math32.Max(0, hit.normal.Dot(lightDir))).
		MultiplyVec(light.Material.EmissionColor)
}
