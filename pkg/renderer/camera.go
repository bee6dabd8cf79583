package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates one primary ray per pixel with a pinhole perspective projection.
// It sits at the origin looking down -Z with +Y up.
type Camera struct {
	width       int
	height      int
	invWidth    float32
	invHeight   float32
	aspectRatio float32
	angle       float32 // tan(fov/2)
	origin      core.Vec3
}

// NewCamera creates a camera for a width x height image with a vertical
// field of view of fov degrees
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		width:       width,
		height:      height,
		invWidth:    1 / float32(width),
		invHeight:   1 / float32(height),
		aspectRatio: float32(width) / float32(height),
		angle:       float32(math.Tan(math.Pi * 0.5 * fov / 180)),
		origin:      core.NewVec3(0, 0, 0),
	}
}

// GetRay returns the normalized primary ray through the center of pixel (x, y),
// where y=0 is the top row. Screen coordinates are evaluated in float64 and
// rounded once.
func (c *Camera) GetRay(x, y int) core.Ray {
	xx := (2*((float64(x)+0.5)*float64(c.invWidth)) - 1) * float64(c.angle) * float64(c.aspectRatio)
	yy := (1 - 2*((float64(y)+0.5)*float64(c.invHeight))) * float64(c.angle)

	direction := core.NewVec3(float32(xx), float32(yy), -1).Normalize()
	return core.NewRay(c.origin, direction)
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}
