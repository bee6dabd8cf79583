package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// MaxPixels bounds the size of the frame buffer a single render may allocate
const MaxPixels = 1 << 28

var (
	// ErrInvalidDimensions is returned for non-positive image sizes
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	// ErrImageTooLarge is returned when the frame buffer would exceed MaxPixels
	ErrImageTooLarge = errors.New("image too large")
)

// Config contains rendering configuration
type Config struct {
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	FOV        float64 // Vertical field of view in degrees
	NumWorkers int     // Number of parallel scan-line workers (1 = sequential, 0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     480,
		FOV:        50,
		NumWorkers: 1,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetSpheres() []*geometry.Sphere
}

// Raytracer drives the integrator over every pixel of the image
type Raytracer struct {
	scene      Scene
	integrator integrator.Integrator
	camera     *Camera
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. It fails if the configured image cannot be allocated.
func NewRaytracer(scene Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) (*Raytracer, error) {
	if err := validateDimensions(config.Width, config.Height); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		scene:      scene,
		integrator: integratorInst,
		camera:     NewCamera(config.Width, config.Height, config.FOV),
		config:     config,
		logger:     logger,
	}, nil
}

func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, MaxPixels)
	}
	return nil
}

// Render traces one primary ray per pixel and returns the unclamped frame buffer.
// A cancelled context aborts the render and no image is returned.
func (rt *Raytracer) Render(ctx context.Context) (*loaders.ImageData, RenderStats, error) {
	startTime := time.Now()
	img := loaders.NewImageData(rt.config.Width, rt.config.Height)

	workers := rt.config.NumWorkers
	var err error
	if workers == 1 {
		err = rt.renderSequential(ctx, img)
	} else {
		pool := NewWorkerPool(rt, workers)
		workers = pool.GetNumWorkers()
		err = pool.Render(ctx, img)
	}
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats := RenderStats{
		TotalPixels: img.Width * img.Height,
		Rows:        img.Height,
		Workers:     workers,
		Duration:    time.Since(startTime),
	}
	rt.logger.Printf("Rendered %dx%d (%d pixels) with %d worker(s) in %v\n",
		img.Width, img.Height, stats.TotalPixels, stats.Workers, stats.Duration)

	return img, stats, nil
}

// renderSequential renders the image row by row on the calling goroutine
func (rt *Raytracer) renderSequential(ctx context.Context, img *loaders.ImageData) error {
	for y := 0; y < img.Height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rt.RenderRow(y, img.Row(y))
	}
	return nil
}

// RenderRow fills pixels with the colors of scan-line y
func (rt *Raytracer) RenderRow(y int, pixels []core.Vec3) {
	spheres := rt.scene.GetSpheres()
	for x := range pixels {
		ray := rt.camera.GetRay(x, y)
		pixels[x] = rt.integrator.Trace(ray, spheres, 0)
	}
}
