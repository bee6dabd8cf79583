package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered (one primary ray each)
	Rows        int           // Number of scan-lines rendered
	Workers     int           // Number of workers that rendered the image
	Duration    time.Duration // Wall-clock render time
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the image after
// clamping each channel to [0,1]
func CalculateAverageLuminance(img *loaders.ImageData) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}

	var total float64
	for _, p := range img.Pixels {
		c := p.Clamp(0, 1)
		total += 0.2126*float64(c.X) + 0.7152*float64(c.Y) + 0.0722*float64(c.Z)
	}
	return total / float64(len(img.Pixels))
}
