package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrSizeMismatch is returned when two images with different dimensions are compared
var ErrSizeMismatch = errors.New("image dimensions differ")

// ImageData is a flat, row-major buffer of linear RGB colors.
// Values are unclamped until the image is written.
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImageData allocates a black image
func NewImageData(width, height int) *ImageData {
	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Row returns the pixels of scan-line y
func (img *ImageData) Row(y int) []core.Vec3 {
	return img.Pixels[y*img.Width : (y+1)*img.Width]
}

// At returns the color at pixel (x, y)
func (img *ImageData) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// LoadImage loads a PPM, PNG or JPEG image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	data := NewImageData(bounds.Dx(), bounds.Dy())

	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			data.Pixels[y*data.Width+x] = core.NewVec3(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
			)
		}
	}

	return data, nil
}

// MaxChannelDifference returns the largest absolute per-channel difference between
// two images after both are clamped to [0,1]
func MaxChannelDifference(a, b *ImageData) (float32, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.Width, a.Height, b.Width, b.Height)
	}

	var maxDiff float32
	for i := range a.Pixels {
		d := a.Pixels[i].Clamp(0, 1).Subtract(b.Pixels[i].Clamp(0, 1))
		maxDiff = math32.Max(maxDiff, math32.Max(math32.Abs(d.X), math32.Max(math32.Abs(d.Y), math32.Abs(d.Z))))
	}
	return maxDiff, nil
}
