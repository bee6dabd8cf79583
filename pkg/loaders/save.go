package loaders

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ToRGBA converts the buffer to an 8-bit image using the same clamping as the PPM writer
func ToRGBA(img *ImageData) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: toByte(p.X), G: toByte(p.Y), B: toByte(p.Z), A: 255})
		}
	}
	return out
}

// SaveImage writes img to filename, creating parent directories. Files ending in
// .png are PNG encoded, everything else is written as binary PPM.
func SaveImage(filename string, img *ImageData) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".png") {
		err = png.Encode(file, ToRGBA(img))
	} else {
		err = WritePPM(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return nil
}
