package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrInvalidPPM is returned when a binary PPM stream cannot be parsed
var ErrInvalidPPM = errors.New("invalid PPM data")

// maxPPMPixels bounds the raster a header may ask for
const maxPPMPixels = 1 << 28

func init() {
	image.RegisterFormat("ppm", "P6", DecodePPM, DecodePPMConfig)
}

// toByte converts a linear channel value to 8 bits: clamp to 1, scale by 255,
// truncate. Negative and NaN values map to 0.
func toByte(c float32) uint8 {
	v := min(1, c) * 255
	if !(v > 0) {
		return 0
	}
	return uint8(v)
}

// WritePPM serializes img as a binary (P6) PPM with a max channel value of 255
func WritePPM(w io.Writer, img *ImageData) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, p := range img.Pixels {
		if _, err := bw.Write([]byte{toByte(p.X), toByte(p.Y), toByte(p.Z)}); err != nil {
			return fmt.Errorf("failed to write PPM pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

// ppmHeader holds the parsed fields of a P6 header
type ppmHeader struct {
	width, height, maxVal int
}

// readPPMHeader parses "P6 <w> <h> <maxval>" and the single whitespace byte that
// precedes the raster. Comments start with '#' and run to the end of the line.
func readPPMHeader(br *bufio.Reader) (ppmHeader, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return ppmHeader{}, fmt.Errorf("%w: %v", ErrInvalidPPM, err)
	}
	if string(magic) != "P6" {
		return ppmHeader{}, fmt.Errorf("%w: bad magic %q", ErrInvalidPPM, magic)
	}

	var fields [3]int
	for i := range fields {
		n, err := readPPMInt(br)
		if err != nil {
			return ppmHeader{}, err
		}
		fields[i] = n
	}

	h := ppmHeader{width: fields[0], height: fields[1], maxVal: fields[2]}
	if h.width <= 0 || h.height <= 0 || h.maxVal <= 0 || h.maxVal > 255 {
		return ppmHeader{}, fmt.Errorf("%w: unsupported header %dx%d max %d", ErrInvalidPPM, h.width, h.height, h.maxVal)
	}
	if h.width > maxPPMPixels/h.height {
		return ppmHeader{}, fmt.Errorf("%w: %dx%d image too large", ErrInvalidPPM, h.width, h.height)
	}
	return h, nil
}

// readPPMInt skips whitespace and comments, then reads a decimal number and
// consumes the single delimiter byte that follows it
func readPPMInt(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: truncated header", ErrInvalidPPM)
		}
		switch {
		case b == '#' && len(digits) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return 0, fmt.Errorf("%w: truncated comment", ErrInvalidPPM)
			}
		case b >= '0' && b <= '9':
			digits = append(digits, b)
		case isPPMSpace(b):
			if len(digits) > 0 {
				n, err := strconv.Atoi(string(digits))
				if err != nil {
					return 0, fmt.Errorf("%w: %v", ErrInvalidPPM, err)
				}
				return n, nil
			}
		default:
			return 0, fmt.Errorf("%w: unexpected byte %q in header", ErrInvalidPPM, b)
		}
	}
}

func isPPMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// DecodePPMConfig returns the dimensions of a binary PPM without reading the raster
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	h, err := readPPMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodePPM reads a binary (P6) PPM image
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}

	raster := make([]byte, h.width*h.height*3)
	if _, err := io.ReadFull(br, raster); err != nil {
		return nil, fmt.Errorf("%w: truncated raster: %v", ErrInvalidPPM, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	for i := 0; i < h.width*h.height; i++ {
		img.Pix[i*4+0] = scaleToByte(raster[i*3+0], h.maxVal)
		img.Pix[i*4+1] = scaleToByte(raster[i*3+1], h.maxVal)
		img.Pix[i*4+2] = scaleToByte(raster[i*3+2], h.maxVal)
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

func scaleToByte(v byte, maxVal int) uint8 {
	if maxVal == 255 {
		return v
	}
	return uint8(int(v) * 255 / maxVal)
}
