package domain

import "fmt"

const (
	// ImageSide is the width and height of an MNIST digit.
	ImageSide = 28
	// ImagePixels is the flattened pixel count the endpoint expects.
	ImagePixels = ImageSide * ImageSide
)

// Image is a grayscale raster of 8-bit intensities stored row-major.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the intensity at (x, y). Out of range coordinates read as 0.
func (im Image) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= im.Width || y >= im.Height {
		return 0
	}
	i := y*im.Width + x
	if i >= len(im.Pix) {
		return 0
	}
	return im.Pix[i]
}

// Flatten returns the pixels in row-major order as plain integers.
// A []uint8 would be encoded as base64 by encoding/json.
func (im Image) Flatten() []int {
	out := make([]int, len(im.Pix))
	for i, p := range im.Pix {
		out[i] = int(p)
	}
	return out
}

// Validate checks the raster is consistent with its declared size.
func (im Image) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", im.Width, im.Height)
	}
	if len(im.Pix) != im.Width*im.Height {
		return fmt.Errorf("image has %d pixels, want %d", len(im.Pix), im.Width*im.Height)
	}
	return nil
}

// Sample is one labeled image drawn from the reference test set.
type Sample struct {
	Index int
	Image Image
	Label int
}

// Validate checks the label range and that the image is a 28x28 MNIST digit.
func (s Sample) Validate() error {
	if s.Label < 0 || s.Label > 9 {
		return fmt.Errorf("label %d outside [0,9]", s.Label)
	}
	if s.Image.Width != ImageSide || s.Image.Height != ImageSide {
		return fmt.Errorf("image is %dx%d, want %dx%d", s.Image.Width, s.Image.Height, ImageSide, ImageSide)
	}
	return s.Image.Validate()
}
