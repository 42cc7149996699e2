package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// ResizeNearest scales img to width x height using nearest-neighbor
// sampling. Pixel-art operations never interpolate: interpolation would
// smear the hard block edges the other operations rely on.
func ResizeNearest(img image.Image, width, height int) *image.RGBA {
	return transform.Resize(img, width, height, transform.NearestNeighbor)
}

// Reduce shrinks img by an integer factor, dividing both dimensions by
// factor (integer division). The factor must be positive and must not exceed
// either dimension, otherwise the result would collapse to zero pixels.
func Reduce(img image.Image, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: reduction factor must be a positive integer, got %d", ErrInvalidParameter, factor)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidParameter)
	}

	w := b.Dx() / factor
	h := b.Dy() / factor
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: reduction factor %d exceeds image dimensions %dx%d",
			ErrInvalidParameter, factor, b.Dx(), b.Dy())
	}
	return ResizeNearest(img, w, h), nil
}

// Enlarge scales img up by an integer factor, multiplying both dimensions.
func Enlarge(img image.Image, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: enlargement factor must be a positive integer, got %d", ErrInvalidParameter, factor)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidParameter)
	}
	return ResizeNearest(img, b.Dx()*factor, b.Dy()*factor), nil
}
