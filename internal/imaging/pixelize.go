package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/L31T1NH0/pixel-art-tools/internal/detection"
)

// Pixelize realigns the block structure of a pixel-art image and re-applies
// it after an integer reduction, cleaning up off-grid noise.
//
// The pipeline is:
//
//  1. Detect block width, height and characteristic size.
//  2. Resize to the corrected resolution round(w/blockW*size) x
//     round(h/blockH*size), so every logical block maps to exactly size
//     pixels.
//  3. Downscale by integer division with factor.
//  4. Upscale back to the corrected resolution.
//
// All resize passes use nearest-neighbor sampling. The returned image has
// the corrected resolution, which equals the input resolution when the
// blocks are already exact.
func Pixelize(img image.Image, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: reduction factor must be a positive integer, got %d", ErrInvalidParameter, factor)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidParameter)
	}

	blocks, err := detection.DetectBlocks(img)
	if err != nil {
		return nil, err
	}

	correctedW := int(math.Round(float64(b.Dx()) / float64(blocks.Width) * float64(blocks.Size)))
	correctedH := int(math.Round(float64(b.Dy()) / float64(blocks.Height) * float64(blocks.Size)))

	reducedW := correctedW / factor
	reducedH := correctedH / factor
	if reducedW < 1 || reducedH < 1 {
		return nil, fmt.Errorf("%w: reduction factor %d exceeds corrected resolution %dx%d",
			ErrInvalidParameter, factor, correctedW, correctedH)
	}

	corrected := ResizeNearest(img, correctedW, correctedH)
	reduced := ResizeNearest(corrected, reducedW, reducedH)
	return ResizeNearest(reduced, correctedW, correctedH), nil
}
