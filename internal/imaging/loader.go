package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Load reads and decodes the image at path. Supported formats are those
// registered by the underlying library (PNG, JPEG, GIF, TIFF, BMP).
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %q: %w", path, err)
	}
	return img, nil
}

// Save encodes img to path. The output format is selected by the file
// extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image to %q: %w", path, err)
	}
	return nil
}

// ToRGB returns an 8-bit RGB copy of img with bounds anchored at the origin.
// The copy is private to the caller: mutating it never affects img.
func ToRGB(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}
