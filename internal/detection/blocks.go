package detection

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyImage reports an input image with zero area.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrNoRuns reports that no pixel run could be recorded, so no block
	// size can be derived.
	ErrNoRuns = errors.New("no pixel runs detected")
)

// Axis selects the scan direction for block-size detection.
type Axis int

const (
	// Horizontal measures runs of equal pixels along each row and
	// estimates the block width.
	Horizontal Axis = iota

	// Vertical measures runs along each column and estimates the block
	// height.
	Vertical
)

// String returns the axis name for log and error messages.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// BlockInfo describes the block structure detected in a pixel-art image.
type BlockInfo struct {
	// Width is the mean horizontal run length in pixels.
	Width int `json:"width"`

	// Height is the mean vertical run length in pixels.
	Height int `json:"height"`

	// Size is the rounded average of Width and Height, the characteristic
	// block size used by the resample pipeline.
	Size int `json:"size"`
}

// DetectBlockSize computes the mean run length of identical pixels along the
// given axis.
//
// Every line perpendicular to the axis is scanned in order. A run closes when
// a pixel differs (in any RGB channel) from the pixel that opened it; the
// trailing run of each line is flushed at line end. The rounded arithmetic
// mean over all recorded run lengths is returned.
//
// Returns ErrEmptyImage when the image has zero area.
func DetectBlockSize(img image.Image, axis Axis) (int, error) {
	src := imaging.Clone(img)
	return blockSize(src, axis)
}

// DetectBlocks measures both axes and derives the characteristic block size
// as the rounded average of block width and height.
func DetectBlocks(img image.Image) (*BlockInfo, error) {
	src := imaging.Clone(img)

	width, err := blockSize(src, Horizontal)
	if err != nil {
		return nil, err
	}
	height, err := blockSize(src, Vertical)
	if err != nil {
		return nil, err
	}

	return &BlockInfo{
		Width:  width,
		Height: height,
		Size:   int(math.Round(float64(width+height) / 2)),
	}, nil
}

func blockSize(src *image.NRGBA, axis Axis) (int, error) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	if w < 1 || h < 1 {
		return 0, ErrEmptyImage
	}

	lengths := runLengths(src, axis)
	if len(lengths) == 0 {
		return 0, fmt.Errorf("%w along %s axis", ErrNoRuns, axis)
	}

	return int(math.Round(stat.Mean(lengths, nil))), nil
}

// runLengths collects every closed run length across all scan lines for one
// axis. For Horizontal the outer loop walks rows and the inner loop walks
// pixels left to right; for Vertical the roles are swapped.
func runLengths(src *image.NRGBA, axis Axis) []float64 {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	lineCount, lineLen := h, w
	if axis == Vertical {
		lineCount, lineLen = w, h
	}

	lengths := make([]float64, 0, lineCount)
	for line := 0; line < lineCount; line++ {
		count := 0
		last := pixelOn(src, axis, line, 0)
		for pos := 0; pos < lineLen; pos++ {
			px := pixelOn(src, axis, line, pos)
			if px != last {
				if count > 0 {
					lengths = append(lengths, float64(count))
				}
				count = 1
				last = px
			} else {
				count++
			}
		}
		if count > 0 {
			lengths = append(lengths, float64(count))
		}
	}
	return lengths
}

// pixelOn reads the RGB channels at position pos of scan line line. The
// alpha channel is ignored; runs are defined over color only.
func pixelOn(src *image.NRGBA, axis Axis, line, pos int) [3]uint8 {
	x, y := pos, line
	if axis == Vertical {
		x, y = line, pos
	}
	i := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y)
	return [3]uint8{src.Pix[i], src.Pix[i+1], src.Pix[i+2]}
}
