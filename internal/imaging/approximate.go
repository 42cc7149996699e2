package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// DefaultReferenceColors returns the default palette for ApproximateColors:
// pure black and pure white. A fresh slice is returned on every call so
// callers can modify it freely.
func DefaultReferenceColors() []color.NRGBA {
	return []color.NRGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
}

// ApproximateColors replaces outlier pixels with the nearest reference color.
//
// A pixel is left untouched when any of the following holds:
//
//   - it is within tolerance of some reference color (every channel differs
//     by at most tolerance);
//   - it has no in-bounds neighbors (degenerate one-pixel image);
//   - the Euclidean distance between the pixel and the per-channel mean of
//     its up-to-8 in-bounds neighbors is strictly below threshold.
//
// Otherwise the pixel becomes the reference color closest (Euclidean
// distance, first occurrence wins ties) to the neighborhood mean.
//
// Each decision reads only original pixel values, never already-replaced
// ones, so the result is independent of evaluation order. The input image is
// not mutated.
func ApproximateColors(img image.Image, refs []color.NRGBA, tolerance int, threshold float64) (image.Image, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: tolerance must be non-negative, got %d", ErrInvalidParameter, tolerance)
	}
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: discrepancy threshold must be non-negative, got %v", ErrInvalidParameter, threshold)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: reference color list must not be empty", ErrInvalidParameter)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidParameter)
	}

	src := imaging.Clone(img)
	dst := imaging.Clone(src)
	h := src.Rect.Dy()

	// Row bands are independent: every band reads the immutable src and
	// writes only its own rows of dst, so the output matches a sequential
	// scan exactly.
	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	band := (h + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < h; start += band {
		start := start
		end := start + band
		if end > h {
			end = h
		}
		g.Go(func() error {
			approximateRows(src, dst, start, end, refs, tolerance, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

func approximateRows(src, dst *image.NRGBA, yMin, yMax int, refs []color.NRGBA, tolerance int, threshold float64) {
	w := src.Rect.Dx()
	for y := yMin; y < yMax; y++ {
		for x := 0; x < w; x++ {
			px := pixelAt(src, x, y)
			if withinTolerance(px, refs, tolerance) {
				continue
			}

			mean, ok := neighborMean(src, x, y)
			if !ok {
				continue
			}
			if distance(px, mean) < threshold {
				continue
			}

			ref := nearestReference(mean, refs)
			i := dst.PixOffset(x, y)
			dst.Pix[i] = ref.R
			dst.Pix[i+1] = ref.G
			dst.Pix[i+2] = ref.B
			dst.Pix[i+3] = 255
		}
	}
}

// rgb holds one pixel's channels widened to int for arithmetic.
type rgb struct {
	r, g, b int
}

func pixelAt(src *image.NRGBA, x, y int) rgb {
	i := src.PixOffset(x, y)
	return rgb{int(src.Pix[i]), int(src.Pix[i+1]), int(src.Pix[i+2])}
}

// withinTolerance reports whether every channel of p differs by at most
// tolerance from some reference color.
func withinTolerance(p rgb, refs []color.NRGBA, tolerance int) bool {
	for _, ref := range refs {
		if absInt(p.r-int(ref.R)) <= tolerance &&
			absInt(p.g-int(ref.G)) <= tolerance &&
			absInt(p.b-int(ref.B)) <= tolerance {
			return true
		}
	}
	return false
}

// neighborMean computes the per-channel mean, rounded to nearest, of the
// up-to-8 neighbors of (x, y) that lie inside the image. Out-of-bounds
// neighbors are excluded from both the sum and the divisor; there is no
// wraparound and no padding. ok is false when the pixel has no neighbors at
// all.
func neighborMean(src *image.NRGBA, x, y int) (mean rgb, ok bool) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	var sum rgb
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			p := pixelAt(src, nx, ny)
			sum.r += p.r
			sum.g += p.g
			sum.b += p.b
			count++
		}
	}
	if count == 0 {
		return rgb{}, false
	}
	return rgb{
		r: roundDiv(sum.r, count),
		g: roundDiv(sum.g, count),
		b: roundDiv(sum.b, count),
	}, true
}

// nearestReference returns the reference color with minimum Euclidean
// distance to p. The comparison is strict, so the first occurrence in refs
// wins ties.
func nearestReference(p rgb, refs []color.NRGBA) color.NRGBA {
	best := 0
	bestDist := math.MaxInt
	for i, ref := range refs {
		dr := p.r - int(ref.R)
		dg := p.g - int(ref.G)
		db := p.b - int(ref.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return refs[best]
}

// distance is the Euclidean distance between two colors in 0-255 channel
// units.
func distance(a, b rgb) float64 {
	dr := float64(a.r - b.r)
	dg := float64(a.g - b.g)
	db := float64(a.b - b.b)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func roundDiv(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
