// Package palette suggests reference colors for approximation by extracting
// the dominant palette of an image.
//
// Two extraction methods are available. The dominant method ranks colors by
// pixel coverage and is fast on any image. The kmeans method clusters a
// subsample of the pixels in RGB space and picks the cluster centers, which
// tends to give smoother palettes on noisy sources. Both methods then select
// k mutually distinct colors in Lab space, weighted by coverage.
package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects a palette extraction strategy.
type Method int

const (
	Dominant Method = iota
	KMeans
)

func (m Method) String() string {
	switch m {
	case KMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseMethod maps a method name to its Method value.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "dominant":
		return Dominant, nil
	case "kmeans":
		return KMeans, nil
	default:
		return 0, fmt.Errorf("unknown palette method %q (want dominant or kmeans)", name)
	}
}

// maxSamples caps the number of pixels fed to kmeans so extraction stays
// fast on large images.
const maxSamples = 12000

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// Extract returns the k most representative colors of img using the given
// method, ordered from darkest to brightest.
func Extract(img image.Image, k int, method Method) ([]color.NRGBA, error) {
	if k < 1 {
		return nil, fmt.Errorf("palette size must be a positive integer, got %d", k)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("cannot extract a palette from an empty image")
	}

	var selected []colorful.Color
	switch method {
	case KMeans:
		selected = extractKMeans(img, k)
		if len(selected) == 0 {
			selected = extractDominant(img, k)
		}
	default:
		selected = extractDominant(img, k)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("palette extraction produced no colors")
	}

	SortByBrightness(selected)

	out := make([]color.NRGBA, len(selected))
	for i, c := range selected {
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out, nil
}

// SortByBrightness orders colors from darkest to brightest by relative
// luminance, so the first entry is the best background candidate.
func SortByBrightness(palette []colorful.Color) {
	sort.SliceStable(palette, func(i, j int) bool {
		return luminance(palette[i]) < luminance(palette[j])
	})
}

// Hexes renders a palette as uppercase "#RRGGBB" strings.
func Hexes(palette []color.NRGBA) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return out
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func extractDominant(img image.Image, k int) []colorful.Color {
	nCandidates := k * 8
	if nCandidates < 24 {
		nCandidates = 24
	}
	candidates := dominantcolor.FindWeight(img, nCandidates)

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{col: col.Clamped(), weight: w})
	}
	return selectDiverse(weighted, k)
}

func extractKMeans(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	// Subsample large images before clustering.
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	// Cluster into more groups than requested, then pick a diverse subset.
	workK := k * 4
	if workK < k+2 {
		workK = k + 2
	}
	if workK > len(dataset) {
		workK = len(dataset)
	}
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{col: col, weight: w})
	}
	return selectDiverse(weighted, k)
}

// selectDiverse picks up to k colors that balance coverage weight against
// mutual distance in Lab space. The heaviest candidate seeds the selection;
// each following pick maximizes its Lab distance to the colors chosen so
// far, scaled by its normalized weight.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k < 1 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, len(cands))
	maxW := 0.0
	for i, c := range cands {
		l, a, b := c.col.Lab()
		items[i] = item{col: c.col, lab: [3]float64{l, a, b}, w: c.weight}
		if c.weight > maxW {
			maxW = c.weight
		}
	}
	if k > len(items) {
		k = len(items)
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	chosen := make([]int, 0, k)
	taken := make([]bool, len(items))

	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	chosen = append(chosen, seed)
	taken[seed] = true

	for len(chosen) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if taken[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range chosen {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				if d := d0*d0 + d1*d1 + d2*d2; d < minD2 {
					minD2 = d
				}
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		taken[bestIdx] = true
		chosen = append(chosen, bestIdx)
	}

	out := make([]colorful.Color, len(chosen))
	for i, idx := range chosen {
		out[i] = items[idx].col
	}
	return out
}
