package imaging

import (
	"fmt"
	"image"
	"os"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// SummaryHeader is the fixed first line of every color report.
const SummaryHeader = "Resumo de cores na imagem:"

// ColorCount pairs a color, in canonical uppercase "#RRGGBB" form, with its
// number of occurrences.
type ColorCount struct {
	Hex   string `json:"hex"`
	Count int    `json:"count"`
}

// ColorCountResult contains the full color frequency table of an image,
// sorted by descending count. Colors with equal counts keep the order in
// which they were first encountered (row-major scan).
type ColorCountResult struct {
	Colors      []ColorCount `json:"colors"`
	TotalPixels int          `json:"total_pixels"`
}

// CountColors tallies the occurrences of every distinct color in img.
func CountColors(img image.Image) (*ColorCountResult, error) {
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidParameter)
	}

	src := imaging.Clone(img)
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	counts := make(map[string]int)
	order := make([]string, 0, 16)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			key := fmt.Sprintf("#%02X%02X%02X", src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	colors := make([]ColorCount, len(order))
	for i, hex := range order {
		colors[i] = ColorCount{Hex: hex, Count: counts[hex]}
	}
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Count > colors[j].Count
	})

	return &ColorCountResult{Colors: colors, TotalPixels: w * h}, nil
}

// Summarize renders the color frequency table of img as report lines: a
// fixed header followed by one line per distinct color in descending count
// order.
func Summarize(img image.Image) ([]string, error) {
	result, err := CountColors(img)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(result.Colors)+1)
	lines = append(lines, SummaryHeader)
	for _, c := range result.Colors {
		lines = append(lines, fmt.Sprintf("%s se repetiu %d vezes", c.Hex, c.Count))
	}
	return lines, nil
}

// WriteReport persists report lines to path as newline-separated text.
func WriteReport(lines []string, path string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write color report to %q: %w", path, err)
	}
	return nil
}
