package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// createTwoToneImage builds an image whose left half is c1 and right half c2.
func createTwoToneImage(t *testing.T, width, height int, c1, c2 color.Color) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, c1)
			} else {
				img.Set(x, y, c2)
			}
		}
	}
	return img
}

// createGradientImage builds an image sweeping from black to white with a
// red tint, giving kmeans a rich dataset.
func createGradientImage(t *testing.T, width, height int) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.Set(x, y, color.RGBA{255, v, v, 255})
		}
	}
	return img
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		want    Method
		wantErr bool
	}{
		{"dominant", Dominant, false},
		{"kmeans", KMeans, false},
		{"median-cut", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMethod(%q): expected error, got nil", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMethod(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMethodString(t *testing.T) {
	if Dominant.String() != "dominant" {
		t.Errorf("expected \"dominant\", got %q", Dominant.String())
	}
	if KMeans.String() != "kmeans" {
		t.Errorf("expected \"kmeans\", got %q", KMeans.String())
	}
}

func TestExtract_Dominant(t *testing.T) {
	img := createTwoToneImage(t, 64, 64, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})

	palette, err := Extract(img, 2, Dominant)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(palette) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(palette))
	}
	// Darkest first.
	if palette[0].R > palette[1].R {
		t.Errorf("expected darkest color first, got %v before %v", palette[0], palette[1])
	}
}

func TestExtract_KMeans(t *testing.T) {
	img := createGradientImage(t, 64, 32)

	palette, err := Extract(img, 3, KMeans)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(palette) == 0 || len(palette) > 3 {
		t.Fatalf("expected between 1 and 3 colors, got %d", len(palette))
	}
	for i := 1; i < len(palette); i++ {
		if palette[i-1] == palette[i] {
			t.Errorf("expected distinct colors, got duplicate %v", palette[i])
		}
	}
}

func TestExtract_InvalidInput(t *testing.T) {
	img := createTwoToneImage(t, 8, 8, color.Black, color.White)

	if _, err := Extract(img, 0, Dominant); err == nil {
		t.Error("expected error for k=0, got nil")
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Extract(empty, 2, Dominant); err == nil {
		t.Error("expected error for empty image, got nil")
	}
}

func TestSortByBrightness(t *testing.T) {
	palette := []colorful.Color{
		{R: 1, G: 1, B: 1},
		{R: 0, G: 0, B: 0},
		{R: 0.5, G: 0.5, B: 0.5},
	}
	SortByBrightness(palette)

	if palette[0].R != 0 || palette[1].R != 0.5 || palette[2].R != 1 {
		t.Errorf("palette not ordered dark to bright: %v", palette)
	}
}

func TestHexes(t *testing.T) {
	palette := []color.NRGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 128, B: 0, A: 255},
	}
	got := Hexes(palette)
	want := []string{"#000000", "#FF8000"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hex %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
