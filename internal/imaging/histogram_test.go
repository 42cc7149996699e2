package imaging

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCountColors(t *testing.T) {
	// 3x1 image: two red pixels and one blue.
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})
	img.Set(2, 0, color.RGBA{255, 0, 0, 255})

	result, err := CountColors(img)
	if err != nil {
		t.Fatalf("CountColors failed: %v", err)
	}
	if result.TotalPixels != 3 {
		t.Errorf("expected 3 total pixels, got %d", result.TotalPixels)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 distinct colors, got %d", len(result.Colors))
	}
	if result.Colors[0].Hex != "#FF0000" || result.Colors[0].Count != 2 {
		t.Errorf("expected #FF0000 x2 first, got %s x%d", result.Colors[0].Hex, result.Colors[0].Count)
	}
	if result.Colors[1].Hex != "#0000FF" || result.Colors[1].Count != 1 {
		t.Errorf("expected #0000FF x1 second, got %s x%d", result.Colors[1].Hex, result.Colors[1].Count)
	}
}

func TestCountColors_TiesKeepEncounterOrder(t *testing.T) {
	// Equal counts: green is encountered before blue in row-major order
	// and must stay ahead of it.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{0, 255, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})
	img.Set(0, 1, color.RGBA{0, 255, 0, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})

	result, err := CountColors(img)
	if err != nil {
		t.Fatalf("CountColors failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 distinct colors, got %d", len(result.Colors))
	}
	if result.Colors[0].Hex != "#00FF00" {
		t.Errorf("expected #00FF00 first, got %s", result.Colors[0].Hex)
	}
	if result.Colors[1].Hex != "#0000FF" {
		t.Errorf("expected #0000FF second, got %s", result.Colors[1].Hex)
	}
}

func TestCountColors_EmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := CountColors(img); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	img := newSolidImage(1, 1, color.RGBA{255, 255, 255, 255})

	lines, err := Summarize(img)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	want := []string{
		"Resumo de cores na imagem:",
		"#FFFFFF se repetiu 1 vezes",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestWriteReport(t *testing.T) {
	lines := []string{
		"Resumo de cores na imagem:",
		"#FF0000 se repetiu 2 vezes",
		"#0000FF se repetiu 1 vezes",
	}
	path := filepath.Join(t.TempDir(), "report.txt")

	if err := WriteReport(lines, path); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if got := string(data); got != strings.Join(lines, "\n") {
		t.Errorf("unexpected report content:\n%s", got)
	}
}

func TestWriteReport_InvalidPath(t *testing.T) {
	err := WriteReport([]string{"x"}, "/nonexistent/dir/report.txt")
	if err == nil {
		t.Fatal("expected error for invalid path, got nil")
	}
}
