// Package config loads tool settings from an optional YAML file and
// supplies the built-in defaults when no file is given.
package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Outputs holds the default output path of each operation. A command-line
// flag overrides the value for a single run.
type Outputs struct {
	Pixelize    string `yaml:"pixelize"`
	Reduce      string `yaml:"reduce"`
	Enlarge     string `yaml:"enlarge"`
	Approximate string `yaml:"approximate"`
	ColorReport string `yaml:"color_report"`
}

// Config is the full tool configuration.
type Config struct {
	// ReferenceColors are the palette anchors for color approximation,
	// as "#RRGGBB" hex strings.
	ReferenceColors []string `yaml:"reference_colors"`

	// Tolerance is the per-channel distance within which a pixel is
	// considered to already match a reference color.
	Tolerance int `yaml:"tolerance"`

	// DiscrepancyThreshold is the minimum Euclidean distance between a
	// pixel and its neighborhood mean that triggers a replacement.
	DiscrepancyThreshold float64 `yaml:"discrepancy_threshold"`

	Outputs Outputs `yaml:"outputs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ReferenceColors:      []string{"#000000", "#FFFFFF"},
		Tolerance:            5,
		DiscrepancyThreshold: 0.75,
		Outputs: Outputs{
			Pixelize:    "pixel_art_corrigida.png",
			Reduce:      "pixel_art_reduzida.png",
			Enlarge:     "pixel_art_ampliada.png",
			Approximate: "pixel_art_cores_aproximadas.png",
			ColorReport: "resumo_de_cores.txt",
		},
	}
}

// Load reads a YAML configuration file, applying it on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if len(c.ReferenceColors) == 0 {
		return fmt.Errorf("reference_colors must not be empty")
	}
	for _, hex := range c.ReferenceColors {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("invalid reference color %q: %w", hex, err)
		}
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %d", c.Tolerance)
	}
	if c.DiscrepancyThreshold < 0 {
		return fmt.Errorf("discrepancy_threshold must not be negative, got %v", c.DiscrepancyThreshold)
	}
	return nil
}

// Palette converts the configured reference colors to concrete RGB values.
func (c *Config) Palette() ([]color.NRGBA, error) {
	palette := make([]color.NRGBA, 0, len(c.ReferenceColors))
	for _, hex := range c.ReferenceColors {
		cf, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid reference color %q: %w", hex, err)
		}
		r, g, b := cf.RGB255()
		palette = append(palette, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return palette, nil
}
