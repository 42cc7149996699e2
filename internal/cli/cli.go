// Package cli parses command-line arguments and dispatches them to the
// image operations.
//
// Each subcommand owns its flag set. Output images are written to the path
// given by -out, falling back to the configured default for that operation.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/L31T1NH0/pixel-art-tools/internal/config"
	"github.com/L31T1NH0/pixel-art-tools/internal/detection"
	"github.com/L31T1NH0/pixel-art-tools/internal/imaging"
	"github.com/L31T1NH0/pixel-art-tools/internal/palette"
	"github.com/lucasb-eyer/go-colorful"
)

const usage = `Usage: pixel-art [-config file] <command> [options]

Commands:
  pixelize     Realign the block grid and clean up off-grid noise
  reduce       Shrink an image by an integer factor
  enlarge      Grow an image by an integer factor
  approximate  Snap noisy pixels to the nearest reference color
  colors       Report how often each color appears
  blocks       Report the detected block dimensions
  palette      Suggest reference colors extracted from an image
  help         Print this message

Run "pixel-art <command> -h" for the options of a command.`

// App executes subcommands against a configuration.
type App struct {
	cfg *config.Config
	out io.Writer
}

// New creates an App that writes command output to out.
func New(cfg *config.Config, out io.Writer) *App {
	return &App{cfg: cfg, out: out}
}

// Run dispatches args, where args[0] is the subcommand name.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "pixelize":
		return a.runPixelize(rest)
	case "reduce":
		return a.runReduce(rest)
	case "enlarge":
		return a.runEnlarge(rest)
	case "approximate":
		return a.runApproximate(rest)
	case "colors":
		return a.runColors(rest)
	case "blocks":
		return a.runBlocks(rest)
	case "palette":
		return a.runPalette(rest)
	case "help", "--help", "-h":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q, run \"pixel-art help\" for the command list", cmd)
	}
}

func (a *App) runPixelize(args []string) error {
	fs := flag.NewFlagSet("pixelize", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	out := fs.String("out", a.cfg.Outputs.Pixelize, "output image path")
	factor := fs.Int("factor", 1, "integer reduction factor applied between the resize passes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("pixelize: -in is required")
	}

	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	result, err := imaging.Pixelize(img, *factor)
	if err != nil {
		return err
	}
	if err := imaging.Save(result, *out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s\n", *out)
	return nil
}

func (a *App) runReduce(args []string) error {
	fs := flag.NewFlagSet("reduce", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	out := fs.String("out", a.cfg.Outputs.Reduce, "output image path")
	factor := fs.Int("factor", 0, "integer shrink factor (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("reduce: -in is required")
	}

	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	result, err := imaging.Reduce(img, *factor)
	if err != nil {
		return err
	}
	if err := imaging.Save(result, *out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s\n", *out)
	return nil
}

func (a *App) runEnlarge(args []string) error {
	fs := flag.NewFlagSet("enlarge", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	out := fs.String("out", a.cfg.Outputs.Enlarge, "output image path")
	factor := fs.Int("factor", 0, "integer growth factor (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("enlarge: -in is required")
	}

	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	result, err := imaging.Enlarge(img, *factor)
	if err != nil {
		return err
	}
	if err := imaging.Save(result, *out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s\n", *out)
	return nil
}

func (a *App) runApproximate(args []string) error {
	fs := flag.NewFlagSet("approximate", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	out := fs.String("out", a.cfg.Outputs.Approximate, "output image path")
	colors := fs.String("colors", "", "comma-separated reference colors as #RRGGBB (defaults to the configured palette)")
	tolerance := fs.Int("tolerance", a.cfg.Tolerance, "per-channel distance treated as already matching a reference")
	threshold := fs.Float64("threshold", a.cfg.DiscrepancyThreshold, "minimum distance to the neighborhood mean that triggers replacement")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("approximate: -in is required")
	}

	refs, err := a.referenceColors(*colors)
	if err != nil {
		return err
	}

	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	result, err := imaging.ApproximateColors(img, refs, *tolerance, *threshold)
	if err != nil {
		return err
	}
	if err := imaging.Save(result, *out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s\n", *out)
	return nil
}

func (a *App) runColors(args []string) error {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	out := fs.String("out", "", "report file path (prints to stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("colors: -in is required")
	}

	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	lines, err := imaging.Summarize(img)
	if err != nil {
		return err
	}
	if *out != "" {
		if err := imaging.WriteReport(lines, *out); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "saved %s\n", *out)
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *App) runBlocks(args []string) error {
	fs := flag.NewFlagSet("blocks", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("blocks: -in is required")
	}

	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	info, err := detection.DetectBlocks(img)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode block info: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

func (a *App) runPalette(args []string) error {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(a.out)
	in := fs.String("in", "", "input image path (required)")
	k := fs.Int("k", 2, "number of colors to extract")
	methodName := fs.String("method", "dominant", "extraction method: dominant or kmeans")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("palette: -in is required")
	}

	method, err := palette.ParseMethod(*methodName)
	if err != nil {
		return err
	}
	img, err := imaging.Load(*in)
	if err != nil {
		return err
	}
	colors, err := palette.Extract(img, *k, method)
	if err != nil {
		return err
	}
	for _, hex := range palette.Hexes(colors) {
		fmt.Fprintln(a.out, hex)
	}
	return nil
}

// referenceColors parses a comma-separated hex list, falling back to the
// configured palette when the list is empty.
func (a *App) referenceColors(list string) ([]color.NRGBA, error) {
	if list == "" {
		return a.cfg.Palette()
	}
	parts := strings.Split(list, ",")
	refs := make([]color.NRGBA, 0, len(parts))
	for _, part := range parts {
		hex := strings.TrimSpace(part)
		cf, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid reference color %q: %w", hex, err)
		}
		r, g, b := cf.RGB255()
		refs = append(refs, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return refs, nil
}
