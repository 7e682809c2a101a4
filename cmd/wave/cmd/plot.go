package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/wave/pkg/plot"
	"github.com/go-drift/wave/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Chart every animation of a scene as a PNG",
		Long: `Run a scene file and draw each animation's trajectory into a PNG: one
panel per animation, one line per component, or a strip of the sampled
colors for color animations.

Flags:
  -o FILE        Output file (default: <scene name>.png)
  --width N      Image width in pixels (default 800)
  --height N     Height of each panel in pixels (default 160)`,
		Usage: "wave plot <scene.yaml|scene.toml> [-o out.png]",
		Run:   runPlot,
	})
}

func runPlot(args []string) error {
	fs := newFlagSet("plot")
	out := fs.String("o", "", "output file")
	width := fs.Int("width", plot.DefaultWidth, "image width")
	height := fs.Int("height", plot.DefaultPanelHeight, "panel height")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("exactly one scene file is required\n\nUsage: wave plot <scene> [-o out.png]")
	}
	path := positional[0]
	if *out == "" {
		*out = baseName(path) + ".png"
	}

	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	res, err := scene.Simulate(s, scene.WithLogger(logger))
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	if err := plot.WritePNG(f, res, plot.Options{Width: *width, PanelHeight: *height}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info().Str("scene", path).Str("output", *out).Int("animations", len(res.Tracks)).Msg("plot written")
	fmt.Fprintf(stdout, "Wrote %s\n", *out)
	return nil
}
