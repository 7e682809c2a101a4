package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/go-drift/wave/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Run a scene and print every frame",
		Long: `Run every animation of a scene file at the scene's frame rate until all of
them finish or maxDuration passes, and print each reported value.

Flags:
  --json     Print one JSON object per sample, then one per animation
  --watch    Rerun the scene whenever the file changes (Ctrl+C to stop)`,
		Usage: "wave simulate <scene.yaml|scene.toml> [--json] [--watch]",
		Run:   runSimulate,
	})
}

func runSimulate(args []string) error {
	fs := newFlagSet("simulate")
	asJSON := fs.Bool("json", false, "print JSON lines")
	watch := fs.Bool("watch", false, "rerun on file changes")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("exactly one scene file is required\n\nUsage: wave simulate <scene> [--json] [--watch]")
	}
	path := positional[0]

	once := func() error {
		return simulateScene(stdout, path, *asJSON)
	}
	if !*watch {
		return once()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchScene(ctx, path, once)
}

func simulateScene(w io.Writer, path string, asJSON bool) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	res, err := scene.Simulate(s, scene.WithLogger(logger))
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, res)
	}
	return writeTable(w, res)
}

func outcome(tr *scene.Track) string {
	switch {
	case tr.Truncated:
		return "truncated"
	case tr.Finished:
		return fmt.Sprintf("finished at %.3fs", tr.FinishedAt)
	case len(tr.Samples) == 0:
		return "did not run"
	}
	return "stopped"
}

func writeTable(w io.Writer, res *scene.Result) error {
	fmt.Fprintf(w, "%s: %d animations at %d fps, %d frames (%.3fs)\n",
		res.Scene.Path, len(res.Tracks), res.Scene.FPS, res.Frames, res.Elapsed.Seconds())
	for _, tr := range res.Tracks {
		fmt.Fprintf(w, "\n%s (%s) %s\n", tr.Name, tr.Kind, outcome(tr))
		if len(tr.Samples) == 0 {
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "frame\ttime\tvalue\t")
		for _, s := range tr.Samples {
			fmt.Fprintf(tw, "%d\t%.3f\t%s\t\n", s.Frame, s.Time, tr.Format(s.Value))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

type sampleLine struct {
	Track string `json:"track"`
	scene.Sample
}

type summaryLine struct {
	Track      string  `json:"track"`
	Kind       string  `json:"kind"`
	Samples    int     `json:"samples"`
	Finished   bool    `json:"finished"`
	FinishedAt float64 `json:"finishedAt,omitempty"`
	Truncated  bool    `json:"truncated"`
}

func writeJSON(w io.Writer, res *scene.Result) error {
	enc := json.NewEncoder(w)
	for _, tr := range res.Tracks {
		for _, s := range tr.Samples {
			if err := enc.Encode(sampleLine{Track: tr.Name, Sample: s}); err != nil {
				return err
			}
		}
	}
	for _, tr := range res.Tracks {
		line := summaryLine{
			Track:      tr.Name,
			Kind:       string(tr.Kind),
			Samples:    len(tr.Samples),
			Finished:   tr.Finished,
			FinishedAt: tr.FinishedAt,
			Truncated:  tr.Truncated,
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}
