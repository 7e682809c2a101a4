package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/wave/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "duration",
		Short: "Show where and when a decay comes to rest",
		Long: `Compute the resting value and the estimated duration of an exponential
decay, such as a fling released with some velocity.

Values and velocities are numbers or comma-separated lists of numbers.

Flags:
  --value V       Start value (default 0)
  --velocity U    Start velocity in units per second (required)
  --rate R        Deceleration rate per millisecond, in (0, 1) (default 0.998)`,
		Usage: "wave duration --velocity U [--value V] [--rate R]",
		Run:   runDuration,
	})
}

func runDuration(args []string) error {
	fs := newFlagSet("duration")
	valueFlag := fs.String("value", "0", "start value")
	velocityFlag := fs.String("velocity", "", "start velocity")
	rate := fs.Float64("rate", animation.DecelerationRateNormal, "deceleration rate")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	if *velocityFlag == "" {
		return fmt.Errorf("--velocity is required\n\nUsage: wave duration --velocity U [--value V] [--rate R]")
	}
	if !(*rate > 0 && *rate < 1) {
		return fmt.Errorf("--rate must be between 0 and 1, got %v", *rate)
	}

	velocity, err := parseVector(*velocityFlag)
	if err != nil {
		return fmt.Errorf("--velocity: %w", err)
	}
	value, err := parseVector(*valueFlag)
	if err != nil {
		return fmt.Errorf("--value: %w", err)
	}
	if len(value) == 1 && len(velocity) > 1 {
		scalar := value[0]
		value = animation.Zeros(len(velocity))
		for i := range value {
			value[i] = scalar
		}
	}
	if len(value) != len(velocity) {
		return fmt.Errorf("--value has %d components but --velocity has %d", len(value), len(velocity))
	}

	fn := animation.NewDecayFunction(*rate)
	fmt.Fprintf(stdout, "destination: %s\n", formatVector(fn.Destination(value, velocity)))
	fmt.Fprintf(stdout, "duration:    %s\n", fn.Duration(value, velocity))
	return nil
}

func parseVector(s string) (animation.Vector, error) {
	parts := strings.Split(s, ",")
	v := make(animation.Vector, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		v = append(v, f)
	}
	return v, nil
}

// formatVector prints components rounded to three decimals.
func formatVector(v animation.Vector) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(math.Round(c*1000)/1000, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
