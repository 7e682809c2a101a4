package scene

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/wave/pkg/animation"
)

// Value is an animatable value in a scene file: a number, a list of
// numbers, or a quoted "#rrggbb" color, which becomes four components
// (red, green, blue, alpha).
type Value struct {
	Vec   animation.Vector
	Color bool
}

// IsSet reports whether the value was present in the file.
func (v Value) IsSet() bool {
	return v.Vec != nil
}

// Dim returns the number of components.
func (v Value) Dim() int {
	return len(v.Vec)
}

// Format renders a vector the way this value was written: hex for colors,
// a bare number for scalars, a bracketed list otherwise.
func (v Value) Format(vec animation.Vector) string {
	if v.Color {
		return animation.ColorData.Decode(vec).Clamped().Hex()
	}
	if len(vec) == 1 {
		return fmt.Sprintf("%.4f", vec[0])
	}
	parts := make([]string, len(vec))
	for i, c := range vec {
		parts[i] = fmt.Sprintf("%.4f", c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *Value) setColor(s string) error {
	c, err := animation.Hex(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected a number, a list of numbers or a hex color, got %q", s)
	}
	v.Vec = animation.ColorData.Encode(c)
	v.Color = true
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err == nil {
			v.Vec = animation.Vector{f}
			return nil
		}
		return v.setColor(node.Value)
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return err
		}
		if len(fs) == 0 {
			return fmt.Errorf("line %d: empty value list", node.Line)
		}
		v.Vec = animation.Vector(fs)
		return nil
	}
	return fmt.Errorf("line %d: expected a number, a list of numbers or a hex color", node.Line)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case string:
		return v.setColor(d)
	case []any:
		if len(d) == 0 {
			return fmt.Errorf("empty value list")
		}
		vec := make(animation.Vector, len(d))
		for i, item := range d {
			f, ok := tomlNumber(item)
			if !ok {
				return fmt.Errorf("expected a number at index %d, got %T", i, item)
			}
			vec[i] = f
		}
		v.Vec = vec
		return nil
	default:
		f, ok := tomlNumber(d)
		if !ok {
			return fmt.Errorf("expected a number, a list of numbers or a hex color, got %T", data)
		}
		v.Vec = animation.Vector{f}
		return nil
	}
}

func tomlNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Duration is a time span written either as a Go duration string ("250ms")
// or as a number of seconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected a duration such as \"300ms\" or a number of seconds, got %q", s)
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) setSeconds(s float64) {
	*d = Duration(s * float64(time.Second))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a duration", node.Line)
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		d.setSeconds(f)
		return nil
	}
	return d.parse(node.Value)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Duration) UnmarshalTOML(data any) error {
	if s, ok := data.(string); ok {
		return d.parse(s)
	}
	f, ok := tomlNumber(data)
	if !ok {
		return fmt.Errorf("expected a duration, got %T", data)
	}
	d.setSeconds(f)
	return nil
}
