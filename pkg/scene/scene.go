// Package scene loads animation scenes from YAML or TOML files and runs
// them offline on a manual tick source, recording every animation's
// trajectory frame by frame.
//
// A scene file looks like this:
//
//	version: v1.0.0
//	fps: 60
//	maxDuration: 5s
//	animations:
//	  - name: fling
//	    kind: decay
//	    from: 0
//	    velocity: 1200
//	  - name: fade
//	    kind: easing
//	    from: "#ff0000"
//	    to: "#0000ff"
//	    duration: 400ms
//	    curve: easeInOut
//
// Colors must be quoted in YAML, where an unquoted # starts a comment.
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/wave/pkg/animation"
	"github.com/go-drift/wave/pkg/errors"
)

const (
	// SupportedMajor is the scene format major version this package reads.
	SupportedMajor = "v1"
	// DefaultFPS is used when a scene omits fps.
	DefaultFPS = 60
	// DefaultMaxDuration bounds a simulation when a scene omits maxDuration.
	DefaultMaxDuration = 10 * time.Second
	// DefaultEasingDuration is used by easing animations without a duration.
	DefaultEasingDuration = 300 * time.Millisecond
)

// Kind names an animation type in a scene file.
type Kind string

const (
	KindSpring    Kind = "spring"
	KindEasing    Kind = "easing"
	KindDecay     Kind = "decay"
	KindKeyFrames Kind = "keyframes"
	// KindMove is valid only inside keyframes.
	KindMove Kind = "move"
)

// Scene is a decoded scene file.
type Scene struct {
	Version     string          `yaml:"version" toml:"version"`
	FPS         int             `yaml:"fps" toml:"fps"`
	MaxDuration Duration        `yaml:"maxDuration" toml:"maxDuration"`
	Animations  []AnimationSpec `yaml:"animations" toml:"animations"`

	// Path is the file the scene was loaded from, if any.
	Path string `yaml:"-" toml:"-"`
}

// AnimationSpec describes one animation.
type AnimationSpec struct {
	Name string `yaml:"name" toml:"name"`
	Kind Kind   `yaml:"kind" toml:"kind"`

	From     Value `yaml:"from" toml:"from"`
	To       Value `yaml:"to" toml:"to"`
	Velocity Value `yaml:"velocity" toml:"velocity"`

	Duration         Duration    `yaml:"duration" toml:"duration"`
	Curve            string      `yaml:"curve" toml:"curve"`
	Spring           *SpringSpec `yaml:"spring" toml:"spring"`
	DecelerationRate float64     `yaml:"decelerationRate" toml:"decelerationRate"`

	Delay       Duration `yaml:"delay" toml:"delay"`
	Priority    int      `yaml:"priority" toml:"priority"`
	Repeats     bool     `yaml:"repeats" toml:"repeats"`
	Autoreverse bool     `yaml:"autoreverse" toml:"autoreverse"`
	Integralize bool     `yaml:"integralize" toml:"integralize"`

	KeyFrames []KeyFrameSpec `yaml:"keyframes" toml:"keyframes"`
}

// SpringSpec selects a spring either by preset name or by parameters.
// Parameters override the preset.
type SpringSpec struct {
	Preset       string  `yaml:"preset" toml:"preset"`
	DampingRatio float64 `yaml:"dampingRatio" toml:"dampingRatio"`
	Response     float64 `yaml:"response" toml:"response"`
}

// KeyFrameSpec describes one step of a keyframes animation.
type KeyFrameSpec struct {
	Kind             Kind        `yaml:"kind" toml:"kind"`
	To               Value       `yaml:"to" toml:"to"`
	Delay            Duration    `yaml:"delay" toml:"delay"`
	Duration         Duration    `yaml:"duration" toml:"duration"`
	Curve            string      `yaml:"curve" toml:"curve"`
	Spring           *SpringSpec `yaml:"spring" toml:"spring"`
	DecelerationRate float64     `yaml:"decelerationRate" toml:"decelerationRate"`
}

var springPresets = map[string]func() animation.Spring{
	"default": animation.DefaultSpring,
	"bouncy":  animation.BouncySpring,
	"snappy":  animation.SnappySpring,
	"smooth":  animation.SmoothSpring,
	"ios":     animation.IOSSpring,
}

// Resolve returns the spring the spec describes. A nil spec is the default
// spring.
func (s *SpringSpec) Resolve() (animation.Spring, error) {
	if s == nil {
		return animation.DefaultSpring(), nil
	}
	spring := animation.DefaultSpring()
	if s.Preset != "" {
		preset, ok := springPresets[s.Preset]
		if !ok {
			return spring, fmt.Errorf("unknown spring preset %q", s.Preset)
		}
		spring = preset()
	}
	if s.DampingRatio != 0 {
		spring.DampingRatio = s.DampingRatio
	}
	if s.Response != 0 {
		spring.Response = s.Response
	}
	if spring.DampingRatio < 0 || spring.Response < 0 {
		return spring, fmt.Errorf("spring parameters must not be negative")
	}
	return spring, nil
}

// Load reads and validates a scene file. The format follows the extension:
// .yaml, .yml or .toml.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{Op: "scene.Load", Kind: errors.KindConfig, Source: path, Err: err}
	}
	s, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Source = path
			if pe, ok := e.Err.(*errors.ParseError); ok {
				pe.File = path
			}
		}
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a scene in the given format ("yaml", "yml"
// or "toml").
func Parse(data []byte, format string) (*Scene, error) {
	var s Scene
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, &errors.Error{Op: "scene.Parse", Kind: errors.KindParsing, Err: err}
		}
	case "toml":
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, &errors.Error{Op: "scene.Parse", Kind: errors.KindParsing, Err: err}
		}
	default:
		return nil, &errors.Error{
			Op:   "scene.Parse",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("unsupported scene format %q: use .yaml, .yml or .toml", format),
		}
	}
	if err := s.normalize(); err != nil {
		return nil, &errors.Error{Op: "scene.Parse", Kind: errors.KindConfig, Err: err}
	}
	return &s, nil
}

func invalid(field string, got any) error {
	return &errors.ParseError{File: "<input>", Field: field, Got: got}
}

// normalize applies defaults and validates the scene.
func (s *Scene) normalize() error {
	if s.Version == "" {
		s.Version = SupportedMajor + ".0.0"
	}
	if !strings.HasPrefix(s.Version, "v") {
		s.Version = "v" + s.Version
	}
	if !semver.IsValid(s.Version) || semver.Major(s.Version) != SupportedMajor {
		return invalid("version", s.Version)
	}
	if s.FPS == 0 {
		s.FPS = DefaultFPS
	}
	if s.FPS < 0 || s.FPS > 1000 {
		return invalid("fps", s.FPS)
	}
	if s.MaxDuration == 0 {
		s.MaxDuration = Duration(DefaultMaxDuration)
	}
	if s.MaxDuration < 0 {
		return invalid("maxDuration", s.MaxDuration.Std())
	}
	if len(s.Animations) == 0 {
		return invalid("animations", "none")
	}

	seen := make(map[string]bool, len(s.Animations))
	for i := range s.Animations {
		a := &s.Animations[i]
		if a.Name == "" {
			a.Name = fmt.Sprintf("animation%d", i+1)
		}
		if seen[a.Name] {
			return invalid(fmt.Sprintf("animations[%d].name", i), a.Name)
		}
		seen[a.Name] = true
		if err := a.normalize(fmt.Sprintf("animations[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (a *AnimationSpec) normalize(field string) error {
	if a.Delay < 0 {
		return invalid(field+".delay", a.Delay.Std())
	}
	if !a.From.IsSet() {
		a.From = Value{Vec: animation.Zeros(max(a.To.Dim(), 1)), Color: a.To.Color}
	}
	dim := a.From.Dim()
	for name, v := range map[string]Value{"to": a.To, "velocity": a.Velocity} {
		if v.IsSet() && v.Dim() != dim {
			return invalid(field+"."+name, fmt.Sprintf("%d components, want %d", v.Dim(), dim))
		}
	}
	if !a.Velocity.IsSet() {
		a.Velocity = Value{Vec: animation.Zeros(dim)}
	}
	if _, err := a.Spring.Resolve(); err != nil {
		return invalid(field+".spring", err.Error())
	}
	if err := checkCurve(field, a.Curve); err != nil {
		return err
	}
	if err := checkRate(field, &a.DecelerationRate); err != nil {
		return err
	}

	switch a.Kind {
	case KindSpring, KindEasing:
		if !a.To.IsSet() {
			return invalid(field+".to", "missing")
		}
		if a.Kind == KindEasing && a.Duration == 0 {
			a.Duration = Duration(DefaultEasingDuration)
		}
		if a.Duration < 0 {
			return invalid(field+".duration", a.Duration.Std())
		}
	case KindDecay:
		if !a.To.IsSet() && a.Velocity.Vec.IsZero() {
			return invalid(field+".velocity", "zero with no target")
		}
	case KindKeyFrames:
		for i := range a.KeyFrames {
			if err := a.KeyFrames[i].normalize(fmt.Sprintf("%s.keyframes[%d]", field, i), dim); err != nil {
				return err
			}
		}
	default:
		return invalid(field+".kind", string(a.Kind))
	}
	return nil
}

func (k *KeyFrameSpec) normalize(field string, dim int) error {
	switch k.Kind {
	case KindSpring, KindEasing, KindDecay, KindMove:
	default:
		return invalid(field+".kind", string(k.Kind))
	}
	if !k.To.IsSet() {
		return invalid(field+".to", "missing")
	}
	if k.To.Dim() != dim {
		return invalid(field+".to", fmt.Sprintf("%d components, want %d", k.To.Dim(), dim))
	}
	if k.Delay < 0 {
		return invalid(field+".delay", k.Delay.Std())
	}
	if k.Kind == KindEasing && k.Duration == 0 {
		k.Duration = Duration(DefaultEasingDuration)
	}
	if k.Duration < 0 {
		return invalid(field+".duration", k.Duration.Std())
	}
	if _, err := k.Spring.Resolve(); err != nil {
		return invalid(field+".spring", err.Error())
	}
	if err := checkCurve(field, k.Curve); err != nil {
		return err
	}
	return checkRate(field, &k.DecelerationRate)
}

func checkCurve(field, name string) error {
	if _, ok := animation.CurveNamed(name); !ok {
		return invalid(field+".curve", name)
	}
	return nil
}

func checkRate(field string, rate *float64) error {
	if *rate == 0 {
		*rate = animation.DecelerationRateNormal
	}
	if !(*rate > 0 && *rate < 1) {
		return invalid(field+".decelerationRate", *rate)
	}
	return nil
}
