package scene

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-drift/wave/pkg/animation"
	"github.com/go-drift/wave/pkg/errors"
)

// Sample is one value an animation reported.
type Sample struct {
	Frame int              `json:"frame"`
	Time  float64          `json:"t"`
	Value animation.Vector `json:"value"`
}

// Track is the recorded trajectory of one animation.
type Track struct {
	Name string
	Kind Kind
	// Color reports whether samples are red, green, blue, alpha colors.
	Color bool
	// Format renders sample values the way the scene wrote them.
	Format func(animation.Vector) string

	Samples []Sample
	// Finished reports whether the animation completed on its own.
	Finished bool
	// FinishedAt is the simulation time of completion in seconds.
	FinishedAt float64
	// Truncated reports whether the simulation hit maxDuration first.
	Truncated bool

	anim  sceneAnimation
	delay time.Duration
}

// Last returns the most recent sample.
func (t *Track) Last() (Sample, bool) {
	if len(t.Samples) == 0 {
		return Sample{}, false
	}
	return t.Samples[len(t.Samples)-1], true
}

// Result is the outcome of Simulate.
type Result struct {
	Scene   *Scene
	Frames  int
	Elapsed time.Duration
	Tracks  []*Track
}

// Track returns the track with the given name, or nil.
func (r *Result) Track(name string) *Track {
	for _, t := range r.Tracks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// sceneAnimation is the surface every built animation shares.
type sceneAnimation interface {
	animation.Animation
	Start(delay time.Duration)
	IsPending() bool
	SetGroupID(id uuid.UUID)
	SetPriority(p int)
}

// Option configures Simulate.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger for the simulation and its controller.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// clock tracks the simulated frame so observers can stamp samples.
type clock struct {
	frame int
	t     float64
}

// Simulate runs every animation of s on a manual tick source at the scene's
// frame rate until all of them finish or maxDuration passes, recording each
// reported value.
func Simulate(s *Scene, opts ...Option) (*Result, error) {
	cfg := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	src := animation.NewManualSource()
	ctrl := animation.NewController(src, animation.WithLogger(cfg.logger))
	group := uuid.New()
	clk := &clock{}

	res := &Result{Scene: s}
	for i := range s.Animations {
		spec := &s.Animations[i]
		tr := &Track{
			Name:   spec.Name,
			Kind:   spec.Kind,
			Color:  spec.From.Color,
			Format: spec.From.Format,
			delay:  spec.Delay.Std(),
		}
		anim, err := build(ctrl, spec, record(tr, clk))
		if err != nil {
			return nil, &errors.Error{Op: "scene.Simulate", Kind: errors.KindConfig, Source: spec.Name, Err: err}
		}
		anim.SetGroupID(group)
		anim.SetPriority(spec.Priority)
		tr.anim = anim
		res.Tracks = append(res.Tracks, tr)
	}

	for _, tr := range res.Tracks {
		tr.anim.Start(tr.delay)
	}

	step := time.Second / time.Duration(s.FPS)
	limit := s.MaxDuration.Std()
	for !ctrl.Idle() && res.Elapsed < limit {
		clk.frame++
		res.Elapsed += step
		clk.t = res.Elapsed.Seconds()
		src.Step(step)
	}
	res.Frames = clk.frame

	if !ctrl.Idle() {
		for _, tr := range res.Tracks {
			if tr.anim.State() == animation.StateRunning || tr.anim.IsPending() {
				tr.Truncated = true
			}
		}
		// Reaches delayed starts that have not fired yet as well.
		ctrl.StopGroup(group, animation.StopAtCurrent, true)
		cfg.logger.Warn().
			Str("scene", s.Path).
			Dur("maxDuration", limit).
			Msg("simulation truncated")
	}

	cfg.logger.Info().
		Str("scene", s.Path).
		Int("animations", len(res.Tracks)).
		Int("frames", res.Frames).
		Dur("elapsed", res.Elapsed).
		Msg("simulation finished")
	return res, nil
}

func record(tr *Track, clk *clock) animation.Observer[animation.Vector] {
	return animation.ObserverFuncs[animation.Vector]{
		OnValue: func(v animation.Vector) {
			tr.Samples = append(tr.Samples, Sample{Frame: clk.frame, Time: clk.t, Value: v})
		},
		OnComplete: func(e animation.Event[animation.Vector]) {
			if !e.IsFinished() || tr.Truncated {
				return
			}
			tr.Finished = true
			tr.FinishedAt = clk.t
		},
	}
}

// build creates the animation spec describes on ctrl.
func build(ctrl *animation.Controller, spec *AnimationSpec, obs animation.Observer[animation.Vector]) (sceneAnimation, error) {
	data := animation.VectorData
	switch spec.Kind {
	case KindSpring:
		spring, err := spec.Spring.Resolve()
		if err != nil {
			return nil, err
		}
		a := animation.NewSpringAnimation(ctrl, data, spring, spec.From.Vec, spec.To.Vec)
		a.SetVelocity(spec.Velocity.Vec)
		a.Repeats = spec.Repeats
		a.Autoreverse = spec.Autoreverse
		a.SetIntegralizeValues(spec.Integralize)
		a.SetObserver(obs)
		return a, nil

	case KindEasing:
		curve, ok := animation.CurveNamed(spec.Curve)
		if !ok {
			return nil, fmt.Errorf("unknown curve %q", spec.Curve)
		}
		a := animation.NewEasingAnimation(ctrl, data, curve, spec.Duration.Std(), spec.From.Vec, spec.To.Vec)
		a.Repeats = spec.Repeats
		a.Autoreverse = spec.Autoreverse
		a.SetIntegralizeValues(spec.Integralize)
		a.SetObserver(obs)
		return a, nil

	case KindDecay:
		a := animation.NewDecayAnimation(ctrl, data, spec.DecelerationRate, spec.From.Vec, spec.Velocity.Vec)
		if spec.To.IsSet() {
			a.SetTarget(spec.To.Vec)
		}
		a.Repeats = spec.Repeats
		a.SetIntegralizeValues(spec.Integralize)
		a.SetObserver(obs)
		return a, nil

	case KindKeyFrames:
		frames := make([]animation.KeyFrame[animation.Vector], 0, len(spec.KeyFrames))
		for i := range spec.KeyFrames {
			kf, err := keyFrame(&spec.KeyFrames[i])
			if err != nil {
				return nil, fmt.Errorf("keyframes[%d]: %w", i, err)
			}
			frames = append(frames, kf)
		}
		a := animation.NewKeyFrameAnimation(ctrl, data, spec.From.Vec, frames...)
		a.Repeats = spec.Repeats
		a.SetIntegralizeValues(spec.Integralize)
		a.SetObserver(obs)
		return a, nil
	}
	return nil, fmt.Errorf("unknown kind %q", spec.Kind)
}

func keyFrame(k *KeyFrameSpec) (animation.KeyFrame[animation.Vector], error) {
	delay := k.Delay.Std()
	switch k.Kind {
	case KindSpring:
		spring, err := k.Spring.Resolve()
		if err != nil {
			return animation.KeyFrame[animation.Vector]{}, err
		}
		return animation.SpringTo(k.To.Vec, spring, delay), nil
	case KindEasing:
		curve, ok := animation.CurveNamed(k.Curve)
		if !ok {
			return animation.KeyFrame[animation.Vector]{}, fmt.Errorf("unknown curve %q", k.Curve)
		}
		return animation.EaseTo(k.To.Vec, curve, k.Duration.Std(), delay), nil
	case KindDecay:
		return animation.DecayTo(k.To.Vec, k.DecelerationRate, delay), nil
	case KindMove:
		return animation.MoveTo(k.To.Vec, delay), nil
	}
	return animation.KeyFrame[animation.Vector]{}, fmt.Errorf("unknown keyframe kind %q", k.Kind)
}
