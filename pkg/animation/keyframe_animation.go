package animation

import (
	"fmt"
	"time"
)

// KeyFrameKind selects how a keyframe reaches its target.
type KeyFrameKind int

const (
	// KeyFrameSpring animates with a spring, carrying velocity in.
	KeyFrameSpring KeyFrameKind = iota
	// KeyFrameEasing interpolates over a fixed duration.
	KeyFrameEasing
	// KeyFrameDecay coasts to the target with exponential decay.
	KeyFrameDecay
	// KeyFrameMove jumps to the target instantly.
	KeyFrameMove
)

func (k KeyFrameKind) String() string {
	switch k {
	case KeyFrameSpring:
		return "spring"
	case KeyFrameEasing:
		return "easing"
	case KeyFrameDecay:
		return "decay"
	case KeyFrameMove:
		return "move"
	default:
		return fmt.Sprintf("KeyFrameKind(%d)", int(k))
	}
}

// KeyFrame is one step of a KeyFrameAnimation. Build keyframes with
// SpringTo, EaseTo, DecayTo and MoveTo.
type KeyFrame[T any] struct {
	Kind   KeyFrameKind
	Target T
	// Delay is waited before the step begins.
	Delay time.Duration

	// Spring is used by KeyFrameSpring.
	Spring Spring
	// Curve and Duration are used by KeyFrameEasing.
	Curve    func(float64) float64
	Duration time.Duration
	// DecelerationRate is used by KeyFrameDecay.
	DecelerationRate float64
}

// SpringTo returns a spring keyframe.
func SpringTo[T any](target T, spring Spring, delay time.Duration) KeyFrame[T] {
	return KeyFrame[T]{Kind: KeyFrameSpring, Target: target, Spring: spring, Delay: delay}
}

// EaseTo returns an easing keyframe.
func EaseTo[T any](target T, curve func(float64) float64, duration, delay time.Duration) KeyFrame[T] {
	return KeyFrame[T]{Kind: KeyFrameEasing, Target: target, Curve: curve, Duration: duration, Delay: delay}
}

// DecayTo returns a decay keyframe that coasts to target.
func DecayTo[T any](target T, rate float64, delay time.Duration) KeyFrame[T] {
	return KeyFrame[T]{Kind: KeyFrameDecay, Target: target, DecelerationRate: rate, Delay: delay}
}

// MoveTo returns a keyframe that jumps to target.
func MoveTo[T any](target T, delay time.Duration) KeyFrame[T] {
	return KeyFrame[T]{Kind: KeyFrameMove, Target: target, Delay: delay}
}

// keyFrameStep is the running child of a KeyFrameAnimation. Exactly one of
// the pointers matching kind is set.
type keyFrameStep[T any] struct {
	kind   KeyFrameKind
	spring *SpringAnimation[T]
	easing *EasingAnimation[T]
	decay  *DecayAnimation[T]
}

func (s *keyFrameStep[T]) update(dt float64) {
	switch s.kind {
	case KeyFrameSpring:
		s.spring.Update(dt)
	case KeyFrameEasing:
		s.easing.Update(dt)
	case KeyFrameDecay:
		s.decay.Update(dt)
	}
}

// velocity returns the child's velocity, or nil when the child has none.
func (s *keyFrameStep[T]) velocity() Vector {
	switch s.kind {
	case KeyFrameSpring:
		return s.spring.velocityVector()
	case KeyFrameDecay:
		return s.decay.velocityVector()
	}
	return nil
}

func (s *keyFrameStep[T]) value() Vector {
	switch s.kind {
	case KeyFrameSpring:
		return s.spring.valueVector()
	case KeyFrameEasing:
		return s.easing.valueVector()
	default:
		return s.decay.valueVector()
	}
}

// KeyFrameAnimation runs keyframes strictly in sequence. Each step starts
// from the live value (and velocity) where the previous one ended, so
// motion stays continuous across step boundaries.
//
// The keyframe index only moves forward. IsReversed changes where the
// animation finishes (the start value instead of the last target), not the
// order in which steps run.
type KeyFrameAnimation[T any] struct {
	lifecycle
	out output[T]

	frames   []KeyFrame[T]
	index    int
	value    Vector
	velocity Vector
	from     Vector

	child      *keyFrameStep[T]
	delay      *DeferredTask
	delayIndex int
	delayDone  bool

	// Repeats returns to the start value and plays the keyframes again each
	// time the last one completes.
	Repeats bool
	// IsReversed finishes on the start value instead of the last target.
	IsReversed bool
}

// NewKeyFrameAnimation creates an inactive keyframe animation at value.
func NewKeyFrameAnimation[T any](c *Controller, data Converter[T], value T, frames ...KeyFrame[T]) *KeyFrameAnimation[T] {
	v := data.Encode(value)
	return &KeyFrameAnimation[T]{
		lifecycle:  newLifecycle(c),
		out:        output[T]{data: data},
		frames:     frames,
		value:      v,
		velocity:   Zeros(len(v)),
		from:       v.Clone(),
		delayIndex: -1,
	}
}

// SetObserver sets the receiver of values and events.
func (a *KeyFrameAnimation[T]) SetObserver(o Observer[T]) { a.out.observer = o }

// SetIntegralizeValues rounds reported values to whole numbers.
func (a *KeyFrameAnimation[T]) SetIntegralizeValues(on bool) { a.out.integralize = on }

// KeyFrames returns the keyframes.
func (a *KeyFrameAnimation[T]) KeyFrames() []KeyFrame[T] { return a.frames }

// CurrentKeyFrameIndex returns the index of the running keyframe. It equals
// len(KeyFrames()) once every keyframe has completed.
func (a *KeyFrameAnimation[T]) CurrentKeyFrameIndex() int { return a.index }

// Value returns the current value.
func (a *KeyFrameAnimation[T]) Value() T { return a.out.data.Decode(a.value) }

// Velocity returns the current velocity in units per second.
func (a *KeyFrameAnimation[T]) Velocity() T { return a.out.data.Decode(a.velocity) }

// FromValue returns the value recorded when the animation last started.
func (a *KeyFrameAnimation[T]) FromValue() T { return a.out.data.Decode(a.from) }

// Target returns the last keyframe's target, or the start value if there
// are no keyframes.
func (a *KeyFrameAnimation[T]) Target() T { return a.out.data.Decode(a.finalTarget()) }

func (a *KeyFrameAnimation[T]) finalTarget() Vector {
	if a.IsReversed || len(a.frames) == 0 {
		return a.from.Clone()
	}
	return a.out.data.Encode(a.frames[len(a.frames)-1].Target)
}

// Start begins the animation after delay. It panics if delay is negative.
// An animation without keyframes finishes immediately.
func (a *KeyFrameAnimation[T]) Start(delay time.Duration) {
	a.scheduleStart(a, delay, func() bool {
		if !a.resuming() {
			a.from = a.value.Clone()
			a.rewind()
		}
		if len(a.frames) == 0 {
			a.finish(StopAtCurrent)
			return false
		}
		return true
	})
}

func (a *KeyFrameAnimation[T]) rewind() {
	a.index = 0
	a.child = nil
	a.cancelDelay()
	a.delayIndex = -1
	a.delayDone = false
}

// Pause stops ticking without completing. The running step resumes where
// it left off; a step waiting on its delay waits again in full.
func (a *KeyFrameAnimation[T]) Pause() {
	if a.state != StateRunning && !a.IsPending() {
		return
	}
	a.cancelDelay()
	a.delayIndex = -1
	a.deactivate(a, StateInactive)
}

// Stop ends the animation, snapping to the position. StopAtEnd is the last
// keyframe's target. Keyframe sequences cannot be redirected, so
// immediately is ignored. Stopping an ended animation does nothing.
func (a *KeyFrameAnimation[T]) Stop(at StopPosition, _ bool) {
	if a.state == StateEnded && !a.IsPending() {
		return
	}
	a.finish(at)
}

func (a *KeyFrameAnimation[T]) finish(at StopPosition) {
	switch at {
	case StopAtStart:
		a.value = a.from.Clone()
	case StopAtEnd:
		a.value = a.finalTarget()
	}
	a.velocity = Zeros(len(a.value))
	a.child = nil
	a.cancelDelay()
	a.deactivate(a, StateEnded)
	a.out.finished(a.value)
}

func (a *KeyFrameAnimation[T]) cancelDelay() {
	if a.delay != nil {
		a.delay.Cancel()
		a.delay = nil
	}
}

// Update advances the running keyframe by dt seconds, creating it first if
// the previous one has just completed.
func (a *KeyFrameAnimation[T]) Update(dt float64) {
	a.state = StateRunning
	if a.child == nil {
		if a.index >= len(a.frames) {
			a.complete()
			return
		}
		frame := a.frames[a.index]
		if !a.delayElapsed(frame) {
			return
		}
		if frame.Kind == KeyFrameMove {
			a.move(frame)
			return
		}
		a.child = a.makeStep(frame)
	}

	before := a.value
	step := a.child
	step.update(dt)
	if v := step.velocity(); v != nil {
		a.velocity = v.Clone()
	} else if dt > 0 {
		a.velocity = a.value.Sub(before).Scale(1 / dt)
	}
	if a.child == nil && a.index >= len(a.frames) {
		a.complete()
	}
}

// delayElapsed reports whether frame's delay has passed, scheduling it on
// first sight.
func (a *KeyFrameAnimation[T]) delayElapsed(frame KeyFrame[T]) bool {
	if frame.Delay <= 0 || a.controller == nil {
		return true
	}
	if a.delayIndex == a.index {
		if a.delayDone {
			a.delayIndex = -1
			a.delayDone = false
			return true
		}
		return false
	}
	a.delayIndex = a.index
	a.delayDone = false
	idx := a.index
	a.delay = a.controller.After(frame.Delay, func() {
		a.delay = nil
		if a.index != idx || a.state != StateRunning {
			return
		}
		if frame.Kind == KeyFrameMove {
			a.delayIndex = -1
			a.move(frame)
			return
		}
		a.delayDone = true
	})
	return false
}

// move applies a move keyframe instantly.
func (a *KeyFrameAnimation[T]) move(frame KeyFrame[T]) {
	a.value = a.out.data.Encode(frame.Target)
	a.velocity = Zeros(len(a.value))
	a.index++
	a.out.valueChanged(a.value)
}

func (a *KeyFrameAnimation[T]) makeStep(frame KeyFrame[T]) *keyFrameStep[T] {
	data := a.out.data
	start := data.Decode(a.value)
	step := &keyFrameStep[T]{kind: frame.Kind}
	observer := ObserverFuncs[T]{
		OnValue: func(T) {
			a.value = step.value().Clone()
			a.out.valueChanged(a.value)
		},
		OnComplete: func(e Event[T]) {
			if !e.IsFinished() || a.child != step {
				return
			}
			a.value = step.value().Clone()
			a.child = nil
			a.index++
		},
	}

	switch frame.Kind {
	case KeyFrameSpring:
		s := NewSpringAnimation[T](nil, data, frame.Spring, start, frame.Target)
		s.velocity = a.velocity.Clone()
		s.SetObserver(observer)
		step.spring = s
	case KeyFrameEasing:
		e := NewEasingAnimation[T](nil, data, frame.Curve, frame.Duration, start, frame.Target)
		e.SetObserver(observer)
		step.easing = e
	case KeyFrameDecay:
		rate := frame.DecelerationRate
		if rate == 0 {
			rate = DecelerationRateNormal
		}
		d := NewDecayAnimation[T](nil, data, rate, start, data.Decode(Zeros(len(a.value))))
		d.velocity = d.fn.Velocity(a.value, data.Encode(frame.Target))
		d.SetObserver(observer)
		step.decay = d
	}
	return step
}

// complete ends one pass through the keyframes.
func (a *KeyFrameAnimation[T]) complete() {
	final := a.finalTarget()
	if a.Repeats && len(a.frames) > 0 {
		a.value = a.from.Clone()
		a.velocity = Zeros(len(a.value))
		a.rewind()
		a.out.valueChanged(a.value)
		return
	}
	if !a.value.Equal(final) {
		a.value = final
		a.out.valueChanged(a.value)
	}
	a.Stop(StopAtCurrent, true)
}
