package animation

import "time"

// EasingAnimation interpolates from a start value to a target over a fixed
// duration, shaping progress with a timing curve.
type EasingAnimation[T any] struct {
	lifecycle
	out output[T]

	from     Vector
	target   Vector
	value    Vector
	duration time.Duration
	fraction float64

	// Curve maps linear progress to eased progress. Nil means linear.
	Curve func(float64) float64
	// Repeats restarts the animation each time it completes.
	Repeats bool
	// Autoreverse makes a repeating animation alternate direction.
	Autoreverse bool
	// IsReversed plays from the target back to the start value.
	IsReversed bool
}

// NewEasingAnimation creates an inactive easing animation from value to target.
func NewEasingAnimation[T any](c *Controller, data Converter[T], curve func(float64) float64, duration time.Duration, value, target T) *EasingAnimation[T] {
	from := data.Encode(value)
	return &EasingAnimation[T]{
		lifecycle: newLifecycle(c),
		out:       output[T]{data: data},
		from:      from,
		target:    data.Encode(target),
		value:     from.Clone(),
		duration:  duration,
		Curve:     curve,
	}
}

// SetObserver sets the receiver of values and events.
func (a *EasingAnimation[T]) SetObserver(o Observer[T]) { a.out.observer = o }

// SetIntegralizeValues rounds reported values to whole numbers.
func (a *EasingAnimation[T]) SetIntegralizeValues(on bool) { a.out.integralize = on }

// Duration returns the length of one pass.
func (a *EasingAnimation[T]) Duration() time.Duration { return a.duration }

// SetDuration changes the length of one pass, keeping the fraction complete.
func (a *EasingAnimation[T]) SetDuration(d time.Duration) { a.duration = d }

// FractionComplete returns linear progress in [0, 1].
func (a *EasingAnimation[T]) FractionComplete() float64 { return a.fraction }

// SetFractionComplete scrubs the animation to fraction f, clamped to [0, 1].
func (a *EasingAnimation[T]) SetFractionComplete(f float64) {
	a.fraction = clampUnit(f)
	a.value = a.from.Lerp(a.target, a.eased())
}

// Progress returns eased progress, the curve applied to FractionComplete.
func (a *EasingAnimation[T]) Progress() float64 { return a.eased() }

// Value returns the current value.
func (a *EasingAnimation[T]) Value() T { return a.out.data.Decode(a.value) }

// SetValue moves the value without animating. On an animation that is not
// running it also becomes the start value and resets progress.
func (a *EasingAnimation[T]) SetValue(v T) {
	a.value = a.out.data.Encode(v)
	if a.state != StateRunning {
		a.from = a.value.Clone()
		a.fraction = 0
	}
}

// FromValue returns the start value.
func (a *EasingAnimation[T]) FromValue() T { return a.out.data.Decode(a.from) }

// Target returns the target value.
func (a *EasingAnimation[T]) Target() T { return a.out.data.Decode(a.target) }

// SetTarget changes the target. A running animation restarts from its
// current value and reports Retargeted.
func (a *EasingAnimation[T]) SetTarget(t T) {
	next := a.out.data.Encode(t)
	if next.Equal(a.target) {
		return
	}
	old := a.target
	a.target = next
	if a.state == StateRunning {
		a.from = a.value.Clone()
		a.fraction = 0
		a.IsReversed = false
		a.out.retargeted(old, next)
	}
}

// Start begins the animation after delay. It panics if delay is negative.
// An animation whose start and target are equal finishes immediately.
func (a *EasingAnimation[T]) Start(delay time.Duration) {
	a.scheduleStart(a, delay, func() bool {
		if !a.resuming() && a.complete() {
			a.restart()
		}
		if a.from.Equal(a.target) {
			a.finish(StopAtCurrent)
			return false
		}
		return true
	})
}

// restart rewinds a completed animation so that it can run again.
func (a *EasingAnimation[T]) restart() {
	if a.IsReversed {
		a.fraction = 1
	} else {
		a.fraction = 0
	}
	a.value = a.from.Lerp(a.target, a.eased())
}

// Pause stops ticking without completing; Start resumes in place.
func (a *EasingAnimation[T]) Pause() {
	if a.state != StateRunning && !a.IsPending() {
		return
	}
	a.deactivate(a, StateInactive)
}

// Stop ends the animation. With immediately set, the value snaps to the
// position and observers receive Finished. Otherwise a running animation
// eases from its current value to the position over its duration. Stopping
// an ended animation does nothing.
func (a *EasingAnimation[T]) Stop(at StopPosition, immediately bool) {
	if a.state == StateEnded && !a.IsPending() {
		return
	}
	if !immediately && a.state == StateRunning && at != StopAtCurrent {
		a.target = a.anchor(at)
		a.from = a.value.Clone()
		a.fraction = 0
		a.IsReversed = false
		return
	}
	a.finish(at)
}

func (a *EasingAnimation[T]) finish(at StopPosition) {
	a.value = a.anchor(at)
	switch at {
	case StopAtStart:
		a.fraction = 0
	case StopAtEnd:
		a.fraction = 1
	}
	a.deactivate(a, StateEnded)
	a.out.finished(a.value)
}

func (a *EasingAnimation[T]) anchor(at StopPosition) Vector {
	switch at {
	case StopAtStart:
		return a.from.Clone()
	case StopAtEnd:
		return a.target.Clone()
	default:
		return a.value.Clone()
	}
}

// Update advances the animation by dt seconds.
func (a *EasingAnimation[T]) Update(dt float64) {
	a.state = StateRunning
	if a.duration <= 0 {
		if a.IsReversed {
			a.fraction = 0
		} else {
			a.fraction = 1
		}
	} else {
		step := dt / a.duration.Seconds()
		if a.IsReversed {
			step = -step
		}
		a.fraction = clampUnit(a.fraction + step)
	}
	a.value = a.from.Lerp(a.target, a.eased())

	done := a.complete()
	if done && a.Repeats {
		if a.Autoreverse {
			a.IsReversed = !a.IsReversed
		} else {
			a.restart()
		}
	}
	a.out.valueChanged(a.value)
	if done && !a.Repeats {
		a.Stop(StopAtCurrent, true)
	}
}

func (a *EasingAnimation[T]) complete() bool {
	if a.IsReversed {
		return a.fraction <= 0
	}
	return a.fraction >= 1
}

func (a *EasingAnimation[T]) eased() float64 {
	if a.Curve == nil {
		return a.fraction
	}
	return a.Curve(a.fraction)
}

func (a *EasingAnimation[T]) valueVector() Vector { return a.value }
