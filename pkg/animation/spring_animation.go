package animation

import "time"

// SpringAnimation moves a value toward a target with spring physics.
//
// Changing the target while running keeps the current velocity, so the
// motion redirects smoothly; observers receive a Retargeted event.
type SpringAnimation[T any] struct {
	lifecycle
	out output[T]

	spring   Spring
	value    Vector
	velocity Vector
	target   Vector
	from     Vector
	stepper  springStepper

	// AutoStarts starts the animation whenever the target or velocity is
	// set to something that needs animating.
	AutoStarts bool
	// Repeats restarts the animation from its start value when it settles.
	Repeats bool
	// Autoreverse makes a repeating animation swap start and target on
	// every cycle instead of jumping back.
	Autoreverse bool
}

// NewSpringAnimation creates an inactive spring animation from value to target.
func NewSpringAnimation[T any](c *Controller, data Converter[T], spring Spring, value, target T) *SpringAnimation[T] {
	v := data.Encode(value)
	return &SpringAnimation[T]{
		lifecycle: newLifecycle(c),
		out:       output[T]{data: data},
		spring:    spring,
		value:     v,
		velocity:  Zeros(len(v)),
		target:    data.Encode(target),
		from:      v.Clone(),
	}
}

// SetObserver sets the receiver of values and events.
func (a *SpringAnimation[T]) SetObserver(o Observer[T]) { a.out.observer = o }

// SetIntegralizeValues rounds reported values to whole numbers.
func (a *SpringAnimation[T]) SetIntegralizeValues(on bool) { a.out.integralize = on }

// Spring returns the spring model.
func (a *SpringAnimation[T]) Spring() Spring { return a.spring }

// SetSpring replaces the spring model; a running animation continues from
// its current value and velocity.
func (a *SpringAnimation[T]) SetSpring(s Spring) { a.spring = s }

// Value returns the current value.
func (a *SpringAnimation[T]) Value() T { return a.out.data.Decode(a.value) }

// SetValue moves the value without animating. On an animation that is not
// running it also becomes the start value.
func (a *SpringAnimation[T]) SetValue(v T) {
	a.value = a.out.data.Encode(v)
	if a.state != StateRunning {
		a.from = a.value.Clone()
	}
}

// Target returns the target value.
func (a *SpringAnimation[T]) Target() T { return a.out.data.Decode(a.target) }

// SetTarget changes the target. A running animation keeps its velocity and
// reports Retargeted.
func (a *SpringAnimation[T]) SetTarget(t T) {
	next := a.out.data.Encode(t)
	if next.Equal(a.target) {
		return
	}
	old := a.target
	a.target = next
	if a.state == StateRunning {
		a.out.retargeted(old, next)
	}
	a.applyAutoStart()
}

// FromValue returns the value recorded when the animation last started.
func (a *SpringAnimation[T]) FromValue() T { return a.out.data.Decode(a.from) }

// Velocity returns the current velocity in units per second.
func (a *SpringAnimation[T]) Velocity() T { return a.out.data.Decode(a.velocity) }

// SetVelocity replaces the current velocity.
func (a *SpringAnimation[T]) SetVelocity(v T) {
	a.velocity = a.out.data.Encode(v)
	a.applyAutoStart()
}

func (a *SpringAnimation[T]) applyAutoStart() {
	if a.AutoStarts && a.state != StateRunning && !a.IsPending() && !a.atRest() {
		a.Start(0)
	}
}

func (a *SpringAnimation[T]) atRest() bool {
	return a.value.Equal(a.target) && a.velocity.IsZero()
}

// Start begins the animation after delay. It panics if delay is negative.
// An animation already at rest on its target finishes immediately.
func (a *SpringAnimation[T]) Start(delay time.Duration) {
	a.scheduleStart(a, delay, func() bool {
		if !a.resuming() {
			a.from = a.value.Clone()
		}
		if a.atRest() {
			a.finish(a.value.Clone())
			return false
		}
		return true
	})
}

// Pause stops ticking without completing; Start resumes in place.
func (a *SpringAnimation[T]) Pause() {
	if a.state != StateRunning && !a.IsPending() {
		return
	}
	a.deactivate(a, StateInactive)
}

// Stop ends the animation. With immediately set, the value snaps to the
// position, velocity becomes zero and observers receive Finished. Otherwise
// the spring is redirected to the position and keeps running. Stopping an
// ended animation does nothing.
func (a *SpringAnimation[T]) Stop(at StopPosition, immediately bool) {
	if a.state == StateEnded && !a.IsPending() {
		return
	}
	anchor := a.anchor(at)
	if !immediately && a.state == StateRunning {
		a.target = anchor
		return
	}
	a.finish(anchor)
}

func (a *SpringAnimation[T]) finish(at Vector) {
	a.value = at
	a.velocity = Zeros(len(a.value))
	a.deactivate(a, StateEnded)
	a.out.finished(a.value)
}

func (a *SpringAnimation[T]) anchor(at StopPosition) Vector {
	switch at {
	case StopAtStart:
		return a.from.Clone()
	case StopAtEnd:
		return a.target.Clone()
	default:
		return a.value.Clone()
	}
}

// Update advances the spring by dt seconds.
func (a *SpringAnimation[T]) Update(dt float64) {
	a.state = StateRunning
	settled := a.advance(dt)
	if settled && a.Repeats {
		if a.Autoreverse {
			a.from, a.target = a.target, a.from
		} else {
			a.value = a.from.Clone()
		}
		a.velocity = Zeros(len(a.value))
	}
	a.out.valueChanged(a.value)
	if settled && !a.Repeats {
		a.Stop(StopAtCurrent, true)
	}
}

// advance steps the model and reports whether it settled on this step.
func (a *SpringAnimation[T]) advance(dt float64) bool {
	if a.spring.Response <= 0 {
		a.value = a.target.Clone()
		a.velocity = Zeros(len(a.value))
		return true
	}
	if dt > 0 {
		a.value, a.velocity = a.stepper.step(a.spring, a.value, a.velocity, a.target, dt)
	}
	if springSettled(a.value, a.velocity, a.target) {
		a.value = a.target.Clone()
		a.velocity = Zeros(len(a.value))
		return true
	}
	return false
}

// velocityVector and valueVector let KeyFrameAnimation read the raw state.
func (a *SpringAnimation[T]) velocityVector() Vector { return a.velocity }
func (a *SpringAnimation[T]) valueVector() Vector    { return a.value }
