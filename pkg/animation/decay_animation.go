package animation

import "time"

// DecayAnimation slows a moving value down with exponential velocity decay,
// like a scroll view coasting after a fling.
//
// The target is not stored: it is the resting point implied by the current
// value, velocity and deceleration rate. Setting a target sets the velocity
// that comes to rest there.
type DecayAnimation[T any] struct {
	lifecycle
	out output[T]

	fn           DecayFunction
	value        Vector
	velocity     Vector
	fromValue    Vector
	fromVelocity Vector

	// AutoStarts starts the animation whenever a non-zero velocity or a new
	// target is set.
	AutoStarts bool
	// Repeats replays the decay from its recorded start value and velocity
	// each time it comes to rest.
	Repeats bool
}

// NewDecayAnimation creates an inactive decay animation at value moving
// with velocity. It panics unless 0 < rate < 1.
func NewDecayAnimation[T any](c *Controller, data Converter[T], rate float64, value, velocity T) *DecayAnimation[T] {
	v := data.Encode(value)
	u := data.Encode(velocity)
	return &DecayAnimation[T]{
		lifecycle:    newLifecycle(c),
		out:          output[T]{data: data},
		fn:           NewDecayFunction(rate),
		value:        v,
		velocity:     u,
		fromValue:    v.Clone(),
		fromVelocity: u.Clone(),
	}
}

// SetObserver sets the receiver of values and events.
func (a *DecayAnimation[T]) SetObserver(o Observer[T]) { a.out.observer = o }

// SetIntegralizeValues rounds reported values to whole numbers.
func (a *DecayAnimation[T]) SetIntegralizeValues(on bool) { a.out.integralize = on }

// DecelerationRate returns the per-millisecond velocity retention.
func (a *DecayAnimation[T]) DecelerationRate() float64 { return a.fn.DecelerationRate() }

// SetDecelerationRate changes the rate. It panics unless 0 < rate < 1.
func (a *DecayAnimation[T]) SetDecelerationRate(rate float64) {
	a.fn.SetDecelerationRate(rate)
}

// Value returns the current value.
func (a *DecayAnimation[T]) Value() T { return a.out.data.Decode(a.value) }

// SetValue moves the value without animating. On an animation that is not
// running it also becomes the start value.
func (a *DecayAnimation[T]) SetValue(v T) {
	a.value = a.out.data.Encode(v)
	if a.state != StateRunning {
		a.fromValue = a.value.Clone()
	}
}

// FromValue returns the value recorded when the animation last started.
func (a *DecayAnimation[T]) FromValue() T { return a.out.data.Decode(a.fromValue) }

// Velocity returns the current velocity in units per second.
func (a *DecayAnimation[T]) Velocity() T { return a.out.data.Decode(a.velocity) }

// SetVelocity replaces the velocity, auto-starting if configured to.
func (a *DecayAnimation[T]) SetVelocity(v T) {
	a.velocity = a.out.data.Encode(v)
	if a.state != StateRunning {
		a.fromVelocity = a.velocity.Clone()
	}
	a.applyAutoStart()
}

// Target returns the resting value of the current motion.
func (a *DecayAnimation[T]) Target() T {
	return a.out.data.Decode(a.fn.Destination(a.value, a.velocity))
}

// SetTarget replaces the velocity with the one that comes to rest at t.
// A running animation reports Retargeted.
func (a *DecayAnimation[T]) SetTarget(t T) {
	next := a.out.data.Encode(t)
	old := a.fn.Destination(a.value, a.velocity)
	a.velocity = a.fn.Velocity(a.value, next)
	if a.state == StateRunning {
		a.out.retargeted(old, next)
	} else {
		a.fromVelocity = a.velocity.Clone()
	}
	a.applyAutoStart()
}

// Duration estimates how long the current motion takes to come to rest.
func (a *DecayAnimation[T]) Duration() time.Duration {
	return a.fn.Duration(a.value, a.velocity)
}

// applyAutoStart is the single place where assignments may start the
// animation.
func (a *DecayAnimation[T]) applyAutoStart() {
	if a.AutoStarts && a.state != StateRunning && !a.IsPending() && !a.velocity.IsZero() {
		a.Start(0)
	}
}

// Start begins the animation after delay. It panics if delay is negative.
// Starting with zero velocity does nothing: there is no motion to decay.
func (a *DecayAnimation[T]) Start(delay time.Duration) {
	a.scheduleStart(a, delay, func() bool {
		if a.velocity.IsZero() {
			return false
		}
		if !a.resuming() {
			a.fromValue = a.value.Clone()
			a.fromVelocity = a.velocity.Clone()
		}
		return true
	})
}

// Pause stops ticking without completing; Start resumes with the same value
// and velocity.
func (a *DecayAnimation[T]) Pause() {
	if a.state != StateRunning && !a.IsPending() {
		return
	}
	a.deactivate(a, StateInactive)
}

// Stop ends the animation. With immediately set, the value snaps to the
// position (StopAtEnd is the resting value), velocity becomes zero and
// observers receive Finished. Otherwise a running animation keeps
// decelerating but toward the position, without completing. Stopping an
// ended animation does nothing.
func (a *DecayAnimation[T]) Stop(at StopPosition, immediately bool) {
	if a.state == StateEnded && !a.IsPending() {
		return
	}
	anchor := a.anchor(at)
	if !immediately && a.state == StateRunning {
		a.velocity = a.fn.Velocity(a.value, anchor)
		return
	}
	a.value = anchor
	a.velocity = Zeros(len(a.value))
	a.deactivate(a, StateEnded)
	a.out.finished(a.value)
}

func (a *DecayAnimation[T]) anchor(at StopPosition) Vector {
	switch at {
	case StopAtStart:
		return a.fromValue.Clone()
	case StopAtEnd:
		return a.fn.Destination(a.value, a.velocity)
	default:
		return a.value.Clone()
	}
}

// Update advances the decay by dt seconds.
func (a *DecayAnimation[T]) Update(dt float64) {
	a.state = StateRunning
	a.value, a.velocity = a.fn.Update(a.value, a.velocity, dt)
	finished := a.velocity.MagnitudeSquared() < DecayRestThreshold
	if finished && a.Repeats {
		a.value = a.fromValue.Clone()
		a.velocity = a.fromVelocity.Clone()
	}
	a.out.valueChanged(a.value)
	if finished && !a.Repeats {
		a.Stop(StopAtCurrent, true)
	}
}

func (a *DecayAnimation[T]) velocityVector() Vector { return a.velocity }
func (a *DecayAnimation[T]) valueVector() Vector    { return a.value }
