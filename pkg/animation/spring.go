package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringRestThreshold is the squared distance to target, and the squared
// velocity, below which a spring is considered settled.
const SpringRestThreshold = 1e-4

// maxSpringSettle bounds SettlingDuration for springs that never settle.
const maxSpringSettle = time.Minute

// Spring describes a damped harmonic oscillator.
//
// Response is the period of the undamped oscillation in seconds: smaller
// values produce faster motion. DampingRatio controls overshoot: 1 is
// critically damped (no bounce), values below 1 bounce, values above 1
// approach the target more slowly without bouncing.
type Spring struct {
	DampingRatio float64
	Response     float64
}

// DefaultSpring is a smooth, non-bouncing spring.
func DefaultSpring() Spring {
	return Spring{DampingRatio: 1, Response: 0.55}
}

// BouncySpring overshoots visibly before settling.
func BouncySpring() Spring {
	return Spring{DampingRatio: 0.5, Response: 0.5}
}

// SnappySpring settles quickly with a hint of overshoot.
func SnappySpring() Spring {
	return Spring{DampingRatio: 0.85, Response: 0.3}
}

// SmoothSpring is slow and critically damped.
func SmoothSpring() Spring {
	return Spring{DampingRatio: 1, Response: 0.8}
}

// IOSSpring approximates the bounce-back of an overscrolled iOS scroll view.
func IOSSpring() Spring {
	return Spring{DampingRatio: 1, Response: 0.4}
}

// AngularFrequency returns the undamped angular frequency in radians per second.
func (s Spring) AngularFrequency() float64 {
	if s.Response <= 0 {
		return 0
	}
	return 2 * math.Pi / s.Response
}

// SettlingDuration estimates how long the spring takes to settle when
// released at rest one unit away from its target.
func (s Spring) SettlingDuration() time.Duration {
	sim := NewSpringSimulation(s, 0, 0, 1)
	var elapsed float64
	for !sim.Step(decayEstimateStep) && elapsed < maxSpringSettle.Seconds() {
		elapsed += decayEstimateStep
	}
	return time.Duration((elapsed + decayEstimateStep) * float64(time.Second))
}

// springStepper caches oscillator coefficients for the last time step.
// Frames almost always share one delta time, so coefficients are rarely
// recomputed.
type springStepper struct {
	spring Spring
	dt     float64
	coeffs harmonica.Spring
	valid  bool
}

func (st *springStepper) forStep(s Spring, dt float64) harmonica.Spring {
	if !st.valid || st.dt != dt || st.spring != s {
		st.coeffs = harmonica.NewSpring(dt, s.AngularFrequency(), s.DampingRatio)
		st.spring = s
		st.dt = dt
		st.valid = true
	}
	return st.coeffs
}

// step advances every component of value and velocity toward target.
func (st *springStepper) step(s Spring, value, velocity, target Vector, dt float64) (Vector, Vector) {
	coeffs := st.forStep(s, dt)
	nextValue := make(Vector, len(value))
	nextVelocity := make(Vector, len(value))
	for i := range value {
		nextValue[i], nextVelocity[i] = coeffs.Update(value[i], velocity.at(i), target.at(i))
	}
	return nextValue, nextVelocity
}

func springSettled(value, velocity, target Vector) bool {
	return value.Sub(target).MagnitudeSquared() < SpringRestThreshold &&
		velocity.MagnitudeSquared() < SpringRestThreshold
}

// SpringSimulation steps a one-dimensional spring. It is the lightweight
// alternative to SpringAnimation for code that owns its own frame loop,
// such as scroll physics.
type SpringSimulation struct {
	spring   Spring
	position float64
	velocity float64
	target   float64
	done     bool
	stepper  springStepper
}

// NewSpringSimulation creates a simulation at position moving with velocity
// toward target.
func NewSpringSimulation(spring Spring, position, velocity, target float64) *SpringSimulation {
	return &SpringSimulation{
		spring:   spring,
		position: position,
		velocity: velocity,
		target:   target,
	}
}

// Step advances the simulation by dt seconds and reports whether it has
// settled. A settled simulation snaps to its target.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	if dt <= 0 {
		return false
	}
	coeffs := s.stepper.forStep(s.spring, dt)
	s.position, s.velocity = coeffs.Update(s.position, s.velocity, s.target)
	disp := s.position - s.target
	if disp*disp < SpringRestThreshold && s.velocity*s.velocity < SpringRestThreshold {
		s.position = s.target
		s.velocity = 0
		s.done = true
	}
	return s.done
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// Target returns the equilibrium position.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the simulation has settled.
func (s *SpringSimulation) IsDone() bool { return s.done }
