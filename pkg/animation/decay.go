package animation

import (
	"fmt"
	"math"
	"time"
)

const (
	// DecelerationRateNormal matches the default deceleration of a scroll view.
	DecelerationRateNormal = 0.998
	// DecelerationRateFast stops noticeably sooner.
	DecelerationRateFast = 0.99

	// DecayRestThreshold is the squared velocity magnitude below which a
	// decaying value is at rest. DecayAnimation's finish check and
	// DecayDuration's estimate both use it, so estimated and observed
	// durations agree.
	DecayRestThreshold = 0.05

	// decayEstimateStep is the fixed step used by DecayDuration.
	decayEstimateStep = 1.0 / 60

	// maxDecayEstimate bounds DecayDuration for rates close to 1.
	maxDecayEstimate = 10 * time.Minute
)

// DecayFunction integrates exponential velocity decay.
//
// The deceleration rate r is the fraction of velocity kept per millisecond.
// Over dt seconds:
//
//	k  = ln(r) * 1000
//	v' = v + u * (r^(dt*1000) - 1) / k
//	u' = u * r^(dt*1000)
//
// which is the closed-form solution, so results do not depend on frame rate.
type DecayFunction struct {
	rate float64
	k    float64
}

// NewDecayFunction returns a decay function for the given rate.
// It panics unless 0 < rate < 1.
func NewDecayFunction(rate float64) DecayFunction {
	var f DecayFunction
	f.SetDecelerationRate(rate)
	return f
}

// DecelerationRate returns the per-millisecond velocity retention.
func (f DecayFunction) DecelerationRate() float64 {
	return f.rate
}

// SetDecelerationRate replaces the rate and its cached decay constant.
// It panics unless 0 < rate < 1.
func (f *DecayFunction) SetDecelerationRate(rate float64) {
	mustValidRate(rate)
	*f = DecayFunction{rate: rate, k: decayConstant(rate)}
}

// Update advances value and velocity by dt seconds.
func (f DecayFunction) Update(value, velocity Vector, dt float64) (Vector, Vector) {
	f.ensure()
	p := math.Pow(f.rate, dt*1000)
	travel := (p - 1) / f.k
	return value.Add(velocity.Scale(travel)), velocity.Scale(p)
}

// Destination returns the value a decay from value with velocity comes to
// rest at. The motion only approaches it asymptotically.
func (f DecayFunction) Destination(value, velocity Vector) Vector {
	f.ensure()
	return value.Sub(velocity.Scale(1 / f.k))
}

// Velocity returns the initial velocity that makes a decay starting at from
// come to rest at to.
func (f DecayFunction) Velocity(from, to Vector) Vector {
	f.ensure()
	return from.Sub(to).Scale(f.k)
}

// Duration estimates how long a decay from value with velocity runs before
// its squared velocity falls below DecayRestThreshold, stepping at 1/60 s.
func (f DecayFunction) Duration(value, velocity Vector) time.Duration {
	f.ensure()
	var elapsed float64
	limit := maxDecayEstimate.Seconds()
	for velocity.MagnitudeSquared() >= DecayRestThreshold && elapsed < limit {
		value, velocity = f.Update(value, velocity, decayEstimateStep)
		elapsed += decayEstimateStep
	}
	return time.Duration(elapsed * float64(time.Second))
}

// ensure gives the zero value the normal rate.
func (f *DecayFunction) ensure() {
	if f.rate == 0 {
		*f = DecayFunction{rate: DecelerationRateNormal, k: decayConstant(DecelerationRateNormal)}
	}
}

// DecayDestination is shorthand for NewDecayFunction(rate).Destination.
func DecayDestination(value, velocity Vector, rate float64) Vector {
	return NewDecayFunction(rate).Destination(value, velocity)
}

// DecayVelocity is shorthand for NewDecayFunction(rate).Velocity.
func DecayVelocity(from, to Vector, rate float64) Vector {
	return NewDecayFunction(rate).Velocity(from, to)
}

// DecayDuration is shorthand for NewDecayFunction(rate).Duration.
func DecayDuration(value, velocity Vector, rate float64) time.Duration {
	return NewDecayFunction(rate).Duration(value, velocity)
}

func decayConstant(rate float64) float64 {
	return math.Log(rate) * 1000
}

func mustValidRate(rate float64) {
	if math.IsNaN(rate) || rate <= 0 || rate >= 1 {
		panic(fmt.Sprintf("animation: deceleration rate %v outside (0, 1)", rate))
	}
}
