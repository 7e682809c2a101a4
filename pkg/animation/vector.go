package animation

import "math"

// Vector is the animatable data of a value: a fixed-length list of
// components that the numeric models integrate independently.
//
// Operations never modify their receiver. Binary operations use the length
// of the receiver; missing components of the other operand read as zero.
type Vector []float64

// Zeros returns a vector of n zero components.
func Zeros(n int) Vector {
	return make(Vector, n)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

func (v Vector) at(i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + o.at(i)
	}
	return out
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - o.at(i)
	}
	return out
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

// Lerp returns the linear interpolation between v (t=0) and o (t=1).
// t is not clamped, so overshooting curves extrapolate.
func (v Vector) Lerp(o Vector, t float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + (o.at(i)-v[i])*t
	}
	return out
}

// MagnitudeSquared returns the sum of the squared components.
func (v Vector) MagnitudeSquared() float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	return sum
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Rounded returns v with every component rounded to the nearest integer.
// Used to keep integralized values on the pixel grid.
func (v Vector) Rounded() Vector {
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = math.Round(c)
	}
	return out
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether v and o have identical components.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}
