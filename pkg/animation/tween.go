package animation

// Tween interpolates between Begin and End based on progress.
//
// Tween lets one EasingAnimation drive several values of different types:
// animate a float from 0 to 1 and map its progress through tweens.
//
//	progress := animation.NewEasingAnimation(ctrl, animation.Float64Data, animation.EaseOut, 300*time.Millisecond, 0.0, 1.0)
//	size := animation.TweenOf(animation.SizeData, small, large)
//	tint := animation.TweenOf(animation.ColorData, red, blue)
//	progress.SetObserver(animation.ObserverFuncs[float64]{
//	    OnValue: func(float64) { render(size.Transform(progress), tint.Transform(progress)) },
//	})
type Tween[T any] struct {
	// Begin is the value at t = 0.
	Begin T
	// End is the value at t = 1.
	End T
	// Lerp interpolates between a and b. Receives the begin value, end
	// value, and progress t, which may leave [0, 1] for overshooting curves.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Progressor reports eased progress. EasingAnimation implements it.
type Progressor interface {
	Progress() float64
}

// Transform returns the interpolated value at p's current progress.
func (tw *Tween[T]) Transform(p Progressor) T {
	return tw.Evaluate(p.Progress())
}

// LerpWith returns a Lerp function that interpolates through data's vectors.
func LerpWith[T any](data Converter[T]) func(a, b T, t float64) T {
	return func(a, b T, t float64) T {
		return data.Decode(data.Encode(a).Lerp(data.Encode(b), t))
	}
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// TweenOf creates a tween that interpolates through data's vectors.
func TweenOf[T any](data Converter[T], begin, end T) *Tween[T] {
	return &Tween[T]{Begin: begin, End: end, Lerp: LerpWith(data)}
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}
