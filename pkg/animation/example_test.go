package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/wave/pkg/animation"
)

// This example drives an easing animation with a manual tick source.
func ExampleEasingAnimation() {
	source := animation.NewManualSource()
	controller := animation.NewController(source)

	anim := animation.NewEasingAnimation(controller, animation.Float64Data,
		animation.LinearCurve, time.Second, 0.0, 100.0)
	anim.SetObserver(animation.ObserverFuncs[float64]{
		OnValue: func(v float64) { fmt.Printf("Value: %.0f\n", v) },
		OnComplete: func(e animation.Event[float64]) {
			if e.IsFinished() {
				fmt.Printf("Finished at %.0f\n", e.Value)
			}
		},
	})
	anim.Start(0)

	for source.Step(250 * time.Millisecond) {
	}

	// Output:
	// Value: 25
	// Value: 50
	// Value: 75
	// Value: 100
	// Finished at 100
}

// This example shows how to chain steps with a keyframe animation.
func ExampleKeyFrameAnimation() {
	source := animation.NewManualSource()
	controller := animation.NewController(source)

	anim := animation.NewKeyFrameAnimation(controller, animation.Float64Data, 0.0,
		animation.MoveTo(10.0, 0),
		animation.EaseTo(20.0, animation.EaseInOut, 500*time.Millisecond, 0),
		animation.SpringTo(0.0, animation.SnappySpring(), 0),
	)
	anim.SetObserver(animation.ObserverFuncs[float64]{
		OnComplete: func(e animation.Event[float64]) {
			fmt.Printf("Finished at %.0f after %d keyframes\n", e.Value, anim.CurrentKeyFrameIndex())
		},
	})
	anim.Start(0)

	for source.Step(time.Second / 60) {
	}

	// Output:
	// Finished at 0 after 3 keyframes
}

// This example shows where a fling comes to rest.
func ExampleDecayFunction() {
	decay := animation.NewDecayFunction(animation.DecelerationRateNormal)

	rest := decay.Destination(animation.Vector{0}, animation.Vector{1000})
	fmt.Printf("Rest position: %.1f\n", rest[0])

	// The velocity needed to land exactly on 200.
	velocity := decay.Velocity(animation.Vector{0}, animation.Vector{200})
	fmt.Printf("Velocity: %.1f\n", velocity[0])

	// Output:
	// Rest position: 499.5
	// Velocity: 400.4
}

// This example shows how to create a tween for basic interpolation.
func ExampleTween() {
	opacity := animation.TweenFloat64(0.0, 1.0)
	position := animation.TweenOf(animation.PointData,
		animation.Point{X: 0, Y: 0},
		animation.Point{X: 100, Y: 50},
	)

	fmt.Printf("Opacity at 0.5: %.1f\n", opacity.Evaluate(0.5))
	fmt.Printf("Position at 1.0: (%.0f, %.0f)\n", position.Evaluate(1.0).X, position.Evaluate(1.0).Y)

	// Output:
	// Opacity at 0.5: 0.5
	// Position at 1.0: (100, 50)
}

// This example shows how to animate a custom type with a Converter.
func ExampleConverter() {
	type Angle float64
	angleData := animation.Converter[Angle]{
		Encode: func(a Angle) animation.Vector { return animation.Vector{float64(a)} },
		Decode: func(v animation.Vector) Angle { return Angle(v[0]) },
	}

	turn := animation.TweenOf(angleData, 0, 360)
	fmt.Printf("Quarter turn: %.0f\n", turn.Evaluate(0.25))

	// Output:
	// Quarter turn: 90
}

// This example shows how to use spring physics for natural motion.
func ExampleSpringSimulation() {
	sim := animation.NewSpringSimulation(
		animation.BouncySpring(),
		0,   // current position
		500, // initial velocity, e.g. from a fling gesture
		300, // target position
	)

	dt := 0.016
	for !sim.Step(dt) {
	}

	fmt.Printf("Final position: %.0f\n", sim.Position())

	// Output:
	// Final position: 300
}

// This example shows how to create a custom easing curve.
func ExampleCubicBezier() {
	// Matches CSS cubic-bezier(0.4, 0.0, 0.2, 1.0).
	customEase := animation.CubicBezier(0.4, 0.0, 0.2, 1.0)

	fmt.Printf("Progress 0.0 -> %.2f\n", customEase(0.0))
	fmt.Printf("Progress 0.5 -> %.2f\n", customEase(0.5))
	fmt.Printf("Progress 1.0 -> %.2f\n", customEase(1.0))

	// Output:
	// Progress 0.0 -> 0.00
	// Progress 0.5 -> 0.78
	// Progress 1.0 -> 1.00
}

// This example looks up a curve by the name used in scene files.
func ExampleCurveNamed() {
	curve, ok := animation.CurveNamed("easeInOutQuad")
	fmt.Println(ok, curve(0.5))

	_, ok = animation.CurveNamed("wobble")
	fmt.Println(ok)

	// Output:
	// true 0.5
	// false
}
