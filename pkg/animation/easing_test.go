package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingAnimation_Linear(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)

	for i := 0; i < 4; i++ {
		src.Step(250 * time.Millisecond)
	}

	assert.Equal(t, []float64{25, 50, 75, 100}, rec.values)
	assert.Equal(t, []Event[float64]{Finished(100.0)}, rec.events)
	assert.Equal(t, StateEnded, a.State())
	assert.Equal(t, 1.0, a.FractionComplete())
	assert.False(t, src.Active())
}

func TestEasingAnimation_Reversed(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	a.IsReversed = true
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)

	assert.Equal(t, 100.0, a.Value(), "a reversed animation starts at its target")
	pumpUntil(src, 250*time.Millisecond, 10, func() bool { return a.State() != StateRunning })

	assert.Equal(t, []float64{75, 50, 25, 0}, rec.values)
	assert.Equal(t, []Event[float64]{Finished(0.0)}, rec.events)
}

func TestEasingAnimation_AutoreverseRepeats(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	a.Repeats = true
	a.Autoreverse = true
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)

	for i := 0; i < 5; i++ {
		src.Step(500 * time.Millisecond)
	}

	assert.Equal(t, []float64{50, 100, 50, 0, 50}, rec.values)
	assert.Empty(t, rec.events)
	assert.Equal(t, StateRunning, a.State())
}

func TestEasingAnimation_RepeatRestarts(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	a.Repeats = true
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)

	for i := 0; i < 3; i++ {
		src.Step(500 * time.Millisecond)
	}

	assert.Equal(t, []float64{50, 0, 50}, rec.values)
}

func TestEasingAnimation_ZeroDurationFinishesOnFirstTick(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, EaseInOut, 0, 0.0, 8.0)
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)
	require.Equal(t, StateRunning, a.State())

	src.Step(frame60)

	assert.Equal(t, []float64{8}, rec.values)
	assert.Equal(t, []Event[float64]{Finished(8.0)}, rec.events)
}

func TestEasingAnimation_EqualEndpointsFinishOnStart(t *testing.T) {
	ctrl, _ := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, EaseOut, time.Second, 3.0, 3.0)
	var rec recorder[float64]
	a.SetObserver(&rec)

	a.Start(0)

	assert.Equal(t, StateEnded, a.State())
	assert.Equal(t, []Event[float64]{Finished(3.0)}, rec.events)
}

func TestEasingAnimation_RetargetRestartsFromCurrent(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)
	src.Step(500 * time.Millisecond)

	a.SetTarget(0)

	assert.Equal(t, []Event[float64]{Retargeted(100.0, 0.0)}, rec.events)
	assert.Equal(t, 50.0, a.FromValue())
	assert.Zero(t, a.FractionComplete())

	src.Step(500 * time.Millisecond)
	assert.Equal(t, 25.0, a.Value())
}

func TestEasingAnimation_StopPositions(t *testing.T) {
	tests := []struct {
		name string
		at   StopPosition
		want float64
	}{
		{"current", StopAtCurrent, 25},
		{"start", StopAtStart, 0},
		{"end", StopAtEnd, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, src := newTestController()
			a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
			var rec recorder[float64]
			a.SetObserver(&rec)
			a.Start(0)
			src.Step(250 * time.Millisecond)

			a.Stop(tt.at, true)

			assert.Equal(t, tt.want, a.Value())
			assert.Equal(t, []Event[float64]{Finished(tt.want)}, rec.events)
			assert.False(t, ctrl.IsRunning(a))
		})
	}
}

func TestEasingAnimation_StopEasesWhenNotImmediate(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)
	src.Step(500 * time.Millisecond)

	a.Stop(StopAtStart, false)
	assert.Equal(t, StateRunning, a.State())

	src.Step(500 * time.Millisecond)
	src.Step(500 * time.Millisecond)

	assert.Equal(t, []float64{50, 25, 0}, rec.values)
	assert.Equal(t, []Event[float64]{Finished(0.0)}, rec.events)
}

func TestEasingAnimation_PauseResumesInPlace(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 100.0)
	a.Start(0)
	src.Step(250 * time.Millisecond)

	a.Pause()
	src.Step(time.Second)
	assert.Equal(t, 25.0, a.Value())

	a.Start(0)
	src.Step(250 * time.Millisecond)
	assert.Equal(t, 50.0, a.Value())
}

func TestEasingAnimation_ScrubWithFractionComplete(t *testing.T) {
	ctrl, _ := newTestController()
	a := NewEasingAnimation(ctrl, PointData, LinearCurve, time.Second, Point{}, Point{X: 10, Y: 20})

	a.SetFractionComplete(0.5)
	assert.Equal(t, Point{X: 5, Y: 10}, a.Value())

	a.SetFractionComplete(3)
	assert.Equal(t, 1.0, a.FractionComplete())
	assert.Equal(t, Point{X: 10, Y: 20}, a.Value())
}

func TestEasingAnimation_DrivesTweens(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, time.Second, 0.0, 1.0)
	size := TweenOf(SizeData, Size{Width: 10, Height: 10}, Size{Width: 30, Height: 50})
	a.Start(0)

	src.Step(500 * time.Millisecond)

	assert.Equal(t, 0.5, a.Progress())
	assert.Equal(t, Size{Width: 20, Height: 30}, size.Transform(a))
}

func TestEasingAnimation_StopAfterEndFinishesOnce(t *testing.T) {
	ctrl, src := newTestController()
	a := NewEasingAnimation(ctrl, Float64Data, LinearCurve, 100*time.Millisecond, 0.0, 10.0)
	var rec recorder[float64]
	a.SetObserver(&rec)
	a.Start(0)
	pumpUntil(src, frame60, 100, func() bool { return a.State() != StateRunning })
	require.Equal(t, StateEnded, a.State())

	a.Stop(StopAtStart, true)
	a.Stop(StopAtEnd, false)

	assert.Equal(t, 10.0, a.Value())
	assert.Equal(t, []Event[float64]{Finished(10.0)}, rec.events)

	a.Start(0)
	a.Stop(StopAtCurrent, true)
	assert.Len(t, rec.finished(), 2, "a restarted animation finishes again")
}
