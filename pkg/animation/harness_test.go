package animation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/wave/pkg/animation"
	wavetest "github.com/go-drift/wave/pkg/testing"
)

func TestKeyFrameAnimation_MoveThenEaseSnapshot(t *testing.T) {
	tester := wavetest.NewTesterWithT(t)
	tester.SetFrameDuration(125 * time.Millisecond)
	ctrl := tester.Controller()

	path := animation.NewKeyFrameAnimation(ctrl, animation.Float64Data, 0.0,
		animation.MoveTo(10.0, 0),
		animation.EaseTo(20.0, animation.LinearCurve, 500*time.Millisecond, 0),
	)
	path.SetObserver(wavetest.Observe(tester.Trace("path"), animation.Float64Data))

	fade := animation.NewEasingAnimation(ctrl, animation.PointData, animation.LinearCurve,
		250*time.Millisecond, animation.Point{}, animation.Point{X: 1, Y: 2})
	fade.SetObserver(wavetest.Observe(tester.Trace("fade"), animation.PointData))

	path.Start(0)
	fade.Start(0)

	elapsed, err := tester.PumpAndSettle(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 625*time.Millisecond, elapsed, "one frame for the move plus four of easing")
	assert.Equal(t, animation.StateEnded, path.State())
	assert.Equal(t, 2, path.CurrentKeyFrameIndex())

	tester.Snapshot().MatchesFile(t, "testdata/move_then_ease.json")
}
