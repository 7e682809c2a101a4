// Package testing provides deterministic test helpers for Wave animations.
//
// # Quick Start
//
// Create a tester, build animations on its controller, and pump frames:
//
//	func TestSlideIn(t *testing.T) {
//	    tester := wavetest.NewTesterWithT(t)
//	    anim := animation.NewEasingAnimation(tester.Controller(), animation.Float64Data,
//	        animation.EaseOut, 300*time.Millisecond, 0.0, 1.0)
//	    anim.Start(0)
//
//	    if _, err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if anim.Value() != 1 {
//	        t.Errorf("expected 1, got %v", anim.Value())
//	    }
//	}
//
// # Snapshot Testing
//
// Record what animations report and compare against golden files:
//
//	trace := tester.Trace("slide")
//	anim.SetObserver(wavetest.Observe(trace, animation.Float64Data))
//	tester.PumpAndSettle(time.Second)
//	tester.Snapshot().MatchesFile(t, "testdata/slide.snapshot.json")
//
// Update snapshots with:
//
//	WAVE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import wavetest "github.com/go-drift/wave/pkg/testing"
package testing
