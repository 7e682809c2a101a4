package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/wave/pkg/animation"
)

// DefaultFrameDuration is the frame length used by PumpAndSettle.
const DefaultFrameDuration = time.Second / 60

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// Tester drives a Controller with a fake clock and a manual tick source, so
// animations advance only when the test pumps frames.
type Tester struct {
	clock     *FakeClock
	prevClock animation.Clock
	source    *animation.ManualSource
	ctrl      *animation.Controller
	frame     time.Duration
	traces    []*Trace
}

// NewTester creates a tester and installs its fake clock as the animation
// clock. Call Cleanup when done, or use NewTesterWithT instead.
func NewTester(opts ...animation.ControllerOption) *Tester {
	clk := NewFakeClock()
	t := &Tester{
		clock: clk,
		frame: DefaultFrameDuration,
	}
	t.prevClock = animation.SetClock(clk)
	t.source = animation.NewManualSource()
	t.ctrl = animation.NewController(t.source, opts...)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB, opts ...animation.ControllerOption) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock.
func (t *Tester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Controller returns the controller animations under test should use.
func (t *Tester) Controller() *animation.Controller {
	return t.ctrl
}

// Source returns the manual tick source behind the controller.
func (t *Tester) Source() *animation.ManualSource {
	return t.source
}

// SetFrameDuration changes the frame length used by PumpFrames and
// PumpAndSettle.
func (t *Tester) SetFrameDuration(d time.Duration) {
	if d > 0 {
		t.frame = d
	}
}

// Pump advances time by d and delivers one frame. It reports whether the
// controller was subscribed to receive it.
func (t *Tester) Pump(d time.Duration) bool {
	t.clock.Advance(d)
	return t.source.Step(d)
}

// PumpFrames delivers n frames of the configured frame length.
func (t *Tester) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		t.Pump(t.frame)
	}
}

// PumpAndSettle runs frames until the controller is idle or the timeout is
// reached, and returns the simulated time spent. Deferred tasks count as
// work, so pending delays keep it pumping.
func (t *Tester) PumpAndSettle(timeout time.Duration) (time.Duration, error) {
	var elapsed time.Duration
	for !t.ctrl.Idle() {
		if elapsed >= timeout {
			return elapsed, ErrSettleTimeout
		}
		t.Pump(t.frame)
		elapsed += t.frame
	}
	return elapsed, nil
}

// Trace creates a named trace included in Snapshot.
func (t *Tester) Trace(name string) *Trace {
	tr := &Trace{Name: name}
	t.traces = append(t.traces, tr)
	return tr
}

// Snapshot captures every trace created with Trace.
func (t *Tester) Snapshot() *Snapshot {
	return &Snapshot{Traces: t.traces}
}
