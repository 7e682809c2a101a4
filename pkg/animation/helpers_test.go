package animation

import (
	"time"

	"github.com/google/uuid"
)

const frame60 = time.Second / 60

func newTestController(opts ...ControllerOption) (*Controller, *ManualSource) {
	src := NewManualSource()
	return NewController(src, opts...), src
}

// pumpUntil steps src until done returns true or max frames elapse, and
// returns the number of frames delivered.
func pumpUntil(src *ManualSource, d time.Duration, max int, done func() bool) int {
	n := 0
	for n < max && !done() {
		src.Step(d)
		n++
	}
	return n
}

// recorder collects everything an observer receives.
type recorder[T any] struct {
	values []T
	events []Event[T]
}

func (r *recorder[T]) ValueChanged(v T)     { r.values = append(r.values, v) }
func (r *recorder[T]) Completed(e Event[T]) { r.events = append(r.events, e) }

func (r *recorder[T]) finished() []Event[T] {
	var out []Event[T]
	for _, e := range r.events {
		if e.IsFinished() {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder[T]) last() T {
	var zero T
	if len(r.values) == 0 {
		return zero
	}
	return r.values[len(r.values)-1]
}

// fakeAnimation records the delta times it is ticked with.
type fakeAnimation struct {
	id       uuid.UUID
	group    uuid.UUID
	priority int
	state    State
	ctrl     *Controller
	name     string
	log      *[]string
	dts      []float64
	onUpdate func()
}

func newFake(ctrl *Controller, name string, priority int, log *[]string) *fakeAnimation {
	return &fakeAnimation{id: uuid.New(), ctrl: ctrl, name: name, priority: priority, log: log}
}

func (f *fakeAnimation) ID() uuid.UUID      { return f.id }
func (f *fakeAnimation) GroupID() uuid.UUID { return f.group }
func (f *fakeAnimation) Priority() int      { return f.priority }
func (f *fakeAnimation) State() State       { return f.state }

func (f *fakeAnimation) start() {
	f.state = StateRunning
	f.ctrl.Run(f)
}

func (f *fakeAnimation) Update(dt float64) {
	f.dts = append(f.dts, dt)
	if f.log != nil {
		*f.log = append(*f.log, f.name)
	}
	if f.onUpdate != nil {
		f.onUpdate()
	}
}

func (f *fakeAnimation) Pause() {
	f.state = StateInactive
	f.ctrl.Stop(f)
}

func (f *fakeAnimation) Stop(StopPosition, bool) {
	f.state = StateEnded
	f.ctrl.Stop(f)
}
