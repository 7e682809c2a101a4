package animation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of an animation.
//
//	          Start()                 finished / Stop(immediately)
//	Inactive ─────────► Running ──────────────────────────────► Ended
//	    ▲                  │                                      │
//	    └──── Pause() ─────┘◄──────────── Start() ────────────────┘
//
// Only a Running animation is registered with its Controller.
type State int

const (
	// StateInactive means the animation has not started or is paused.
	StateInactive State = iota
	// StateRunning means the animation receives ticks.
	StateRunning
	// StateEnded means the animation finished or was stopped. It may be
	// started again after a new target or velocity is set.
	StateEnded
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StopPosition selects where Stop leaves the value.
type StopPosition int

const (
	// StopAtCurrent keeps the value as of the call.
	StopAtCurrent StopPosition = iota
	// StopAtStart returns to the value recorded when the animation started.
	StopAtStart
	// StopAtEnd jumps (or animates) to the target.
	StopAtEnd
)

func (p StopPosition) String() string {
	switch p {
	case StopAtCurrent:
		return "current"
	case StopAtStart:
		return "start"
	case StopAtEnd:
		return "end"
	default:
		return fmt.Sprintf("StopPosition(%d)", int(p))
	}
}

// EventKind distinguishes the completion events of an animation.
type EventKind int

const (
	// EventFinished means the animation ended; Event.Value holds the final value.
	EventFinished EventKind = iota
	// EventRetargeted means the target changed while running;
	// Event.From and Event.To hold the old and new targets.
	EventRetargeted
)

// Event is delivered to Observer.Completed.
type Event[T any] struct {
	Kind  EventKind
	Value T
	From  T
	To    T
}

// Finished returns a finished event at value.
func Finished[T any](value T) Event[T] {
	return Event[T]{Kind: EventFinished, Value: value}
}

// Retargeted returns a retarget event.
func Retargeted[T any](from, to T) Event[T] {
	return Event[T]{Kind: EventRetargeted, From: from, To: to}
}

// IsFinished reports whether the event marks the end of the animation.
func (e Event[T]) IsFinished() bool {
	return e.Kind == EventFinished
}

// Observer receives the output of an animation. Both methods run on the
// controller's tick context, or synchronously inside Start and Stop.
type Observer[T any] interface {
	// ValueChanged is called once per tick with the live value.
	ValueChanged(value T)
	// Completed is called when the animation finishes or is retargeted.
	Completed(event Event[T])
}

// ObserverFuncs adapts two functions to an Observer. Either may be nil.
type ObserverFuncs[T any] struct {
	OnValue    func(T)
	OnComplete func(Event[T])
}

// ValueChanged calls OnValue.
func (o ObserverFuncs[T]) ValueChanged(value T) {
	if o.OnValue != nil {
		o.OnValue(value)
	}
}

// Completed calls OnComplete.
func (o ObserverFuncs[T]) Completed(event Event[T]) {
	if o.OnComplete != nil {
		o.OnComplete(event)
	}
}

// Animation is the interface a Controller drives. SpringAnimation,
// EasingAnimation, DecayAnimation and KeyFrameAnimation implement it.
type Animation interface {
	// ID identifies the animation.
	ID() uuid.UUID
	// GroupID identifies the group the animation belongs to, or uuid.Nil.
	GroupID() uuid.UUID
	// Priority orders animations within a tick; higher runs first.
	Priority() int
	// State returns the lifecycle state.
	State() State
	// Update advances the animation by dt seconds.
	Update(dt float64)
	// Pause stops ticking without completing.
	Pause()
	// Stop ends or redirects the animation.
	Stop(at StopPosition, immediately bool)
}

// lifecycle holds the bookkeeping shared by every animation kind.
type lifecycle struct {
	id         uuid.UUID
	groupID    uuid.UUID
	priority   int
	state      State
	paused     bool
	controller *Controller
	pending    *DeferredTask
}

func newLifecycle(c *Controller) lifecycle {
	return lifecycle{id: uuid.New(), controller: c}
}

// ID returns the animation's identity.
func (l *lifecycle) ID() uuid.UUID { return l.id }

// GroupID returns the group identity, or uuid.Nil when ungrouped.
func (l *lifecycle) GroupID() uuid.UUID { return l.groupID }

// SetGroupID places the animation in a group so that Controller.StopGroup
// and Controller.PauseGroup reach it.
func (l *lifecycle) SetGroupID(id uuid.UUID) { l.groupID = id }

// Priority returns the tick ordering priority.
func (l *lifecycle) Priority() int { return l.priority }

// SetPriority changes the tick ordering priority. It takes effect the next
// time the animation is started.
func (l *lifecycle) SetPriority(p int) { l.priority = p }

// State returns the lifecycle state.
func (l *lifecycle) State() State { return l.state }

// IsRunning reports whether the animation is receiving ticks.
func (l *lifecycle) IsRunning() bool { return l.state == StateRunning }

// IsPending reports whether a delayed start is scheduled.
func (l *lifecycle) IsPending() bool { return l.pending.Pending() }

// Controller returns the scheduler the animation runs on.
func (l *lifecycle) Controller() *Controller { return l.controller }

// scheduleStart registers self after delay. begin runs right before
// registration and returns false to abandon the start.
func (l *lifecycle) scheduleStart(self Animation, delay time.Duration, begin func() bool) {
	if delay < 0 {
		panic(fmt.Sprintf("animation: negative start delay %v", delay))
	}
	if l.state == StateRunning {
		return
	}
	l.cancelPending()
	if delay == 0 || l.controller == nil {
		l.activate(self, begin)
		return
	}
	l.pending = l.controller.startAfter(self, delay, func() {
		l.pending = nil
		l.activate(self, begin)
	})
}

func (l *lifecycle) activate(self Animation, begin func() bool) {
	if l.state == StateRunning {
		return
	}
	if begin != nil && !begin() {
		return
	}
	l.state = StateRunning
	l.paused = false
	if l.controller != nil {
		l.controller.Run(self)
	}
}

// deactivate deregisters self and cancels any pending start in one step.
func (l *lifecycle) deactivate(self Animation, next State) {
	l.cancelPending()
	l.state = next
	l.paused = next == StateInactive
	if l.controller != nil {
		l.controller.Stop(self)
	}
}

func (l *lifecycle) cancelPending() {
	if l.pending != nil {
		l.pending.Cancel()
		l.pending = nil
	}
}

// resuming reports whether a start continues a paused run rather than
// beginning a new one.
func (l *lifecycle) resuming() bool {
	return l.paused
}

// output encodes the values an animation reports to its observer.
type output[T any] struct {
	data        Converter[T]
	observer    Observer[T]
	integralize bool
}

func (o *output[T]) decode(v Vector) T {
	if o.integralize {
		v = v.Rounded()
	}
	return o.data.Decode(v)
}

func (o *output[T]) valueChanged(v Vector) {
	if o.observer != nil {
		o.observer.ValueChanged(o.decode(v))
	}
}

func (o *output[T]) finished(v Vector) {
	if o.observer != nil {
		o.observer.Completed(Finished(o.decode(v)))
	}
}

func (o *output[T]) retargeted(from, to Vector) {
	if o.observer != nil {
		o.observer.Completed(Retargeted(o.data.Decode(from), o.data.Decode(to)))
	}
}
