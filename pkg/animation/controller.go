// Package animation provides a property animation engine: numeric models
// (springs, exponential decay, timing curves) wrapped in state machines and
// advanced by a shared scheduler.
//
// # Core Components
//
//   - [Controller]: owns one tick subscription and advances every running
//     animation exactly once per tick with the same delta time.
//
//   - [SpringAnimation], [EasingAnimation], [DecayAnimation]: animate any
//     value that a [Converter] can map to a [Vector].
//
//   - [KeyFrameAnimation]: runs an ordered list of spring, easing, decay and
//     move steps back to back, carrying value and velocity across steps.
//
//   - [DisplayLink] and [ManualSource]: tick sources. The display link
//     fires at a fixed refresh rate; the manual source fires on demand for
//     tests and offline simulation.
//
// # Basic Usage
//
//	link := animation.NewDisplayLink(60)
//	ctrl := animation.NewController(link)
//
//	anim := animation.NewSpringAnimation(ctrl, animation.PointData, animation.BouncySpring(),
//	    animation.Point{X: 0, Y: 0}, animation.Point{X: 120, Y: 40})
//	anim.SetObserver(animation.ObserverFuncs[animation.Point]{
//	    OnValue: func(p animation.Point) { view.Move(p) },
//	})
//	anim.Start(0)
//
// Observers run on the tick source's goroutine. Code on other goroutines
// should hand work to the tick context with [Controller.Post].
package animation

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-drift/wave/pkg/errors"
)

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for registration events.
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithMaxDeltaTime caps the delta time of a single tick so that a stalled
// frame does not make every animation jump. Zero disables the cap.
func WithMaxDeltaTime(d time.Duration) ControllerOption {
	return func(c *Controller) { c.maxDelta = d.Seconds() }
}

type entry struct {
	anim     Animation
	priority int
	seq      uint64
	removed  bool
}

// Controller schedules animations on a TickSource.
//
// The controller subscribes to its source only while it has running
// animations or pending deferred tasks. Within one tick it fires due tasks,
// then calls Update on every running animation, highest priority first and
// in registration order among equal priorities, passing all of them the
// same delta time. Each animation's update, including its observer calls,
// completes before the next one begins.
type Controller struct {
	source   TickSource
	logger   zerolog.Logger
	maxDelta float64

	mu         sync.Mutex
	entries    []*entry
	byID       map[uuid.UUID]*entry
	nextSeq    uint64
	tasks      []*DeferredTask
	firing     []*DeferredTask
	now        float64
	last       time.Time
	subscribed bool
	ticking    bool
}

// NewController creates a controller driven by source.
func NewController(source TickSource, opts ...ControllerOption) *Controller {
	c := &Controller{
		source: source,
		logger: zerolog.Nop(),
		byID:   make(map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run registers a to receive ticks. Registering an animation twice has no
// effect.
func (c *Controller) Run(a Animation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[a.ID()]; ok {
		return
	}
	e := &entry{anim: a, priority: a.Priority(), seq: c.nextSeq}
	c.nextSeq++
	c.byID[a.ID()] = e
	i, _ := slices.BinarySearchFunc(c.entries, e, compareEntries)
	c.entries = slices.Insert(c.entries, i, e)
	c.logger.Debug().
		Str("animation", a.ID().String()).
		Int("priority", e.priority).
		Int("running", len(c.entries)).
		Msg("animation registered")
	c.updateSubscriptionLocked()
}

// Stop deregisters a. It does not change the animation's state; use the
// animation's own Stop or Pause for that.
func (c *Controller) Stop(a Animation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byID[a.ID()]
	if !ok {
		return
	}
	e.removed = true
	delete(c.byID, a.ID())
	c.entries = slices.DeleteFunc(c.entries, func(x *entry) bool { return x == e })
	c.logger.Debug().
		Str("animation", a.ID().String()).
		Int("running", len(c.entries)).
		Msg("animation deregistered")
	c.updateSubscriptionLocked()
}

// IsRunning reports whether a is registered.
func (c *Controller) IsRunning(a Animation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.byID[a.ID()]
	return ok
}

// Len returns the number of registered animations.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Idle reports whether there is nothing left to tick: no registered
// animations and no pending deferred tasks.
func (c *Controller) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) == 0 && len(c.tasks) == 0
}

// StopGroup stops every animation in group that is running or waiting on
// a delayed start.
func (c *Controller) StopGroup(group uuid.UUID, at StopPosition, immediately bool) {
	for _, a := range c.group(group) {
		a.Stop(at, immediately)
	}
}

// PauseGroup pauses every animation in group that is running or waiting
// on a delayed start.
func (c *Controller) PauseGroup(group uuid.UUID) {
	for _, a := range c.group(group) {
		a.Pause()
	}
}

func (c *Controller) group(group uuid.UUID) []Animation {
	if group == uuid.Nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Animation
	seen := make(map[uuid.UUID]bool)
	add := func(a Animation) {
		if a.GroupID() == group && !seen[a.ID()] {
			seen[a.ID()] = true
			out = append(out, a)
		}
	}
	for _, e := range c.entries {
		add(e.anim)
	}
	for _, tasks := range [][]*DeferredTask{c.firing, c.tasks} {
		for _, t := range tasks {
			if t.owner != nil && t.waiting() {
				add(t.owner)
			}
		}
	}
	return out
}

// After schedules fn to run on the tick context once d of controller time
// has passed. Controller time advances only while ticking.
func (c *Controller) After(d time.Duration, fn func()) *DeferredTask {
	return c.schedule(d, nil, fn)
}

// startAfter schedules the delayed start of a. Until it fires, group
// operations reach a as if it were running.
func (c *Controller) startAfter(a Animation, d time.Duration, fn func()) *DeferredTask {
	return c.schedule(d, a, fn)
}

func (c *Controller) schedule(d time.Duration, owner Animation, fn func()) *DeferredTask {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &DeferredTask{controller: c, due: c.now + d.Seconds(), fn: fn, owner: owner}
	c.tasks = append(c.tasks, t)
	c.updateSubscriptionLocked()
	return t
}

// Post schedules fn to run at the start of the next tick.
func (c *Controller) Post(fn func()) *DeferredTask {
	return c.After(0, fn)
}

// Tick advances the controller by one frame. Tick sources call it; tests
// may call it directly.
func (c *Controller) Tick(frame Frame) {
	c.mu.Lock()
	if c.ticking {
		c.mu.Unlock()
		return
	}
	c.ticking = true
	dt := c.deltaTimeLocked(frame)
	c.now += dt
	due := c.takeDueTasksLocked()
	c.firing = due
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.firing = nil
		c.ticking = false
		c.updateSubscriptionLocked()
		c.mu.Unlock()
	}()

	for _, t := range due {
		c.runTask(t)
	}

	c.mu.Lock()
	running := slices.Clone(c.entries)
	c.mu.Unlock()

	for _, e := range running {
		c.mu.Lock()
		removed := e.removed
		c.mu.Unlock()
		if removed {
			continue
		}
		c.step(e.anim, dt)
		if e.anim.State() != StateRunning {
			c.Stop(e.anim)
		}
	}
}

func (c *Controller) step(a Animation, dt float64) {
	defer errors.RecoverWithCallback("animation.Controller.Tick", func(any) {
		c.Stop(a)
		// Running implies registered.
		a.Pause()
	})
	a.Update(dt)
}

// runTask runs t unless a task that ran earlier in the tick cancelled it.
func (c *Controller) runTask(t *DeferredTask) {
	c.mu.Lock()
	if t.cancelled {
		c.mu.Unlock()
		return
	}
	t.fired = true
	c.mu.Unlock()

	defer errors.Recover("animation.Controller.After")
	t.fn()
}

func (c *Controller) deltaTimeLocked(frame Frame) float64 {
	var dt float64
	if c.last.IsZero() || frame.Timestamp.IsZero() {
		dt = frame.Duration.Seconds()
	} else {
		dt = frame.Timestamp.Sub(c.last).Seconds()
	}
	if !frame.Timestamp.IsZero() {
		c.last = frame.Timestamp
	}
	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}

func (c *Controller) takeDueTasksLocked() []*DeferredTask {
	var due []*DeferredTask
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.due <= c.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	clear(c.tasks[len(kept):])
	c.tasks = kept
	return due
}

func (c *Controller) cancelTask(t *DeferredTask) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.cancelled || t.fired {
		return
	}
	t.cancelled = true
	c.tasks = slices.DeleteFunc(c.tasks, func(x *DeferredTask) bool { return x == t })
	c.updateSubscriptionLocked()
}

// updateSubscriptionLocked keeps the source running exactly while there is
// work. While a tick is in progress the decision waits for the tick to end.
func (c *Controller) updateSubscriptionLocked() {
	if c.ticking || c.source == nil {
		return
	}
	busy := len(c.entries) > 0 || len(c.tasks) > 0
	switch {
	case busy && !c.subscribed:
		c.subscribed = true
		c.last = time.Time{}
		c.source.Start(c.Tick)
		c.logger.Debug().Msg("tick source started")
	case !busy && c.subscribed:
		c.subscribed = false
		c.source.Stop()
		c.logger.Debug().Msg("tick source stopped")
	}
}

func compareEntries(a, b *entry) int {
	if a.priority != b.priority {
		return cmp.Compare(b.priority, a.priority)
	}
	return cmp.Compare(a.seq, b.seq)
}

// DeferredTask is a cancellable callback scheduled with Controller.After.
type DeferredTask struct {
	controller *Controller
	due        float64
	fn         func()
	owner      Animation
	cancelled  bool
	fired      bool
}

func (t *DeferredTask) waiting() bool {
	return !t.cancelled && !t.fired
}

// Cancel prevents the task from running. Cancelling a task that already
// ran or was already cancelled has no effect.
func (t *DeferredTask) Cancel() {
	if t == nil {
		return
	}
	t.controller.cancelTask(t)
}

// Pending reports whether the task is still waiting to run.
func (t *DeferredTask) Pending() bool {
	if t == nil {
		return false
	}
	t.controller.mu.Lock()
	defer t.controller.mu.Unlock()
	return t.waiting()
}
