package animation

import (
	"sync"
	"time"
)

// Frame is one refresh of a tick source.
type Frame struct {
	// Timestamp is when the frame fired.
	Timestamp time.Time
	// Duration is the nominal interval between frames.
	Duration time.Duration
}

// TickSource delivers frames to a single callback while started.
//
// Implementations must not call the callback concurrently with itself, and
// Start and Stop may be called from inside the callback.
type TickSource interface {
	Start(callback func(Frame))
	Stop()
}

// DisplayLink is a TickSource that fires at a fixed refresh rate from a
// background goroutine, reading timestamps from the package Clock.
type DisplayLink struct {
	interval time.Duration

	mu         sync.Mutex
	generation uint64
	stop       chan struct{}

	// callMu serializes callbacks across a Stop/Start issued from inside
	// a callback, when the old goroutine may still be finishing.
	callMu sync.Mutex
}

// NewDisplayLink returns a display link firing fps times per second.
// Non-positive rates default to 60.
func NewDisplayLink(fps int) *DisplayLink {
	if fps <= 0 {
		fps = 60
	}
	return &DisplayLink{interval: time.Second / time.Duration(fps)}
}

// Interval returns the time between frames.
func (d *DisplayLink) Interval() time.Duration {
	return d.interval
}

// Start begins delivering frames to callback. Starting a running link
// replaces its callback.
func (d *DisplayLink) Start(callback func(Frame)) {
	d.mu.Lock()
	if d.stop != nil {
		close(d.stop)
	}
	d.generation++
	gen := d.generation
	stop := make(chan struct{})
	d.stop = stop
	d.mu.Unlock()

	go d.run(gen, stop, callback)
}

// Stop halts frame delivery. It does not wait for a callback in progress.
func (d *DisplayLink) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	d.generation++
}

// Running reports whether the link is delivering frames.
func (d *DisplayLink) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop != nil
}

func (d *DisplayLink) run(gen uint64, stop <-chan struct{}, callback func(Frame)) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !d.fire(gen, callback) {
				return
			}
		}
	}
}

func (d *DisplayLink) fire(gen uint64, callback func(Frame)) bool {
	d.callMu.Lock()
	defer d.callMu.Unlock()
	d.mu.Lock()
	current := d.generation == gen
	d.mu.Unlock()
	if !current {
		return false
	}
	callback(Frame{Timestamp: Now(), Duration: d.interval})
	return true
}

// ManualSource is a TickSource that fires only when stepped. It drives
// tests and offline simulations deterministically.
type ManualSource struct {
	mu       sync.Mutex
	callback func(Frame)
	now      time.Time
}

// NewManualSource returns a manual source whose timestamps start at the
// package clock's current time.
func NewManualSource() *ManualSource {
	return &ManualSource{now: Now()}
}

// Start records the callback.
func (m *ManualSource) Start(callback func(Frame)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callback = callback
}

// Stop forgets the callback.
func (m *ManualSource) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callback = nil
}

// Active reports whether a callback is subscribed.
func (m *ManualSource) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callback != nil
}

// Step advances the source's time by d and fires one frame if started.
// It reports whether a frame was delivered.
func (m *ManualSource) Step(d time.Duration) bool {
	m.mu.Lock()
	m.now = m.now.Add(d)
	cb := m.callback
	frame := Frame{Timestamp: m.now, Duration: d}
	m.mu.Unlock()
	if cb == nil {
		return false
	}
	cb(frame)
	return true
}

// Now returns the timestamp of the most recent frame.
func (m *ManualSource) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
