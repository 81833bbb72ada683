// Package debounce collapses bursts of calls into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the gate needs
type Timer interface {
	Stop() bool
}

// TimerFunc schedules f to run once after d
type TimerFunc func(d time.Duration, f func()) Timer

// AfterFunc is the default TimerFunc backed by time.AfterFunc
func AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type options struct {
	newTimer TimerFunc
}

// Option configures a Gate
type Option func(*options)

// WithTimerFunc replaces the timer implementation (used by tests)
func WithTimerFunc(fn TimerFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.newTimer = fn
		}
	}
}

// Gate runs action with the argument of the most recent Trigger once delay
// has elapsed without another Trigger. Intermediate arguments are dropped.
//
// A Gate is safe for concurrent use. action runs on the timer goroutine.
type Gate[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	action   func(T)
	newTimer TimerFunc

	timer   Timer
	gen     uint64 // incremented on every Trigger/Cancel; a firing timer must match it
	stopped bool
}

// New creates a gate around action with the given quiet window
func New[T any](delay time.Duration, action func(T), opts ...Option) *Gate[T] {
	o := options{newTimer: AfterFunc}
	for _, opt := range opts {
		opt(&o)
	}
	return &Gate[T]{
		delay:    delay,
		action:   action,
		newTimer: o.newTimer,
	}
}

// Trigger (re)starts the quiet window with v as the pending argument
func (g *Gate[T]) Trigger(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	if g.timer != nil {
		g.timer.Stop()
	}
	g.gen++
	gen := g.gen
	g.timer = g.newTimer(g.delay, func() { g.fire(gen, v) })
}

// fire runs the action unless the call was superseded or cancelled after the
// timer had already started firing
func (g *Gate[T]) fire(gen uint64, v T) {
	g.mu.Lock()
	if g.stopped || gen != g.gen {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	g.mu.Unlock()

	g.action(v)
}

// Cancel drops the pending call, if any
func (g *Gate[T]) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelLocked()
}

func (g *Gate[T]) cancelLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
}

// Stop cancels the pending call and makes the gate inert. Call on teardown.
func (g *Gate[T]) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelLocked()
	g.stopped = true
}

// Pending reports whether a call is scheduled
func (g *Gate[T]) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}
