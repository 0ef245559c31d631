// Package clock drives a simulation on a fixed wall-clock period.
package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"lattice-life/internal/core"
	"lattice-life/internal/lattice"
	"lattice-life/internal/monitoring"
	"lattice-life/internal/timeutil"

	"github.com/google/uuid"
)

// ErrAlreadyRunning is returned when Run is called on a runner that has
// already left the Idle state.
var ErrAlreadyRunning = errors.New("clock: runner already started")

// State is the runner lifecycle state.
type State int32

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Ticker is the simulation surface the runner drives.
type Ticker interface {
	Tick() lattice.TickResult
}

// Option customises a Runner.
type Option func(*Runner)

// WithClock replaces the wall clock, typically with a timeutil.MockClock.
func WithClock(c timeutil.Clock) Option {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithInterval sets the tick period. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithMaxTicks makes Run return after n ticks. Zero means unbounded.
func WithMaxTicks(n uint64) Option {
	return func(r *Runner) { r.maxTicks = n }
}

// OnTick registers a callback invoked on the runner goroutine after each tick.
func OnTick(fn func(lattice.TickResult)) Option {
	return func(r *Runner) { r.onTick = fn }
}

// Runner fires one simulation tick per interval. Ticks run on the goroutine
// that called Run, one at a time, so a tick never starts before the previous
// one has committed.
type Runner struct {
	id       string
	clock    timeutil.Clock
	maxTicks uint64
	onTick   func(lattice.TickResult)

	target  Ticker
	state   atomic.Int32
	ticks   atomic.Uint64
	stepReq chan struct{}

	mu       sync.Mutex
	interval time.Duration
	ticker   timeutil.Ticker
}

// New returns an Idle runner for target.
func New(target Ticker, opts ...Option) *Runner {
	r := &Runner{
		id:       uuid.NewString(),
		clock:    timeutil.RealClock{},
		interval: core.DefaultTickInterval,
		target:   target,
		stepReq:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID returns the run identifier used in log lines.
func (r *Runner) ID() string { return r.id }

// State returns the current lifecycle state.
func (r *Runner) State() State { return State(r.state.Load()) }

// Ticks returns the number of ticks fired so far.
func (r *Runner) Ticks() uint64 { return r.ticks.Load() }

// Interval returns the tick period.
func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// SetInterval changes the tick period, taking effect from the next tick.
func (r *Runner) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = d
	if r.ticker != nil {
		r.ticker.Reset(d)
	}
}

// Pause stops periodic ticks until Resume. It reports whether the runner
// was running.
func (r *Runner) Pause() bool {
	if !r.state.CompareAndSwap(int32(Running), int32(Paused)) {
		return false
	}
	monitoring.Logf("clock %s: paused after %d ticks", r.id, r.Ticks())
	return true
}

// Resume restarts periodic ticks. It reports whether the runner was paused.
func (r *Runner) Resume() bool {
	if !r.state.CompareAndSwap(int32(Paused), int32(Running)) {
		return false
	}
	monitoring.Logf("clock %s: resumed", r.id)
	return true
}

// StepOnce requests a single tick on the runner goroutine, whether or not
// the runner is paused. Requests made while one is pending are merged.
func (r *Runner) StepOnce() {
	select {
	case r.stepReq <- struct{}{}:
	default:
	}
}

// Run moves the runner from Idle to Running and fires ticks until ctx is
// cancelled or the tick limit is reached. It returns ctx.Err() on
// cancellation and nil when the limit is reached.
func (r *Runner) Run(ctx context.Context) error {
	if !r.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrAlreadyRunning
	}

	r.mu.Lock()
	r.ticker = r.clock.NewTicker(r.interval)
	ticker := r.ticker
	interval := r.interval
	r.mu.Unlock()
	defer ticker.Stop()
	defer r.state.Store(int32(Stopped))

	monitoring.Logf("clock %s: running every %v", r.id, interval)
	start := r.clock.Now()

	for {
		select {
		case <-ctx.Done():
			monitoring.Logf("clock %s: stopped after %d ticks in %v", r.id, r.Ticks(), r.clock.Since(start))
			return ctx.Err()
		case <-ticker.C():
			if r.State() == Paused {
				continue
			}
		case <-r.stepReq:
		}

		if r.fire() {
			monitoring.Logf("clock %s: reached %d ticks", r.id, r.maxTicks)
			return nil
		}
	}
}

// fire runs one tick and reports whether the tick limit has been reached.
func (r *Runner) fire() bool {
	res := r.target.Tick()
	n := r.ticks.Add(1)
	if r.onTick != nil {
		r.onTick(res)
	}
	return r.maxTicks > 0 && n >= r.maxTicks
}
