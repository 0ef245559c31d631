package core

import (
	"time"

	"lattice-life/internal/timeutil"
)

// DefaultTickInterval is the simulation period used when none is configured.
const DefaultTickInterval = 500 * time.Millisecond

// FixedStep paces simulation ticks at a fixed wall-clock interval from inside
// a faster frame loop.
type FixedStep struct {
	clock       timeutil.Clock
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller firing every interval. The
// first call to ShouldStep fires immediately.
func NewFixedStep(interval time.Duration, clock timeutil.Clock) *FixedStep {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	fs := &FixedStep{clock: clock}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the tick period. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	f.step = interval
}

// Interval returns the current tick period.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick. At
// most one tick is reported per call so a stalled frame never pipelines ticks.
func (f *FixedStep) ShouldStep() bool {
	now := f.clock.Now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
