// Package stats summarises population over a simulation run.
package stats

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the live fraction of the lattice over a run.
type Summary struct {
	Ticks   int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	Last    int
	Extinct bool
}

func (s Summary) String() string {
	if s.Ticks == 0 {
		return "no ticks recorded"
	}
	return fmt.Sprintf("%d ticks, live fraction mean %.3f sd %.3f range [%.3f, %.3f], final population %d",
		s.Ticks, s.Mean, s.StdDev, s.Min, s.Max, s.Last)
}

// Tracker records the population after each tick.
type Tracker struct {
	mu        sync.Mutex
	cells     int
	fractions []float64
	last      int
}

// NewTracker returns a tracker for a lattice with the given cell count.
func NewTracker(cells int) *Tracker {
	return &Tracker{cells: cells}
}

// Record adds one tick's population.
func (t *Tracker) Record(population int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	frac := 0.0
	if t.cells > 0 {
		frac = float64(population) / float64(t.cells)
	}
	t.fractions = append(t.fractions, frac)
	t.last = population
}

// Summary computes statistics over everything recorded so far.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Summary{Ticks: len(t.fractions), Last: t.last}
	if s.Ticks == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(t.fractions, nil)
	if s.Ticks == 1 {
		s.StdDev = 0
	}
	s.Min, s.Max = t.fractions[0], t.fractions[0]
	for _, f := range t.fractions[1:] {
		s.Min = min(s.Min, f)
		s.Max = max(s.Max, f)
	}
	s.Extinct = t.last == 0
	return s
}
