package lattice

import (
	"fmt"
	"strconv"
	"sync"

	"lattice-life/internal/core"
	"lattice-life/internal/monitoring"
)

// Name is the registry key of the lattice simulation.
const Name = "lattice"

// TickResult summarises one tick.
type TickResult struct {
	Generation uint64
	// Randomized is the number of randomize triggers applied before the tick.
	Randomized int
	// Changed is the number of cells whose state flipped during the tick.
	Changed    int
	Population int
}

// Option customises a Simulation.
type Option func(*Simulation)

// WithObserver registers an observer of cell changes.
func WithObserver(obs Observer) Option {
	return func(s *Simulation) {
		if obs != nil {
			s.observers = append(s.observers, obs)
		}
	}
}

// WithWorkers sets the resolver parallelism.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.resolver.Workers = n }
}

// Simulation sequences the randomizer, resolver and transition engine over a
// single grid. Tick and the trigger drain are serialised; readers may call
// the accessors from other goroutines.
type Simulation struct {
	mu sync.RWMutex

	grid       *Grid
	resolver   Resolver
	randomizer *Randomizer
	queue      TriggerQueue
	observers  Observers
	generation uint64
}

// New builds the grid for cfg. All cells start dead; when cfg.AutoRandomize
// is set one setup trigger is queued and applied before the first tick.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	grid, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		grid:       grid,
		randomizer: NewRandomizer(cfg.Seed),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.AutoRandomize {
		s.queue.Push(Trigger{Source: SourceSetup})
	}
	monitoring.Logf("lattice: built %dx%d grid (%d cells, step %d, seed %d)",
		grid.Axis(), grid.Axis(), grid.Len(), cfg.Step(), s.randomizer.Seed())
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return Name }

// Size returns the lattice dimensions in cells.
func (s *Simulation) Size() core.Size {
	return core.Size{W: s.grid.Axis(), H: s.grid.Axis()}
}

// AddObserver registers obs for subsequent changes.
func (s *Simulation) AddObserver(obs Observer) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Trigger requests a randomize from any goroutine. It is applied before the
// next tick. It reports false after Close.
func (s *Simulation) Trigger(source string) bool {
	return s.queue.Push(Trigger{Source: source})
}

// Pending returns the number of queued randomize triggers.
func (s *Simulation) Pending() int { return s.queue.Len() }

// Reset reseeds the randomizer and randomizes the grid immediately, after
// any triggers already queued.
func (s *Simulation) Reset(seed int64) {
	s.queue.Push(Trigger{Source: SourceReset, Reseed: true, Seed: seed})
	s.DrainTriggers()
}

// DrainTriggers applies every queued trigger in delivery order and returns
// how many were applied.
func (s *Simulation) DrainTriggers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drainLocked()
}

func (s *Simulation) drainLocked() int {
	triggers := s.queue.take()
	for _, t := range triggers {
		if t.Reseed {
			s.randomizer.Reseed(t.Seed)
		}
		s.randomizer.Apply(s.grid, s.observers)
		monitoring.Logf("lattice: randomized by %s trigger (population %d)", t.Source, s.grid.Population())
	}
	return len(triggers)
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() { s.Tick() }

// Tick drains pending randomize triggers, resolves every neighbour count
// from the current states and then commits the next state of every cell.
func (s *Simulation) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := TickResult{Randomized: s.drainLocked()}
	s.resolver.Resolve(s.grid)
	res.Changed = s.grid.transition(s.observers)
	s.generation++
	res.Generation = s.generation
	res.Population = s.grid.Population()
	return res
}

// Close discards pending triggers and rejects new ones. Each applied trigger
// is atomic, so nothing is left half-randomized.
func (s *Simulation) Close() int {
	n := s.queue.Discard()
	if n > 0 {
		monitoring.Logf("lattice: discarded %d pending triggers", n)
	}
	return n
}

// Generation returns the number of completed ticks.
func (s *Simulation) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Population returns the number of live cells.
func (s *Simulation) Population() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Population()
}

// Len returns the number of cells.
func (s *Simulation) Len() int { return s.grid.Len() }

// Positions returns every cell position in identity order.
func (s *Simulation) Positions() []Position { return s.grid.Positions() }

// Snapshot copies every cell.
func (s *Simulation) Snapshot() []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Snapshot()
}

// State returns the state of the cell at pos.
func (s *Simulation) State(pos Position) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.grid.Lookup(pos)
	if !ok {
		return Dead, false
	}
	return s.grid.cells[id].State, true
}

// SetStates overwrites cell states without notifying observers. It is meant
// for planting patterns before the simulation starts. Unknown positions are
// ignored.
func (s *Simulation) SetStates(states map[Position]State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pos, st := range states {
		s.grid.Set(pos, st)
	}
}

// Cells returns a fresh row-major 0/1 copy of the current states.
func (s *Simulation) Cells() []uint8 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rasterize(func(c *Cell) uint8 { return uint8(c.State) })
}

// NeighborCounts returns a fresh row-major copy of the neighbour counts of
// the last tick.
func (s *Simulation) NeighborCounts() []uint8 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rasterize(func(c *Cell) uint8 { return uint8(c.Neighbors) })
}

// rasterize lays one byte per cell out by lattice coordinate. Callers hold
// the read lock.
func (s *Simulation) rasterize(value func(*Cell) uint8) []uint8 {
	axis := s.grid.Axis()
	out := core.NewByteGrid(axis, axis)
	buf := out.Cells()
	for id := range s.grid.cells {
		buf[out.Index(id%axis, id/axis)] = value(&s.grid.cells[id])
	}
	return buf
}

// Parameters reports the lattice configuration for display.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	s.mu.RLock()
	seed := s.randomizer.Seed()
	s.mu.RUnlock()
	cfg := s.grid.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("canvas", "Canvas half-extent", cfg.CanvasSize),
				intParam("cell", "Cell size", cfg.CellSize),
				intParam("gap", "Cell gap", cfg.CellGap),
				intParam("cells", "Cells", s.grid.Len()),
			},
		},
		{
			Name: "Randomizer",
			Params: []core.Parameter{
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(seed, 10)},
				{Key: "auto_randomize", Label: "Auto randomize", Type: core.ParamTypeBool, Value: strconv.FormatBool(cfg.AutoRandomize)},
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func init() {
	core.Register(Name, func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		var opts []Option
		if v, ok := cfg["workers"]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: workers %q: %v", ErrInvalidConfig, v, err)
			}
			opts = append(opts, WithWorkers(n))
		}
		sim, err := New(c, opts...)
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}
