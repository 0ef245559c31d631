package lattice

import (
	"errors"
	"math"
	"os"
	"slices"
	"sort"
	"sync"
	"testing"

	"lattice-life/internal/core"
	"lattice-life/internal/monitoring"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func quietConfig(canvas, cell, gap int) Config {
	return Config{CanvasSize: canvas, CellSize: cell, CellGap: gap, Seed: 1}
}

func newSim(t *testing.T, cfg Config, opts ...Option) *Simulation {
	t.Helper()
	sim, err := New(cfg, opts...)
	require.NoError(t, err)
	return sim
}

func alivePositions(sim *Simulation) []Position {
	var out []Position
	for _, c := range sim.Snapshot() {
		if c.State == Alive {
			out = append(out, c.Position)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].X < out[j].X
	})
	return out
}

func plant(sim *Simulation, positions ...Position) {
	states := make(map[Position]State, len(positions))
	for _, p := range positions {
		states[p] = Alive
	}
	sim.SetStates(states)
}

func TestBuildCardinality(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantAxis  int
		wantFirst Position
		wantLast  Position
	}{
		{"unit step", quietConfig(10, 1, 0), 20, Position{-10, -10}, Position{9, 9}},
		{"step divides", quietConfig(10, 1, 1), 10, Position{-10, -10}, Position{8, 8}},
		{"step rounds up", quietConfig(10, 2, 1), 7, Position{-10, -10}, Position{8, 8}},
		{"step larger than canvas", quietConfig(2, 5, 0), 1, Position{-2, -2}, Position{-2, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAxis, g.Axis())
			assert.Equal(t, tt.wantAxis*tt.wantAxis, g.Len())
			assert.Equal(t, tt.wantFirst, g.Cell(0).Position)
			assert.Equal(t, tt.wantLast, g.Cell(g.Len()-1).Position)

			seen := map[Position]bool{}
			for i, p := range g.Positions() {
				require.False(t, seen[p], "duplicate position %v", p)
				seen[p] = true
				assert.Equal(t, Dead, g.Cell(i).State)
				assert.Zero(t, g.Cell(i).Neighbors)
				id, ok := g.Lookup(p)
				require.True(t, ok)
				assert.Equal(t, i, id)
				assert.GreaterOrEqual(t, p.X, -tt.cfg.CanvasSize)
				assert.Less(t, p.X, tt.cfg.CanvasSize)
			}
		})
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	bad := []Config{
		quietConfig(0, 1, 0),
		quietConfig(-3, 1, 0),
		quietConfig(10, 0, 0),
		quietConfig(10, 1, -1),
		quietConfig(10, 0, -2),
		quietConfig(math.MaxInt/2+1, 1, 0),
		quietConfig(10, math.MaxInt, 1),
		quietConfig(MaxAxisCells/2+1, 1, 0),
	}
	for _, cfg := range bad {
		_, err := Build(cfg)
		require.Error(t, err, "config %+v", cfg)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "config %+v: %v", cfg, err)

		_, err = New(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{
		"canvas":         "6",
		"cell":           "2",
		"gap":            "1",
		"seed":           "99",
		"auto_randomize": "false",
		"ignored":        "x",
	})
	require.NoError(t, err)
	want := Config{CanvasSize: 6, CellSize: 2, CellGap: 1, Seed: 99, AutoRandomize: false}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("FromMap mismatch (-want +got):\n%s", diff)
	}
	back, err := FromMap(c.Map())
	require.NoError(t, err)
	assert.Equal(t, c, back)

	d, err := FromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), d)
}

func TestFromMapRejectsMalformedValues(t *testing.T) {
	for _, m := range []map[string]string{
		{"canvas": "abc"},
		{"cell": "1.5"},
		{"gap": ""},
		{"seed": "x"},
		{"auto_randomize": "maybe"},
	} {
		_, err := FromMap(m)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%v", m)
	}
}

func TestNeighborCountsWithinRange(t *testing.T) {
	sim := newSim(t, quietConfig(8, 1, 0))
	for i := 0; i < 5; i++ {
		sim.Reset(int64(i + 1))
		sim.Tick()
		for _, c := range sim.Snapshot() {
			require.GreaterOrEqual(t, c.Neighbors, 0)
			require.LessOrEqual(t, c.Neighbors, 8)
		}
	}
}

func TestEdgeCellsDoNotWrap(t *testing.T) {
	g, err := Build(quietConfig(3, 2, 1))
	require.NoError(t, err)
	for i := range g.cells {
		g.cells[i].State = Alive
	}
	Resolver{}.Resolve(g)

	axis := g.Axis()
	require.Equal(t, 2, axis)
	for id := 0; id < g.Len(); id++ {
		assert.Equal(t, 3, g.Cell(id).Neighbors, "2x2 lattice corner %v", g.Cell(id).Position)
	}

	g, err = Build(quietConfig(4, 1, 0))
	require.NoError(t, err)
	for i := range g.cells {
		g.cells[i].State = Alive
	}
	Resolver{}.Resolve(g)

	corner, _ := g.Lookup(Position{-4, -4})
	edge, _ := g.Lookup(Position{0, -4})
	inner, _ := g.Lookup(Position{0, 0})
	assert.Equal(t, 3, g.Cell(corner).Neighbors)
	assert.Equal(t, 5, g.Cell(edge).Neighbors)
	assert.Equal(t, 8, g.Cell(inner).Neighbors)

	existing := 0
	for _, p := range NeighborPositions(Position{-4, -4}, 1) {
		if _, ok := g.Lookup(p); ok {
			existing++
		}
	}
	assert.Equal(t, 3, existing)
}

func TestNext(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := Dead
		if n == 2 || n == 3 {
			wantAlive = Alive
		}
		wantDead := Dead
		if n == 3 {
			wantDead = Alive
		}
		assert.Equal(t, wantAlive, Next(Alive, n), "alive with %d", n)
		assert.Equal(t, wantDead, Next(Dead, n), "dead with %d", n)
	}
}

func TestBlockStillLife(t *testing.T) {
	// A step of 3 checks that neighbour offsets scale with the lattice.
	sim := newSim(t, quietConfig(9, 2, 1))
	block := []Position{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	plant(sim, block...)

	for i := 0; i < 25; i++ {
		res := sim.Tick()
		require.Zero(t, res.Changed, "tick %d", i)
		require.Equal(t, block, alivePositions(sim))
	}
	for _, c := range sim.Snapshot() {
		if c.State == Alive {
			assert.Equal(t, 3, c.Neighbors)
		}
	}
}

func TestThreeByThreeBlock(t *testing.T) {
	sim := newSim(t, quietConfig(6, 1, 0))
	var square []Position
	for z := -1; z <= 1; z++ {
		for x := -1; x <= 1; x++ {
			square = append(square, Position{x, z})
		}
	}
	plant(sim, square...)
	sim.Tick()

	center, _ := sim.State(Position{0, 0})
	assert.Equal(t, Dead, center, "center has 8 neighbours")
	for _, p := range []Position{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		st, _ := sim.State(p)
		assert.Equal(t, Alive, st, "corner %v has 3 neighbours", p)
	}
	for _, p := range []Position{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
		st, _ := sim.State(p)
		assert.Equal(t, Dead, st, "edge %v has 5 neighbours", p)
	}
	for _, p := range []Position{{0, -2}, {-2, 0}, {2, 0}, {0, 2}} {
		st, _ := sim.State(p)
		assert.Equal(t, Alive, st, "outer %v is born with 3 neighbours", p)
	}
}

func TestLoneCellDies(t *testing.T) {
	sim := newSim(t, quietConfig(4, 1, 0))
	plant(sim, Position{0, 0})

	res := sim.Tick()
	assert.Equal(t, 1, res.Changed)
	assert.Zero(t, res.Population)

	for i := 0; i < 3; i++ {
		res = sim.Tick()
		assert.Zero(t, res.Changed)
		assert.Empty(t, alivePositions(sim))
	}
}

func TestBlinkerOscillation(t *testing.T) {
	sim := newSim(t, quietConfig(3, 1, 0))
	vertical := []Position{{0, -1}, {0, 0}, {0, 1}}
	horizontal := []Position{{-1, 0}, {0, 0}, {1, 0}}
	plant(sim, vertical...)

	var changes []Change
	sim.AddObserver(ObserverFunc(func(c Change) { changes = append(changes, c) }))

	sim.Tick()
	if diff := cmp.Diff(horizontal, alivePositions(sim)); diff != "" {
		t.Fatalf("after first tick (-want +got):\n%s", diff)
	}
	want := []Change{
		{ID: 15, Position: Position{0, -1}, State: Dead},
		{ID: 20, Position: Position{-1, 0}, State: Alive},
		{ID: 22, Position: Position{1, 0}, State: Alive},
		{ID: 27, Position: Position{0, 1}, State: Dead},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("change notifications (-want +got):\n%s", diff)
	}

	sim.Tick()
	if diff := cmp.Diff(vertical, alivePositions(sim)); diff != "" {
		t.Fatalf("after second tick (-want +got):\n%s", diff)
	}
}

func TestPhaseOrderingMatters(t *testing.T) {
	build := func() *Grid {
		g, err := Build(quietConfig(3, 1, 0))
		require.NoError(t, err)
		for _, p := range []Position{{0, -1}, {0, 0}, {0, 1}} {
			g.Set(p, Alive)
		}
		return g
	}
	alive := func(g *Grid) []Position {
		var out []Position
		for _, c := range g.cells {
			if c.State == Alive {
				out = append(out, c.Position)
			}
		}
		return out
	}

	correct := build()
	Resolver{}.Resolve(correct)
	correct.transition(nil)
	require.Equal(t, []Position{{-1, 0}, {0, 0}, {1, 0}}, alive(correct))

	transitionFirst := build()
	transitionFirst.transition(nil)
	Resolver{}.Resolve(transitionFirst)
	assert.NotEqual(t, alive(correct), alive(transitionFirst))

	interleaved := build()
	for id := range interleaved.cells {
		c := &interleaved.cells[id]
		c.Neighbors = interleaved.CountNeighbors(id)
		c.State = Next(c.State, c.Neighbors)
	}
	assert.NotEqual(t, alive(correct), alive(interleaved))
}

func TestParallelResolverMatchesSequential(t *testing.T) {
	cfg := quietConfig(40, 1, 0)
	seq := newSim(t, cfg)
	par := newSim(t, cfg, WithWorkers(4))
	seq.Reset(5)
	par.Reset(5)
	require.Equal(t, 6400, par.Len())

	for i := 0; i < 10; i++ {
		a := seq.Tick()
		b := par.Tick()
		require.Equal(t, a, b, "tick %d", i)
		require.Equal(t, seq.Snapshot(), par.Snapshot(), "tick %d", i)
	}
}

func TestRandomizerRepaintsEveryCell(t *testing.T) {
	g, err := Build(quietConfig(5, 1, 0))
	require.NoError(t, err)

	seen := map[int]bool{}
	NewRandomizer(3).Apply(g, ObserverFunc(func(c Change) {
		assert.True(t, c.Repaint)
		assert.Equal(t, g.Cell(c.ID).State, c.State)
		seen[c.ID] = true
	}))
	assert.Len(t, seen, g.Len())
}

func TestRandomizerIgnoresPriorState(t *testing.T) {
	fromDead, err := Build(quietConfig(6, 1, 0))
	require.NoError(t, err)
	fromAlive, err := Build(quietConfig(6, 1, 0))
	require.NoError(t, err)
	for i := range fromAlive.cells {
		fromAlive.cells[i].State = Alive
	}

	NewRandomizer(11).Apply(fromDead, nil)
	NewRandomizer(11).Apply(fromAlive, nil)
	assert.Equal(t, fromDead.Snapshot(), fromAlive.Snapshot())
}

func TestRandomizerProportions(t *testing.T) {
	g, err := Build(quietConfig(10, 1, 0))
	require.NoError(t, err)
	r := NewRandomizer(2026)

	alive, total := 0, 0
	var prev []Cell
	differs := 0
	for i := 0; i < 100; i++ {
		r.Apply(g, nil)
		alive += g.Population()
		total += g.Len()
		if prev != nil && !cmp.Equal(prev, g.Snapshot()) {
			differs++
		}
		prev = g.Snapshot()
	}
	ratio := float64(alive) / float64(total)
	assert.InDelta(t, 0.5, ratio, 0.02)
	assert.Equal(t, 99, differs, "each randomize should draw a new configuration")
}

func TestResetIsDeterministicPerSeed(t *testing.T) {
	sim := newSim(t, quietConfig(6, 1, 0))
	sim.Reset(77)
	first := append([]uint8(nil), sim.Cells()...)
	sim.Tick()
	sim.Reset(77)
	assert.Equal(t, first, sim.Cells())

	p, ok := sim.Parameters().Lookup("seed")
	require.True(t, ok)
	assert.Equal(t, "77", p.Value)
}

func TestTriggerQueueFIFO(t *testing.T) {
	var q TriggerQueue
	require.True(t, q.Push(Trigger{Source: "a"}))
	require.True(t, q.Push(Trigger{Source: "b", Reseed: true, Seed: 4}))
	require.True(t, q.Push(Trigger{Source: "c"}))
	assert.Equal(t, 3, q.Len())

	got := q.take()
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Source, got[1].Source, got[2].Source})
	assert.Zero(t, q.Len())

	q.Push(Trigger{Source: "d"})
	assert.Equal(t, 1, q.Discard())
	assert.False(t, q.Push(Trigger{Source: "e"}))
	assert.Zero(t, q.Len())
}

func TestTriggersDrainBeforeTick(t *testing.T) {
	cfg := quietConfig(5, 1, 0)
	cfg.AutoRandomize = true
	sim := newSim(t, cfg)
	require.Equal(t, 1, sim.Pending())
	assert.Zero(t, sim.Population(), "setup trigger waits for the first tick")

	var repaints int
	sim.AddObserver(ObserverFunc(func(c Change) {
		if c.Repaint {
			repaints++
		}
	}))

	sim.Trigger(SourceUser)
	res := sim.Tick()
	assert.Equal(t, 2, res.Randomized)
	assert.Equal(t, 2*sim.Len(), repaints)
	assert.Equal(t, uint64(1), res.Generation)
	assert.Zero(t, sim.Pending())

	res = sim.Tick()
	assert.Zero(t, res.Randomized)
	assert.Equal(t, uint64(2), sim.Generation())
}

func TestResetAppliesAfterQueuedTriggers(t *testing.T) {
	sim := newSim(t, quietConfig(5, 1, 0))
	sim.Trigger(SourceUser)
	sim.Reset(9)
	assert.Zero(t, sim.Pending())

	other := newSim(t, quietConfig(5, 1, 0))
	other.Reset(9)
	assert.Equal(t, other.Snapshot(), sim.Snapshot(), "reset's reseed wins over the earlier trigger")
}

func TestCloseDiscardsTriggers(t *testing.T) {
	sim := newSim(t, quietConfig(5, 1, 0))
	sim.Trigger(SourceUser)
	sim.Trigger(SourceUser)
	assert.Equal(t, 2, sim.Close())
	assert.False(t, sim.Trigger(SourceUser))

	res := sim.Tick()
	assert.Zero(t, res.Randomized)
	assert.Zero(t, res.Population)
}

func TestConcurrentTriggersWhileTicking(t *testing.T) {
	sim := newSim(t, quietConfig(12, 1, 0), WithWorkers(3))

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				sim.Trigger(SourceUser)
				_ = sim.Population()
			}
		}()
	}

	applied := 0
	for i := 0; i < 50; i++ {
		applied += sim.Tick().Randomized
	}
	wg.Wait()
	applied += sim.DrainTriggers()
	assert.Equal(t, 100, applied)
}

func TestCellsBufferAndCounts(t *testing.T) {
	sim := newSim(t, quietConfig(2, 1, 0))
	plant(sim, Position{-2, -2}, Position{1, 1})

	cells := sim.Cells()
	require.Len(t, cells, 16)
	assert.Equal(t, uint8(1), cells[0])
	assert.Equal(t, uint8(1), cells[15])
	assert.Equal(t, 2, sim.Population())

	sim.Tick()
	counts := sim.NeighborCounts()
	assert.Equal(t, uint8(0), counts[0])
	assert.Equal(t, uint8(1), counts[5], "(-1,-1) touches (-2,-2)")
	assert.Equal(t, uint8(1), counts[10], "(0,0) touches (1,1)")
	assert.Zero(t, sim.Population())
}

func TestConcurrentReadersGetIndependentBuffers(t *testing.T) {
	sim := newSim(t, quietConfig(6, 1, 0))
	sim.Reset(3)
	sim.Tick()
	wantCells := sim.Cells()
	wantCounts := sim.NeighborCounts()

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				cells := sim.Cells()
				counts := sim.NeighborCounts()
				if !slices.Equal(cells, wantCells) || !slices.Equal(counts, wantCounts) {
					errs <- "reader saw a buffer overwritten by another reader"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}

	first := sim.Cells()
	first[0] ^= 1
	assert.Equal(t, wantCells, sim.Cells(), "returned slices are copies")
}

func TestObserversFanOut(t *testing.T) {
	var a, b int
	obs := Observers{
		ObserverFunc(func(Change) { a++ }),
		nil,
		ObserverFunc(func(Change) { b++ }),
	}
	sim := newSim(t, quietConfig(3, 1, 0), WithObserver(obs), WithObserver(nil))
	sim.Reset(1)
	assert.Equal(t, sim.Len(), a)
	assert.Equal(t, sim.Len(), b)
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Sims()[Name]
	require.True(t, ok)

	sim, err := factory(map[string]string{"canvas": "4", "auto_randomize": "false"})
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 8, H: 8}, sim.Size())
	assert.Equal(t, Name, sim.Name())

	sim, err = factory(map[string]string{"cell": "0"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, sim)

	_, err = factory(map[string]string{"canvas": "ten"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = factory(map[string]string{"workers": "many"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAxisCellsAtLimit(t *testing.T) {
	cfg := quietConfig(MaxAxisCells/2, 1, 0)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MaxAxisCells, cfg.AxisCells())
	assert.Equal(t, 7, quietConfig(10, 2, 1).AxisCells())
}
