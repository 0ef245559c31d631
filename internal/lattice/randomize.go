package lattice

import "lattice-life/pkg/rng"

// Randomizer overwrites every cell with an independent coin flip.
type Randomizer struct {
	rng  *rng.RNG
	seed int64
}

// NewRandomizer returns a Randomizer seeded with seed; zero picks a
// time-based seed.
func NewRandomizer(seed int64) *Randomizer {
	r := &Randomizer{}
	r.Reseed(seed)
	return r
}

// Reseed restarts the random sequence.
func (r *Randomizer) Reseed(seed int64) {
	r.seed = rng.EffectiveSeed(seed)
	r.rng = rng.New(r.seed)
}

// Seed reports the effective seed of the current sequence.
func (r *Randomizer) Seed() int64 { return r.seed }

// Apply draws a fresh state for every cell and notifies obs of every cell,
// changed or not, since a randomize is a reset rather than a transition.
func (r *Randomizer) Apply(g *Grid, obs Observer) {
	for id := range g.cells {
		c := &g.cells[id]
		c.State = Dead
		if r.rng.Bool() {
			c.State = Alive
		}
		if obs != nil {
			obs.CellChanged(Change{ID: id, Position: c.Position, State: c.State, Repaint: true})
		}
	}
}
