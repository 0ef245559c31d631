package lattice

import "golang.org/x/sync/errgroup"

// moore lists the eight unit offsets of the Moore neighbourhood.
var moore = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// minChunk keeps tiny grids from paying goroutine overhead.
const minChunk = 256

// NeighborPositions returns the eight lattice positions adjacent to pos for
// the given step. Positions outside the lattice are included; they simply
// match no cell.
func NeighborPositions(pos Position, step int) [8]Position {
	var out [8]Position
	for i, d := range moore {
		out[i] = Position{X: pos.X + d[0]*step, Z: pos.Z + d[1]*step}
	}
	return out
}

// CountNeighbors returns the number of live cells adjacent to cell id,
// reading current states. The lattice does not wrap.
func (g *Grid) CountNeighbors(id int) int {
	self := g.cells[id].Position
	n := 0
	for _, p := range NeighborPositions(self, g.cfg.Step()) {
		if p == self {
			continue
		}
		if nid, ok := g.index[p]; ok && g.cells[nid].State == Alive {
			n++
		}
	}
	return n
}

func (g *Grid) resolveRange(lo, hi int) {
	for id := lo; id < hi; id++ {
		g.cells[id].Neighbors = g.CountNeighbors(id)
	}
}

// Resolver recomputes neighbour counts for a whole grid.
type Resolver struct {
	// Workers bounds the goroutines used for one pass. Values below 2 resolve
	// sequentially on the calling goroutine.
	Workers int
}

// Resolve recomputes every cell's neighbour count from the current states.
// It returns only once all counts are written, so a following transition
// pass never races an in-flight count.
func (r Resolver) Resolve(g *Grid) {
	total := len(g.cells)
	if r.Workers < 2 || total < 2*minChunk {
		g.resolveRange(0, total)
		return
	}
	chunk := (total + r.Workers - 1) / r.Workers
	if chunk < minChunk {
		chunk = minChunk
	}
	var eg errgroup.Group
	eg.SetLimit(r.Workers)
	for lo := 0; lo < total; lo += chunk {
		lo, hi := lo, min(lo+chunk, total)
		eg.Go(func() error {
			g.resolveRange(lo, hi)
			return nil
		})
	}
	// Wait is the barrier between the resolver and transition phases.
	_ = eg.Wait()
}
