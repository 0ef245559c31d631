package lattice

// Next applies Conway's B3/S23 rule to a cell state and its live-neighbour
// count.
func Next(s State, neighbors int) State {
	switch {
	case s == Alive && (neighbors == 2 || neighbors == 3):
		return Alive
	case s == Dead && neighbors == 3:
		return Alive
	default:
		return Dead
	}
}

// transition commits the next state for every cell from the neighbour counts
// of the last resolve and notifies obs of each cell that changed, in identity
// order. It returns the number of changed cells.
func (g *Grid) transition(obs Observer) int {
	changed := 0
	for id := range g.cells {
		c := &g.cells[id]
		next := Next(c.State, c.Neighbors)
		if next == c.State {
			continue
		}
		c.State = next
		changed++
		if obs != nil {
			obs.CellChanged(Change{ID: id, Position: c.Position, State: next})
		}
	}
	return changed
}
