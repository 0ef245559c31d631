package lattice

import "fmt"

// Grid owns every cell of one simulation. Membership is fixed at Build time;
// only cell state and neighbour counts change afterwards.
type Grid struct {
	cfg   Config
	axis  int
	cells []Cell
	index map[Position]int
}

// Build generates one dead cell per lattice point. Both axes cover
// [-CanvasSize, CanvasSize) in steps of CellSize+CellGap, z-major.
func Build(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	coords := axisCoords(cfg.CanvasSize, cfg.Step())
	g := &Grid{
		cfg:   cfg,
		axis:  len(coords),
		cells: make([]Cell, 0, len(coords)*len(coords)),
		index: make(map[Position]int, len(coords)*len(coords)),
	}
	for _, z := range coords {
		for _, x := range coords {
			pos := Position{X: x, Z: z}
			if _, dup := g.index[pos]; dup {
				return nil, fmt.Errorf("lattice: duplicate position %v", pos)
			}
			id := len(g.cells)
			g.cells = append(g.cells, Cell{ID: id, Position: pos, State: Dead})
			g.index[pos] = id
		}
	}
	return g, nil
}

func axisCoords(canvas, step int) []int {
	coords := make([]int, 0, (2*canvas+step-1)/step)
	for v := -canvas; v < canvas; v += step {
		coords = append(coords, v)
	}
	return coords
}

// Config returns the configuration the grid was built from.
func (g *Grid) Config() Config { return g.cfg }

// Axis returns the number of cells along each axis.
func (g *Grid) Axis() int { return g.axis }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cell returns a copy of the cell with the given identity.
func (g *Grid) Cell(id int) Cell { return g.cells[id] }

// Lookup returns the identity of the cell at pos.
func (g *Grid) Lookup(pos Position) (int, bool) {
	id, ok := g.index[pos]
	return id, ok
}

// Positions returns every cell position in identity order.
func (g *Grid) Positions() []Position {
	out := make([]Position, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Position
	}
	return out
}

// Snapshot copies all cells.
func (g *Grid) Snapshot() []Cell {
	return append([]Cell(nil), g.cells...)
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].State == Alive {
			n++
		}
	}
	return n
}

// Set overwrites the state of the cell at pos without notifying anyone. It
// is meant for seeding patterns before the first tick.
func (g *Grid) Set(pos Position, s State) bool {
	id, ok := g.index[pos]
	if !ok {
		return false
	}
	g.cells[id].State = s
	return true
}
