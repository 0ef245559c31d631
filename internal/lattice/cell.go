package lattice

import "fmt"

// State is the two-valued cell state.
type State uint8

const (
	Dead State = iota
	Alive
)

func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

// Position is a cell's immutable lattice coordinate.
type Position struct {
	X, Z int
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Z) }

// Cell is the atomic simulation unit.
type Cell struct {
	ID       int
	Position Position
	State    State
	// Neighbors is the live Moore-neighbour count from the last resolver pass.
	Neighbors int
}
