package lattice

// Change is the per-cell output of the simulation.
type Change struct {
	ID       int
	Position Position
	State    State
	// Repaint marks notifications sent by a randomize reset, which cover
	// every cell whether or not its state changed.
	Repaint bool
}

// Observer receives cell changes. Observers run on the simulation's
// goroutine while it holds its lock and must not call back into it.
type Observer interface {
	CellChanged(c Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(c Change)

// CellChanged calls f(c).
func (f ObserverFunc) CellChanged(c Change) { f(c) }

// Observers fans a change out to several observers in order.
type Observers []Observer

// CellChanged forwards c to every non-nil observer.
func (o Observers) CellChanged(c Change) {
	for _, obs := range o {
		if obs != nil {
			obs.CellChanged(c)
		}
	}
}
