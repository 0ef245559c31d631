package ecs

import (
	"lattice-life/internal/lattice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CellChangedEvent is the Donburi event type for lattice cell changes.
var CellChangedEvent = events.NewEventType[lattice.Change]()

// DonburiStore publishes lattice changes into a Donburi world.
type DonburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an observer backed by a Donburi world. Changes are
// queued on CellChangedEvent until the world's events are processed.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world}
}

// World returns the backing world.
func (s *DonburiStore) World() donburi.World { return s.world }

// CellChanged implements lattice.Observer.
func (s *DonburiStore) CellChanged(c lattice.Change) {
	CellChangedEvent.Publish(s.world, c)
}
