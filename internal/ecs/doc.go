// Package ecs bridges lattice cell changes into a Donburi world.
//
// [NewDonburiStore] returns a lattice.Observer that publishes every change
// as a typed event. Renderers subscribe to [CellChangedEvent] and process
// queued events once per frame, so the simulation never calls into drawing
// code directly.
//
// Usage:
//
//	world := donburi.NewWorld()
//	sim.AddObserver(ecs.NewDonburiStore(world))
//	ecs.CellChangedEvent.Subscribe(world, onChange)
//	// each frame:
//	ecs.CellChangedEvent.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
