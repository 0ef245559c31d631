package lattice

import "sync"

// Trigger sources used by the bundled binaries.
const (
	SourceSetup = "setup"
	SourceUser  = "user"
	SourceReset = "reset"
)

// Trigger is one randomize request.
type Trigger struct {
	Source string
	// Reseed restarts the randomizer with Seed before applying.
	Reseed bool
	Seed   int64
}

// TriggerQueue is a FIFO of randomize requests. Any goroutine may push; the
// simulation drains it before each tick.
type TriggerQueue struct {
	mu      sync.Mutex
	pending []Trigger
	closed  bool
}

// Push enqueues t. It never blocks and reports false once the queue has been
// discarded.
func (q *TriggerQueue) Push(t Trigger) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.pending = append(q.pending, t)
	return true
}

// Len returns the number of pending triggers.
func (q *TriggerQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// take removes and returns every pending trigger in delivery order.
func (q *TriggerQueue) take() []Trigger {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Discard drops pending triggers and refuses new ones. It returns the
// number dropped.
func (q *TriggerQueue) Discard() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	q.pending = nil
	q.closed = true
	return n
}
