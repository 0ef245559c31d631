// Package rng wraps math/rand/v2 so simulations can be reseeded explicitly.
package rng

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed. A zero seed draws
// one from the wall clock so unseeded runs differ.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(EffectiveSeed(seed)), 0))}
}

// EffectiveSeed maps the zero seed to a time-derived one.
func EffectiveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// Bool returns a uniformly distributed boolean.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}
