package ports

import (
	"math/rand"
)

// RNG provides seeded random number generation for deterministic resampling.
// Stream(name, i) must return the same generator state for the same
// name/iteration pair on every call, independent of call order, so parallel
// resample iterations stay reproducible and the permutation and bootstrap
// loops draw from uncorrelated streams.
type RNG interface {
	// Stream creates the deterministic generator for one named iteration.
	Stream(name string, iteration int) *rand.Rand
}
