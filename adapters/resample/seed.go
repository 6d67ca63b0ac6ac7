package resample

import (
	"hash/fnv"
	"math/rand"

	"plsgo/ports"
)

// SeedStream derives one independent, reproducible generator per named
// resample iteration from a single master seed. Streams are stateless:
// Stream(name, i) yields the same generator no matter what was drawn before,
// which keeps parallel iterations deterministic, and the stream name keeps
// the permutation and bootstrap loops uncorrelated.
type SeedStream struct {
	seed int64
}

// NewSeedStream creates a stream factory for the given master seed.
func NewSeedStream(seed int64) *SeedStream {
	return &SeedStream{seed: seed}
}

var _ ports.RNG = (*SeedStream)(nil)

// Stream returns the generator for iteration i of the named loop.
func (s *SeedStream) Stream(name string, i int) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	z := uint64(s.seed) ^ h.Sum64()
	z += uint64(i+1) * 0x9E3779B97F4A7C15
	return rand.New(rand.NewSource(int64(splitmix64(z))))
}

// splitmix64 finalizer, used to decorrelate consecutive iteration seeds.
func splitmix64(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}
