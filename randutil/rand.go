// Package randutil builds the random sources used for seating and tile draws.
package randutil

import (
	"math/rand/v2"

	"lukechampine.com/frand"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand whose sequence is fully determined by
// seed. Tests use this to make draws and seating reproducible.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// NewSeeded returns a PCG source seeded from the operating system's entropy.
func NewSeeded() *rand.Rand {
	return rand.New(rand.NewPCG(frand.Uint64n(1<<63), frand.Uint64n(1<<63)))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
