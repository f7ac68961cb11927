package road

import (
	"math/rand"
	"time"
)

// RandomSource is the randomness capability consumed by segment generation.
// *rand.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// NewSystemSource returns a source seeded from the wall clock.
func NewSystemSource() RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}

// SourceForSeed returns a seeded source, or a system source when seed is 0.
func SourceForSeed(seed int64) RandomSource {
	if seed == 0 {
		return NewSystemSource()
	}
	return NewSeededSource(seed)
}

// Choice returns a uniformly chosen element of items. items must not be empty.
func Choice[T any](src RandomSource, items []T) T {
	return items[src.Intn(len(items))]
}
