package rng

import "math/rand"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a reproducible Generator backed by math/rand
// Use it for tests and for replaying a session from a known seed
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a Generator that always produces the same sequence for seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))} // nolint:gosec
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// FromSeed returns a Seeded generator when seed is non-zero, otherwise Crypto
func FromSeed(seed int64) Generator {
	if seed == 0 {
		return Crypto{}
	}

	return NewSeeded(seed)
}
