package ports

import (
	"math/rand"
)

// RNG provides seeded random number generation for deterministic operations.
// Cohort sampling draws from a named stream so tests can assert the exact
// sampled record for a given seed.
type RNG interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation
	SeededStream(name string, seed int64) (*rand.Rand, error)
}
