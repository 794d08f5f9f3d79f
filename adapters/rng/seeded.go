// Package rng provides named, seeded random streams so every sampling
// operation is reproducible from (name, seed).
package rng

import (
	"hash/fnv"
	"math/rand"
)

// SeededRNG derives an independent deterministic stream per operation name
type SeededRNG struct{}

// New creates a seeded RNG provider
func New() *SeededRNG {
	return &SeededRNG{}
}

// SeededStream mixes the operation name into the base seed so distinct
// operations sharing one seed still get independent streams.
func (r *SeededRNG) SeededStream(name string, seed int64) (*rand.Rand, error) {
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := int64(h.Sum64()) ^ seed
	return rand.New(rand.NewSource(mixed)), nil
}
