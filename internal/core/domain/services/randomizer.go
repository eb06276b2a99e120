package services

import "math/rand/v2"

// Randomizer picks a uniformly distributed index in [0, n).
// Implementations must be safe for concurrent use.
type Randomizer interface {
	IntN(n int) int
}

// RandomizerFunc adapts a function to Randomizer.
type RandomizerFunc func(n int) int

func (f RandomizerFunc) IntN(n int) int {
	return f(n)
}

// NewRandomizer returns a Randomizer backed by the math/rand/v2 global
// generator, which is safe for concurrent use.
func NewRandomizer() Randomizer {
	return RandomizerFunc(rand.IntN)
}
