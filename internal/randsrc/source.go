// Package randsrc provides the uniform random source used by every stochastic
// component. A Source is owned by exactly one goroutine; it is re-seeded per
// particle instead of being allocated per draw.
package randsrc

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seeded PCG generator. It is not safe for concurrent use.
type Source struct {
	pcg rand.PCGSource
	rng *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed uint64) *Source {
	s := &Source{}
	s.pcg.Seed(seed)
	s.rng = rand.New(&s.pcg)
	return s
}

// Reseed resets the generator to the deterministic state for seed.
func (s *Source) Reseed(seed uint64) {
	s.pcg.Seed(seed)
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform value in [low, high). It panics if low >= high;
// callers validate ranges before drawing.
func (s *Source) Uniform(low, high float64) float64 {
	if !(low < high) {
		panic(fmt.Sprintf("randsrc: invalid uniform range [%g, %g)", low, high))
	}
	return distuv.Uniform{Min: low, Max: high, Src: &s.pcg}.Rand()
}

// ParticleSeed derives the seed of particle index from the run's base seed.
// The mix is splitmix64, so neighboring indices get uncorrelated streams and
// a particle's stream does not depend on which worker simulates it.
func ParticleSeed(base uint64, index int) uint64 {
	z := base + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// RandomSeed returns a non-zero seed from the operating system's entropy source.
func RandomSeed() (uint64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("reading entropy: %w", err)
	}
	seed := binary.LittleEndian.Uint64(buf[:])
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
