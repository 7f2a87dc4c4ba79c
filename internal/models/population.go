package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nvandessel/mlwalk/internal/constants"
)

// ErrInvalidPopulation reports a negative or empty initial population.
var ErrInvalidPopulation = errors.New("invalid initial population")

// Population holds the initial particle count of every state.
type Population []int

// UniformPopulation spreads n particles evenly over all states. When nstates
// does not divide n, the first n%nstates states get one extra particle.
func UniformPopulation(n, nstates int) Population {
	p := make(Population, nstates)
	p.spread(0, n)
	return p
}

// UpperHalfPopulation spreads n particles evenly over the states from
// nstates/2 upward and leaves the lower states empty. The remainder goes to
// the lowest states of that range.
func UpperHalfPopulation(n, nstates int) Population {
	p := make(Population, nstates)
	p.spread(nstates/2, n)
	return p
}

// spread distributes n particles over p[from:], n/len each, with one extra
// for each of the first n%len states.
func (p Population) spread(from, n int) {
	width := len(p) - from
	if width <= 0 {
		return
	}
	per, extra := n/width, n%width
	for i := 0; i < width; i++ {
		p[from+i] = per
		if i < extra {
			p[from+i]++
		}
	}
}

// BuildPopulation returns the population for a named initial condition.
func BuildPopulation(cond constants.InitialCondition, n, nstates int) (Population, error) {
	if nstates < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoStates, nstates)
	}
	var p Population
	switch cond {
	case constants.InitialUniform:
		p = UniformPopulation(n, nstates)
	case constants.InitialUpperHalf:
		p = UpperHalfPopulation(n, nstates)
	default:
		return nil, fmt.Errorf("%w: unknown initial condition %q", ErrInvalidPopulation, cond)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Total returns the number of particles.
func (p Population) Total() int {
	total := 0
	for _, c := range p {
		total += c
	}
	return total
}

// Validate checks that no count is negative and at least one particle exists.
func (p Population) Validate() error {
	for s, c := range p {
		if c < 0 {
			return fmt.Errorf("%w: state %d has %d particles", ErrInvalidPopulation, s, c)
		}
	}
	if p.Total() == 0 {
		return fmt.Errorf("%w: no particles", ErrInvalidPopulation)
	}
	return nil
}

// Assigner maps linear particle indices to starting states.
type Assigner struct {
	cumulative []int
}

// NewAssigner precomputes the cumulative counts of p.
func NewAssigner(p Population) *Assigner {
	cum := make([]int, len(p))
	total := 0
	for s, c := range p {
		total += c
		cum[s] = total
	}
	return &Assigner{cumulative: cum}
}

// StateOf returns the smallest state s whose cumulative count p[0]+...+p[s]
// exceeds i. i must be in [0, Total()).
func (a *Assigner) StateOf(i int) int {
	return sort.Search(len(a.cumulative), func(s int) bool { return a.cumulative[s] > i })
}

// StateOf is a convenience for one-off lookups; use an Assigner in loops.
func (p Population) StateOf(i int) int {
	return NewAssigner(p).StateOf(i)
}
