package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/nvandessel/mlwalk/internal/mittag"
)

// ErrNoStates reports a state space with fewer than one state.
var ErrNoStates = errors.New("state count must be >= 1")

// StateParams holds the waiting-time parameters of every state, indexed by
// state. It is built once before a run and never mutated afterwards.
type StateParams struct {
	// Shape is the Mittag-Leffler exponent mu of each state, in (0, 1).
	Shape []float64 `json:"shape" yaml:"shape"`

	// Scale is the time scale t0 of each state, > 0.
	Scale []float64 `json:"scale" yaml:"scale"`
}

// BuildStateParams interpolates shape linearly from minShape to maxShape and
// scale exponentially as scaleBase*exp(x*scaleGrowth), with x running from 0
// at the first state to 1 at the last. The result is validated.
func BuildStateParams(nstates int, minShape, maxShape, scaleBase, scaleGrowth float64) (StateParams, error) {
	if nstates < 1 {
		return StateParams{}, fmt.Errorf("%w: got %d", ErrNoStates, nstates)
	}

	p := StateParams{
		Shape: make([]float64, nstates),
		Scale: make([]float64, nstates),
	}
	for i := 0; i < nstates; i++ {
		x := 0.0
		if nstates > 1 {
			x = float64(i) / float64(nstates-1)
		}
		p.Shape[i] = minShape + x*(maxShape-minShape)
		p.Scale[i] = scaleBase * math.Exp(x*scaleGrowth)
	}

	if err := p.Validate(); err != nil {
		return StateParams{}, err
	}
	return p, nil
}

// States returns the number of states.
func (p StateParams) States() int {
	return len(p.Shape)
}

// Validate checks every state's shape and scale. The first bad state is
// reported with its index.
func (p StateParams) Validate() error {
	if len(p.Shape) == 0 {
		return fmt.Errorf("%w: got 0", ErrNoStates)
	}
	if len(p.Shape) != len(p.Scale) {
		return fmt.Errorf("state params: %d shapes but %d scales", len(p.Shape), len(p.Scale))
	}
	for i := range p.Shape {
		if err := mittag.ValidateShape(p.Shape[i]); err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
		if err := mittag.ValidateScale(p.Scale[i]); err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
	}
	return nil
}
