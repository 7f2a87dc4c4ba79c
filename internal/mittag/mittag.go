// Package mittag draws residence times from the Mittag-Leffler law used by
// every state of the walk.
//
// A sample combines two independent uniforms u, v:
//
//	dt = -t0 * ln(u) * (sin(mu*pi)/tan(mu*pi*v) - cos(mu*pi))^(1/mu)
//
// where mu in (0, 1) is the shape (tail exponent) and t0 > 0 the time scale.
// Draws that come out non-finite or non-positive (u = 0, or the tangent term
// near its singularity) are rejected and redrawn, so callers only ever see a
// finite positive residence time.
package mittag

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidShape reports a shape parameter outside the open interval (0, 1).
	ErrInvalidShape = errors.New("shape must be in (0, 1)")

	// ErrInvalidScale reports a scale parameter that is not finite and positive.
	ErrInvalidScale = errors.New("scale must be finite and > 0")
)

// Uniform is the source of uniform variates in [0, 1).
type Uniform interface {
	Float64() float64
}

// ValidateShape checks that mu lies strictly between 0 and 1.
func ValidateShape(mu float64) error {
	if !(mu > 0 && mu < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidShape, mu)
	}
	return nil
}

// ValidateScale checks that t0 is finite and strictly positive.
func ValidateScale(t0 float64) error {
	if !(t0 > 0) || math.IsInf(t0, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidScale, t0)
	}
	return nil
}

// Variate evaluates the Mittag-Leffler construction for one (u, v) pair
// without any rejection. The result may be NaN, infinite or non-positive.
func Variate(mu, t0, u, v float64) float64 {
	a := mu * math.Pi
	base := math.Sin(a)/math.Tan(a*v) - math.Cos(a)
	return -t0 * math.Log(u) * math.Pow(base, 1/mu)
}

// Acceptable reports whether dt can be used as a residence time.
func Acceptable(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 1)
}

// Sample draws one residence time, redrawing until it is finite and positive.
// mu and t0 must already be validated.
func Sample(mu, t0 float64, r Uniform) float64 {
	s := Sampler{r: r}
	return s.Sample(mu, t0)
}

// HazardRate is the instantaneous escape rate mu/(t0 + residence) of a
// particle that has already spent residence time in a state.
func HazardRate(mu, t0, residence float64) float64 {
	return mu / (t0 + residence)
}

// Sampler draws residence times and counts rejected draws. It is owned by a
// single goroutine, like the Uniform it wraps.
type Sampler struct {
	r          Uniform
	rejections int64
}

// NewSampler creates a Sampler that reads uniforms from r.
func NewSampler(r Uniform) *Sampler {
	return &Sampler{r: r}
}

// Sample draws one residence time for a state with shape mu and scale t0.
func (s *Sampler) Sample(mu, t0 float64) float64 {
	for {
		if dt := Variate(mu, t0, s.r.Float64(), s.r.Float64()); Acceptable(dt) {
			return dt
		}
		s.rejections++
	}
}

// Rejections returns the number of draws discarded so far.
func (s *Sampler) Rejections() int64 {
	return s.rejections
}
