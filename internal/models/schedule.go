package models

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"sort"
)

// ErrInvalidSchedule reports checkpoint times that are negative, unordered or
// not finite, or an end time that is not finite and non-negative.
var ErrInvalidSchedule = errors.New("invalid checkpoint schedule")

// Schedule lists the checkpoint times at which occupancy is recorded, plus
// the end time of the walk. Row len(Times) of an occupancy matrix is the
// terminal row, recorded when a particle's clock passes End.
type Schedule struct {
	Times []float64 `json:"times" yaml:"times"`
	End   float64   `json:"end" yaml:"end"`
}

// EvenSchedule returns nout checkpoints evenly spaced in [0, end):
// Times[i] = end*i/nout.
func EvenSchedule(end float64, nout int) Schedule {
	times := make([]float64, nout)
	for i := range times {
		times[i] = end * (float64(i) / float64(nout))
	}
	return Schedule{Times: times, End: end}
}

// Validate checks that times are finite, non-negative, strictly increasing
// and no later than End, so every walk reaches every checkpoint.
func (s Schedule) Validate() error {
	if math.IsNaN(s.End) || math.IsInf(s.End, 0) || s.End < 0 {
		return fmt.Errorf("%w: end time %v", ErrInvalidSchedule, s.End)
	}
	for i, t := range s.Times {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return fmt.Errorf("%w: checkpoint %d at %v", ErrInvalidSchedule, i, t)
		}
		if i > 0 && t <= s.Times[i-1] {
			return fmt.Errorf("%w: checkpoint %d at %v does not follow %v", ErrInvalidSchedule, i, t, s.Times[i-1])
		}
		if t > s.End {
			return fmt.Errorf("%w: checkpoint %d at %v is after end time %v", ErrInvalidSchedule, i, t, s.End)
		}
	}
	return nil
}

// Rows returns the number of occupancy rows: one per checkpoint plus the
// terminal row.
func (s Schedule) Rows() int {
	return len(s.Times) + 1
}

// Terminal returns the index of the terminal row.
func (s Schedule) Terminal() int {
	return len(s.Times)
}

// RowTime returns the time labelling row r: the checkpoint time, or End for
// the terminal row.
func (s Schedule) RowTime(r int) float64 {
	if r == s.Terminal() {
		return s.End
	}
	return s.Times[r]
}

// First returns the index of the first checkpoint strictly later than t, or
// len(Times) if there is none.
func (s Schedule) First(t float64) int {
	return sort.Search(len(s.Times), func(i int) bool { return s.Times[i] > t })
}

// AtOrAfter returns the index of the first checkpoint at or later than t, or
// len(Times) if there is none.
func (s Schedule) AtOrAfter(t float64) int {
	return sort.Search(len(s.Times), func(i int) bool { return s.Times[i] >= t })
}

// From yields checkpoint indices starting at next for as long as the
// checkpoint time is <= t.
func (s Schedule) From(next int, t float64) iter.Seq[int] {
	return func(yield func(int) bool) {
		for c := next; c < len(s.Times) && s.Times[c] <= t; c++ {
			if !yield(c) {
				return
			}
		}
	}
}

// Crossed yields, in ascending order, the indices of checkpoints whose time
// lies in (before, after]. The sequence is lazy and may be ranged over again.
func (s Schedule) Crossed(before, after float64) iter.Seq[int] {
	return s.From(s.First(before), after)
}
