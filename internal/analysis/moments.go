// Package analysis summarizes occupancy tables as moments of the state
// distribution at each checkpoint.
package analysis

import (
	"github.com/nvandessel/mlwalk/internal/output"
	"gonum.org/v1/gonum/stat"
)

// RowSummary describes the state distribution of one row.
type RowSummary struct {
	Time  float64 `json:"time"`
	Total int64   `json:"total"`

	// Mean is the count-weighted mean state index.
	Mean float64 `json:"mean"`

	// Variance is the population variance of the state index.
	Variance float64 `json:"variance"`

	// Drift is Mean minus the first row's Mean.
	Drift float64 `json:"drift"`
}

// Summarize computes one RowSummary per table row. Rows without particles
// report zero moments.
func Summarize(t *output.Table) []RowSummary {
	states := make([]float64, t.States())
	for s := range states {
		states[s] = float64(s)
	}

	out := make([]RowSummary, len(t.Counts))
	weights := make([]float64, len(states))
	for r, counts := range t.Counts {
		var total int64
		for s, c := range counts {
			weights[s] = float64(c)
			total += c
		}
		out[r] = RowSummary{Time: t.Times[r], Total: total}
		if total == 0 {
			continue
		}
		out[r].Mean, out[r].Variance = stat.PopMeanVariance(states, weights)
	}
	if len(out) > 0 {
		base := out[0].Mean
		for r := range out {
			out[r].Drift = out[r].Mean - base
		}
	}
	return out
}
