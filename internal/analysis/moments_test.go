package analysis

import (
	"math"
	"testing"

	"github.com/nvandessel/mlwalk/internal/output"
)

func TestSummarize(t *testing.T) {
	tbl := &output.Table{
		Times: []float64{0, 5, 10},
		Counts: [][]int64{
			{10, 10, 10, 10},
			{0, 0, 40, 0},
			{0, 0, 0, 0},
		},
	}

	got := Summarize(tbl)
	if len(got) != 3 {
		t.Fatalf("len(Summarize()) = %d, want 3", len(got))
	}

	tests := []struct {
		row      int
		total    int64
		mean     float64
		variance float64
		drift    float64
	}{
		{0, 40, 1.5, 1.25, 0},
		{1, 40, 2, 0, 0.5},
		{2, 0, 0, 0, -1.5},
	}
	for _, tt := range tests {
		r := got[tt.row]
		if r.Total != tt.total {
			t.Errorf("row %d Total = %d, want %d", tt.row, r.Total, tt.total)
		}
		if math.Abs(r.Mean-tt.mean) > 1e-12 {
			t.Errorf("row %d Mean = %v, want %v", tt.row, r.Mean, tt.mean)
		}
		if math.Abs(r.Variance-tt.variance) > 1e-12 {
			t.Errorf("row %d Variance = %v, want %v", tt.row, r.Variance, tt.variance)
		}
		if math.Abs(r.Drift-tt.drift) > 1e-12 {
			t.Errorf("row %d Drift = %v, want %v", tt.row, r.Drift, tt.drift)
		}
	}
	if got[2].Time != 10 {
		t.Errorf("row 2 Time = %v, want 10", got[2].Time)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(&output.Table{}); len(got) != 0 {
		t.Errorf("Summarize(empty) = %v, want no rows", got)
	}
}
