package plot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nvandessel/mlwalk/internal/output"
)

func TestRender_PNG(t *testing.T) {
	tbl := &output.Table{
		Times: []float64{0, 5e5, 1e6},
		Counts: [][]int64{
			{20, 20, 20, 20, 20},
			{10, 25, 30, 25, 10},
			{5, 20, 50, 20, 5},
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, tbl, DefaultOptions()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Render() did not produce a PNG")
	}
}

func TestRender_NothingToPlot(t *testing.T) {
	tests := []struct {
		name string
		tbl  *output.Table
	}{
		{"no rows", &output.Table{}},
		{"single state", &output.Table{Times: []float64{0}, Counts: [][]int64{{3}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.tbl, DefaultOptions()); !errors.Is(err, ErrNothingToPlot) {
				t.Errorf("Render() error = %v, want ErrNothingToPlot", err)
			}
		})
	}
}

func TestRowColor(t *testing.T) {
	if rowColor(0, 1) != palette[len(palette)-1] {
		t.Error("single row should use the last palette color")
	}
	if rowColor(0, 11) != palette[0] {
		t.Error("first of many rows should use the first palette color")
	}
	if rowColor(10, 11) != palette[len(palette)-1] {
		t.Error("last of many rows should use the last palette color")
	}
}
