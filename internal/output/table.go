// Package output reads and writes the delimited occupancy dump: one row per
// checkpoint followed by the terminal row, each holding the row's time and
// then one count per state.
//
//	0,200,200,...,200
//	100000,187,203,...,211
//	...
//	1e+06,176,190,...,240
package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nvandessel/mlwalk/internal/models"
	"github.com/nvandessel/mlwalk/internal/occupancy"
)

// ErrMalformed reports a dump that does not parse as an occupancy table.
var ErrMalformed = errors.New("malformed occupancy table")

// Table is an occupancy dump in memory. The last row is the terminal row.
type Table struct {
	Times  []float64
	Counts [][]int64
}

// NewTable pairs each matrix row with its schedule time.
func NewTable(sched models.Schedule, m *occupancy.Matrix) (*Table, error) {
	if m.Rows() != sched.Rows() {
		return nil, fmt.Errorf("matrix has %d rows, schedule has %d", m.Rows(), sched.Rows())
	}
	t := &Table{
		Times:  make([]float64, m.Rows()),
		Counts: make([][]int64, m.Rows()),
	}
	for r := 0; r < m.Rows(); r++ {
		t.Times[r] = sched.RowTime(r)
		t.Counts[r] = m.Row(r)
	}
	return t, nil
}

// States returns the number of count columns.
func (t *Table) States() int {
	if len(t.Counts) == 0 {
		return 0
	}
	return len(t.Counts[0])
}

// FormatTime renders a row time the way the dump stores it: the shortest
// representation that round-trips, with an exponent for large values.
func FormatTime(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write encodes t as comma-delimited text.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	record := make([]string, t.States()+1)
	for r, counts := range t.Counts {
		record = record[:len(counts)+1]
		record[0] = FormatTime(t.Times[r])
		for s, c := range counts {
			record[s+1] = strconv.FormatInt(c, 10)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", r, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes t to path atomically via a temp file and rename.
func WriteFile(path string, t *Table) error {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing occupancy temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming occupancy file: %w", err)
	}
	return nil
}

// Read parses a dump produced by Write. Every row must have the same number
// of columns.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}

	t := &Table{
		Times:  make([]float64, len(records)),
		Counts: make([][]int64, len(records)),
	}
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: row %d has no counts", ErrMalformed, i)
		}
		t.Times[i], err = strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d time: %v", ErrMalformed, i, err)
		}
		t.Counts[i] = make([]int64, len(rec)-1)
		for s, field := range rec[1:] {
			c, err := strconv.ParseInt(field, 10, 64)
			if err != nil || c < 0 {
				return nil, fmt.Errorf("%w: row %d state %d: %q", ErrMalformed, i, s, field)
			}
			t.Counts[i][s] = c
		}
	}
	return t, nil
}

// ReadFile reads and parses the dump at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening occupancy file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
