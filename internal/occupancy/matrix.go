// Package occupancy holds the checkpoint-by-state particle counts produced by
// a run. Row c counts the particles seen in each state when checkpoint c was
// reached; the last row is the terminal row at the end time.
package occupancy

import (
	"fmt"
	"sync"
)

// Recorder receives one occupancy increment per checkpoint a particle reaches.
type Recorder interface {
	Record(row, state int)
}

// Matrix is a rows x states table of counters. It is not safe for
// concurrent use; give each worker its own and combine them with Add.
type Matrix struct {
	rows, states int
	cells        []int64
}

// NewMatrix creates a zeroed matrix.
func NewMatrix(rows, states int) *Matrix {
	return &Matrix{
		rows:   rows,
		states: states,
		cells:  make([]int64, rows*states),
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// States returns the number of columns.
func (m *Matrix) States() int { return m.states }

// Record increments cell [row][state].
func (m *Matrix) Record(row, state int) {
	m.cells[row*m.states+state]++
}

// At returns the count in cell [row][state].
func (m *Matrix) At(row, state int) int64 {
	return m.cells[row*m.states+state]
}

// Set overwrites cell [row][state].
func (m *Matrix) Set(row, state int, v int64) {
	m.cells[row*m.states+state] = v
}

// Row returns a copy of one row.
func (m *Matrix) Row(row int) []int64 {
	out := make([]int64, m.states)
	copy(out, m.cells[row*m.states:(row+1)*m.states])
	return out
}

// RowSum returns the total count of one row.
func (m *Matrix) RowSum(row int) int64 {
	var sum int64
	for _, v := range m.cells[row*m.states : (row+1)*m.states] {
		sum += v
	}
	return sum
}

// Add accumulates other into m. Both must have the same shape.
func (m *Matrix) Add(other *Matrix) error {
	if other.rows != m.rows || other.states != m.states {
		return fmt.Errorf("occupancy: cannot add %dx%d matrix to %dx%d", other.rows, other.states, m.rows, m.states)
	}
	for i, v := range other.cells {
		m.cells[i] += v
	}
	return nil
}

// Equal reports whether m and other have the same shape and counts.
func (m *Matrix) Equal(other *Matrix) bool {
	if other.rows != m.rows || other.states != m.states {
		return false
	}
	for i, v := range m.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Conserved reports the first row whose total differs from n, or -1 when
// every row sums to n.
func (m *Matrix) Conserved(n int64) int {
	for r := 0; r < m.rows; r++ {
		if m.RowSum(r) != n {
			return r
		}
	}
	return -1
}

// Shared is a Matrix guarded by one mutex per row, for recording from many
// goroutines at once.
type Shared struct {
	locks []sync.Mutex
	m     *Matrix
}

// NewShared creates a zeroed shared matrix.
func NewShared(rows, states int) *Shared {
	return &Shared{
		locks: make([]sync.Mutex, rows),
		m:     NewMatrix(rows, states),
	}
}

// Record increments cell [row][state] under the row's lock.
func (s *Shared) Record(row, state int) {
	s.locks[row].Lock()
	s.m.Record(row, state)
	s.locks[row].Unlock()
}

// Snapshot returns a copy of the current counts.
func (s *Shared) Snapshot() *Matrix {
	out := NewMatrix(s.m.rows, s.m.states)
	for r := range s.locks {
		s.locks[r].Lock()
		copy(out.cells[r*s.m.states:(r+1)*s.m.states], s.m.cells[r*s.m.states:(r+1)*s.m.states])
		s.locks[r].Unlock()
	}
	return out
}
