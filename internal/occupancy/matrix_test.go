package occupancy

import (
	"sync"
	"testing"
)

func TestMatrix_RecordAndRow(t *testing.T) {
	m := NewMatrix(3, 4)
	m.Record(0, 1)
	m.Record(0, 1)
	m.Record(2, 3)

	if got := m.At(0, 1); got != 2 {
		t.Errorf("At(0, 1) = %d, want 2", got)
	}
	if got := m.RowSum(0); got != 2 {
		t.Errorf("RowSum(0) = %d, want 2", got)
	}
	if got := m.RowSum(1); got != 0 {
		t.Errorf("RowSum(1) = %d, want 0", got)
	}

	row := m.Row(2)
	row[3] = 99
	if m.At(2, 3) != 1 {
		t.Error("Row() must return a copy")
	}
}

func TestMatrix_Add(t *testing.T) {
	a := NewMatrix(2, 2)
	b := NewMatrix(2, 2)
	a.Record(0, 0)
	b.Record(0, 0)
	b.Record(1, 1)

	if err := a.Add(b); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if a.At(0, 0) != 2 || a.At(1, 1) != 1 {
		t.Errorf("after Add: [0][0]=%d [1][1]=%d, want 2, 1", a.At(0, 0), a.At(1, 1))
	}

	if err := a.Add(NewMatrix(3, 2)); err == nil {
		t.Error("Add() should reject mismatched shapes")
	}
}

func TestMatrix_Equal(t *testing.T) {
	a := NewMatrix(2, 3)
	b := NewMatrix(2, 3)
	if !a.Equal(b) {
		t.Error("zero matrices should be equal")
	}
	b.Set(1, 2, 5)
	if a.Equal(b) {
		t.Error("matrices with different counts should differ")
	}
	if a.Equal(NewMatrix(3, 2)) {
		t.Error("matrices with different shapes should differ")
	}
}

func TestMatrix_Conserved(t *testing.T) {
	m := NewMatrix(2, 2)
	m.Record(0, 0)
	m.Record(0, 1)
	m.Record(1, 1)

	if got := m.Conserved(2); got != 1 {
		t.Errorf("Conserved(2) = %d, want 1", got)
	}
	m.Record(1, 0)
	if got := m.Conserved(2); got != -1 {
		t.Errorf("Conserved(2) = %d, want -1", got)
	}
}

func TestShared_ConcurrentRecord(t *testing.T) {
	const (
		workers   = 8
		perWorker = 5000
	)
	s := NewShared(3, 5)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Record(i%3, w%5)
			}
		}(w)
	}
	wg.Wait()

	snap := s.Snapshot()
	var total int64
	for r := 0; r < snap.Rows(); r++ {
		total += snap.RowSum(r)
	}
	if total != workers*perWorker {
		t.Errorf("total = %d, want %d (lost updates)", total, workers*perWorker)
	}
}

func TestRecorderImplementations(t *testing.T) {
	var _ Recorder = NewMatrix(1, 1)
	var _ Recorder = NewShared(1, 1)
}
