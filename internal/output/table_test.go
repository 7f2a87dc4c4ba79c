package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/mlwalk/internal/models"
	"github.com/nvandessel/mlwalk/internal/occupancy"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	sched := models.EvenSchedule(1e6, 2)
	m := occupancy.NewMatrix(sched.Rows(), 3)
	m.Set(0, 0, 4)
	m.Set(0, 1, 4)
	m.Set(0, 2, 4)
	m.Set(1, 0, 2)
	m.Set(1, 1, 7)
	m.Set(1, 2, 3)
	m.Set(2, 2, 12)

	tbl, err := NewTable(sched, m)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTable(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "0,4,4,4\n500000,2,7,3\n1e+06,0,0,12\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestNewTable_RowMismatch(t *testing.T) {
	sched := models.EvenSchedule(10, 2)
	if _, err := NewTable(sched, occupancy.NewMatrix(2, 3)); err == nil {
		t.Error("NewTable() should reject a matrix with the wrong row count")
	}
}

func TestWriteFileThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	want := sampleTable(t)

	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got.Times) != 3 || got.Times[2] != 1e6 || got.Times[1] != 5e5 {
		t.Errorf("Times = %v", got.Times)
	}
	if got.States() != 3 || got.Counts[1][1] != 7 || got.Counts[2][2] != 12 {
		t.Errorf("Counts = %v", got.Counts)
	}
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"time only", "0\n"},
		{"bad time", "abc,1,2\n"},
		{"bad count", "0,1,x\n"},
		{"negative count", "0,1,-2\n"},
		{"ragged rows", "0,1,2\n5,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Read(%q) error = %v, want ErrMalformed", tt.input, err)
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadFile() should fail for a missing file")
	}
}

func TestFormatTime(t *testing.T) {
	tests := map[float64]string{
		0:      "0",
		100000: "100000",
		1e6:    "1e+06",
		2.5:    "2.5",
	}
	for v, want := range tests {
		if got := FormatTime(v); got != want {
			t.Errorf("FormatTime(%v) = %q, want %q", v, got, want)
		}
	}
}
