package randsrc

import (
	"testing"
)

func TestSource_Float64Range(t *testing.T) {
	s := New(42)
	for i := 0; i < 100000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want value in [0, 1)", v)
		}
	}
}

func TestSource_UniformRange(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
	}{
		{"unit", 0, 1},
		{"shifted", 2.5, 3},
		{"negative", -10, -1},
		{"wide", -1e6, 1e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(7)
			for i := 0; i < 10000; i++ {
				v := s.Uniform(tt.low, tt.high)
				if v < tt.low || v >= tt.high {
					t.Fatalf("Uniform(%v, %v) = %v, out of range", tt.low, tt.high, v)
				}
			}
		})
	}
}

func TestSource_UniformPanicsOnEmptyRange(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
	}{
		{"equal bounds", 1, 1},
		{"inverted bounds", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Uniform(%v, %v) did not panic", tt.low, tt.high)
				}
			}()
			New(1).Uniform(tt.low, tt.high)
		})
	}
}

func TestSource_Deterministic(t *testing.T) {
	a := New(1234)
	b := New(1234)
	for i := 0; i < 1000; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestSource_ReseedRestartsStream(t *testing.T) {
	s := New(99)
	first := make([]float64, 10)
	for i := range first {
		first[i] = s.Uniform(0, 1)
	}

	s.Reseed(99)
	for i, want := range first {
		if got := s.Uniform(0, 1); got != want {
			t.Fatalf("draw %d after Reseed = %v, want %v", i, got, want)
		}
	}
}

func TestParticleSeed(t *testing.T) {
	seen := make(map[uint64]int)
	for i := 0; i < 10000; i++ {
		seed := ParticleSeed(5, i)
		if prev, ok := seen[seed]; ok {
			t.Fatalf("ParticleSeed(5, %d) collides with index %d", i, prev)
		}
		seen[seed] = i
	}

	if ParticleSeed(5, 3) != ParticleSeed(5, 3) {
		t.Error("ParticleSeed is not a pure function")
	}
	if ParticleSeed(5, 3) == ParticleSeed(6, 3) {
		t.Error("ParticleSeed ignores the base seed")
	}
}

func TestRandomSeed(t *testing.T) {
	seed, err := RandomSeed()
	if err != nil {
		t.Fatalf("RandomSeed() error = %v", err)
	}
	if seed == 0 {
		t.Error("RandomSeed() returned 0")
	}
}
