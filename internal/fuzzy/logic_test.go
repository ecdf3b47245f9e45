package fuzzy

import (
	"errors"
	"math"
	"testing"
)

func TestCombinators(t *testing.T) {
	values := []float64{0, 0.1, 0.25, 0.5, 0.75, 1}

	for _, a := range values {
		for _, b := range values {
			if got := And(a, b); got != math.Min(a, b) {
				t.Errorf("And(%v, %v) = %v", a, b, got)
			}
			if got := Or(a, b); got != math.Max(a, b) {
				t.Errorf("Or(%v, %v) = %v", a, b, got)
			}
		}
		if got := Not(a); math.Abs(got-(1-a)) > 1e-15 {
			t.Errorf("Not(%v) = %v", a, got)
		}
		if got := Not(Not(a)); math.Abs(got-a) > 1e-15 {
			t.Errorf("Not(Not(%v)) = %v", a, got)
		}
	}
}

func TestNot_OutOfRangePassesThrough(t *testing.T) {
	if got := Not(1.5); got != -0.5 {
		t.Errorf("Not(1.5) = %v, want -0.5", got)
	}
	if got := Not(-1); got != 2 {
		t.Errorf("Not(-1) = %v, want 2", got)
	}
}

func TestAndAllOrAll(t *testing.T) {
	tests := []struct {
		name    string
		degrees []float64
		min     float64
		max     float64
	}{
		{"single", []float64{0.4}, 0.4, 0.4},
		{"pair", []float64{0.2, 0.9}, 0.2, 0.9},
		{"many", []float64{0.6, 0.3, 1, 0.45}, 0.3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, err := AndAll(tt.degrees...)
			if err != nil {
				t.Fatalf("AndAll: %v", err)
			}
			if lo != tt.min {
				t.Errorf("AndAll = %v, want %v", lo, tt.min)
			}

			hi, err := OrAll(tt.degrees...)
			if err != nil {
				t.Fatalf("OrAll: %v", err)
			}
			if hi != tt.max {
				t.Errorf("OrAll = %v, want %v", hi, tt.max)
			}
		})
	}
}

func TestAndAllOrAll_Empty(t *testing.T) {
	if _, err := AndAll(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("AndAll() error = %v, want ErrEmptyInput", err)
	}
	if _, err := OrAll(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("OrAll() error = %v, want ErrEmptyInput", err)
	}
}
