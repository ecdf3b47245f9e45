package fuzzy

import (
	"errors"
	"testing"
)

func assertBounds(t *testing.T, m *Membership, want [4]float64) {
	t.Helper()
	x1, x2, x3, x4 := m.Bounds()
	if got := [4]float64{x1, x2, x3, x4}; got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestDefineInputsByPeaks(t *testing.T) {
	f0, f1 := DefaultMembership(), DefaultMembership()

	fns, err := DefineInputsByPeaks(-4, []Peak{
		{Fn: f0, X2: -3, X3: -2},
		{Fn: f1, X2: 0, X3: 1},
	}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fns) != 2 || fns[0] != f0 || fns[1] != f1 {
		t.Fatal("expected the same memberships back in peak order")
	}
	assertBounds(t, f0, [4]float64{-4, -3, -2, 0})
	assertBounds(t, f1, [4]float64{-2, 0, 1, 7})
}

func TestDefineInputsByPeaks_Single(t *testing.T) {
	f := DefaultMembership()
	if _, err := DefineInputsByPeaks(0, []Peak{{Fn: f, X2: 2, X3: 3}}, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertBounds(t, f, [4]float64{0, 2, 3, 10})
}

func TestDefineInputsByPeaks_DoesNotFuzzify(t *testing.T) {
	f := DefaultMembership()
	f.Fuzzify(0)
	if _, err := DefineInputsByPeaks(-1, []Peak{{Fn: f, X2: 2, X3: 3}}, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Degree() != 1 {
		t.Errorf("degree changed to %v", f.Degree())
	}
}

func TestDefineInputsByPeaks_Empty(t *testing.T) {
	fns, err := DefineInputsByPeaks(0, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fns) != 0 {
		t.Errorf("expected no memberships, got %d", len(fns))
	}
}

func TestDefineInputsByPeaks_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		peaks func(a, b *Membership) []Peak
		end   float64
	}{
		{"descending", -10, func(a, b *Membership) []Peak {
			return []Peak{{Fn: a, X2: 2, X3: 3}, {Fn: b, X2: 0, X3: 1}}
		}, 10},
		{"inverted plateau", -10, func(a, b *Membership) []Peak {
			return []Peak{{Fn: a, X2: 3, X3: 2}}
		}, 10},
		{"overlapping plateaus", -10, func(a, b *Membership) []Peak {
			return []Peak{{Fn: a, X2: 0, X3: 5}, {Fn: b, X2: 3, X3: 6}}
		}, 10},
		{"before start valley", 1, func(a, b *Membership) []Peak {
			return []Peak{{Fn: a, X2: 0, X3: 2}}
		}, 10},
		{"after end valley", -10, func(a, b *Membership) []Peak {
			return []Peak{{Fn: a, X2: 0, X3: 12}}
		}, 10},
		{"nil membership", -10, func(a, b *Membership) []Peak {
			return []Peak{{Fn: a, X2: 0, X3: 1}, {X2: 2, X3: 3}}
		}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := DefaultMembership(), DefaultMembership()
			_, err := DefineInputsByPeaks(tt.start, tt.peaks(a, b), tt.end)
			if !errors.Is(err, ErrUnorderedPeaks) {
				t.Fatalf("expected ErrUnorderedPeaks, got %v", err)
			}
			def := DefaultMembership()
			dx1, dx2, dx3, dx4 := def.Bounds()
			assertBounds(t, a, [4]float64{dx1, dx2, dx3, dx4})
		})
	}
}

func TestDefineInputsByPeaks_PartitionOfUnity(t *testing.T) {
	low, mid, high := DefaultMembership(), DefaultMembership(), DefaultMembership()
	g := NewGroup(low, mid, high)

	if _, err := DefineInputsByPeaks(0, []Peak{
		{Fn: low, X2: 0, X3: 1},
		{Fn: mid, X2: 3, X3: 4},
		{Fn: high, X2: 6, X3: 8},
	}, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < 80; i++ {
		x := float64(i) / 10
		g.Fuzzify(x)
		sum := low.Degree() + mid.Degree() + high.Degree()
		if sum < 1-1e-9 || sum > 1+1e-9 {
			t.Errorf("x=%v: degrees sum to %v, want 1", x, sum)
		}
	}
}
