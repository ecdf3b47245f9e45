package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/fuzzylab/internal/plant"
)

type oscillator struct{}

func (o *oscillator) Derive(x plant.State, u plant.Control, t float64) plant.State {
	return plant.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int   { return 2 }
func (o *oscillator) ControlDim() int { return 0 }

func integrate(integ plant.Integrator, steps int, dt float64) plant.State {
	x := plant.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(&oscillator{}, x, plant.Control{}, float64(i)*dt, dt)
	}
	return x
}

func TestRK4Accuracy(t *testing.T) {
	dt, steps := 0.01, 100
	x := integrate(NewRK4(), steps, dt)

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerIsLessAccurateThanRK4(t *testing.T) {
	dt, steps := 0.01, 100
	exact := math.Cos(1.0)

	eulerErr := math.Abs(integrate(NewEuler(), steps, dt)[0] - exact)
	rk4Err := math.Abs(integrate(NewRK4(), steps, dt)[0] - exact)

	if eulerErr <= rk4Err {
		t.Errorf("expected euler error %.2e to exceed rk4 error %.2e", eulerErr, rk4Err)
	}
	if eulerErr > 0.05 {
		t.Errorf("euler error too large: %.4f", eulerErr)
	}
}

func TestOrderOfAccuracy(t *testing.T) {
	exact := math.Cos(1.0)
	errAt := func(name string) float64 {
		integ, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		return math.Abs(integrate(integ, 100, 0.01)[0] - exact)
	}

	euler, heun, midpoint, rk4 := errAt("euler"), errAt("heun"), errAt("midpoint"), errAt("rk4")
	if heun >= euler || midpoint >= euler {
		t.Errorf("second order methods should beat euler: euler %.2e heun %.2e midpoint %.2e", euler, heun, midpoint)
	}
	if rk4 >= heun || rk4 >= midpoint {
		t.Errorf("rk4 should beat second order methods: rk4 %.2e heun %.2e midpoint %.2e", rk4, heun, midpoint)
	}
}

func TestTableauConsistency(t *testing.T) {
	for name, tab := range tableaux {
		sum := 0.0
		for _, b := range tab.B {
			sum += b
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("%s: weights sum to %v", name, sum)
		}
		for i, row := range tab.A {
			if len(row) != i {
				t.Errorf("%s: row %d has %d entries, want %d", name, i, len(row), i)
			}
		}
	}
}

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"euler", "heun", "midpoint", "rk4"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"euler", "midpoint", "heun", "rk4", ""} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
	if _, err := New("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
