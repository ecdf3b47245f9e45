// Package integrators provides explicit Runge-Kutta steppers described by
// their Butcher tableaux.
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/fuzzylab/internal/plant"
)

// Tableau holds the coefficients of an explicit method: stage i reads
// A[i][0..i-1], is evaluated at t+C[i]*dt, and is weighted by B[i].
type Tableau struct {
	A [][]float64
	B []float64
	C []float64
}

var (
	EulerTableau = Tableau{
		A: [][]float64{{}},
		B: []float64{1},
		C: []float64{0},
	}
	MidpointTableau = Tableau{
		A: [][]float64{{}, {0.5}},
		B: []float64{0, 1},
		C: []float64{0, 0.5},
	}
	HeunTableau = Tableau{
		A: [][]float64{{}, {1}},
		B: []float64{0.5, 0.5},
		C: []float64{0, 1},
	}
	RK4Tableau = Tableau{
		A: [][]float64{{}, {0.5}, {0, 0.5}, {0, 0, 1}},
		B: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
		C: []float64{0, 0.5, 0.5, 1},
	}
)

var tableaux = map[string]Tableau{
	"euler":    EulerTableau,
	"midpoint": MidpointTableau,
	"heun":     HeunTableau,
	"rk4":      RK4Tableau,
}

// Explicit steps a system with one tableau. Stage buffers are reused
// between steps, so an Explicit belongs to one simulation at a time.
type Explicit struct {
	tab     Tableau
	stages  []plant.State
	scratch plant.State
}

func NewExplicit(tab Tableau) *Explicit {
	return &Explicit{tab: tab}
}

func NewEuler() *Explicit { return NewExplicit(EulerTableau) }
func NewRK4() *Explicit   { return NewExplicit(RK4Tableau) }

func (e *Explicit) grow(n int) {
	if len(e.scratch) == n && len(e.stages) == len(e.tab.B) {
		return
	}
	e.stages = make([]plant.State, len(e.tab.B))
	for i := range e.stages {
		e.stages[i] = make(plant.State, n)
	}
	e.scratch = make(plant.State, n)
}

// Step holds u constant across the stages.
func (e *Explicit) Step(dyn plant.System, x plant.State, u plant.Control, t, dt float64) plant.State {
	n := len(x)
	e.grow(n)

	for i := range e.tab.B {
		copy(e.scratch, x)
		for j, a := range e.tab.A[i] {
			if a == 0 {
				continue
			}
			for k := 0; k < n; k++ {
				e.scratch[k] += dt * a * e.stages[j][k]
			}
		}
		copy(e.stages[i], dyn.Derive(e.scratch, u, t+e.tab.C[i]*dt))
	}

	next := make(plant.State, n)
	copy(next, x)
	for i, b := range e.tab.B {
		if b == 0 {
			continue
		}
		for k := 0; k < n; k++ {
			next[k] += dt * b * e.stages[i][k]
		}
	}
	return next
}

// New returns a fresh integrator for name; "" means rk4.
func New(name string) (plant.Integrator, error) {
	if name == "" {
		name = "rk4"
	}
	tab, ok := tableaux[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return NewExplicit(tab), nil
}

func Names() []string {
	names := make([]string, 0, len(tableaux))
	for name := range tableaux {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
