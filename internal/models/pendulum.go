package models

import (
	"math"

	"github.com/san-kum/fuzzylab/internal/plant"
)

// Pendulum is a damped rigid pendulum driven by a torque at the pivot.
// State is [theta, omega], theta measured from the downward rest position.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) ControlDim() int {
	return 1
}

func (p *Pendulum) Derive(x plant.State, u plant.Control, t float64) plant.State {
	theta := x[0]
	omega := x[1]

	torque := 0.0
	if len(u) > 0 {
		torque = u[0]
	}
	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta) + torque) / (p.Mass * p.Length * p.Length)

	return plant.State{omega, alpha}
}

// Energy is kinetic plus potential energy relative to the rest position.
func (p *Pendulum) Energy(x plant.State) float64 {
	ke := 0.5 * p.Mass * p.Length * p.Length * x[1] * x[1]
	pe := p.Mass * p.Gravity * p.Length * (1 - math.Cos(x[0]))
	return ke + pe
}
