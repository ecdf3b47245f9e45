package models

import (
	"math"
	"testing"

	"github.com/san-kum/fuzzylab/internal/plant"
)

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(plant.State{0, 0}, plant.Control{0}, 0)

	if math.Abs(dx[0]) > 1e-10 {
		t.Errorf("expected zero velocity at equilibrium, got %f", dx[0])
	}
	if math.Abs(dx[1]) > 1e-10 {
		t.Errorf("expected zero acceleration at equilibrium, got %f", dx[1])
	}
}

func TestPendulumDimensions(t *testing.T) {
	p := NewPendulum()

	if p.StateDim() != 2 {
		t.Errorf("expected state dim 2, got %d", p.StateDim())
	}
	if p.ControlDim() != 1 {
		t.Errorf("expected control dim 1, got %d", p.ControlDim())
	}
}

func TestPendulumGravity(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(plant.State{math.Pi / 2, 0}, plant.Control{0}, 0)

	expected := -p.Gravity / p.Length
	if math.Abs(dx[1]-expected) > 1e-6 {
		t.Errorf("expected acceleration %f, got %f", expected, dx[1])
	}
}

func TestPendulumTorque(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(plant.State{0, 0}, plant.Control{2}, 0)
	if math.Abs(dx[1]-2) > 1e-10 {
		t.Errorf("expected torque to accelerate by 2, got %f", dx[1])
	}

	dx = p.Derive(plant.State{0, 0}, nil, 0)
	if dx[1] != 0 {
		t.Errorf("expected no acceleration without control, got %f", dx[1])
	}
}

func TestPendulumEnergy(t *testing.T) {
	p := NewPendulum()

	if e := p.Energy(plant.State{0, 0}); e != 0 {
		t.Errorf("expected zero energy at rest, got %f", e)
	}

	expected := 9.81 * (1 - math.Cos(math.Pi/4))
	if e := p.Energy(plant.State{math.Pi / 4, 0}); math.Abs(e-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, e)
	}
}
