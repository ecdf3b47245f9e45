package controllers

import (
	"math"

	"github.com/san-kum/fuzzylab/internal/fuzzy"
	"github.com/san-kum/fuzzylab/internal/plant"
)

const (
	DefaultGain      = 10.0
	DefaultAngleSpan = 0.5
	DefaultRateSpan  = 1.0
)

// Normalised torque levels of the stabilizer rule table.
const (
	negBig   = -1.0
	negSmall = -0.5
	zero     = 0.0
	posSmall = 0.5
	posBig   = 1.0
)

// PendulumStabilizer drives a pendulum towards Target with a 3x3 rule table
// over angle error and angular velocity. The rule output lies in [-1, 1]
// and is scaled by Gain into a torque.
type PendulumStabilizer struct {
	*Mamdani
	Gain   float64
	Target float64
}

// triad builds negative/zero/positive categories that cross at half span.
func triad(span float64) (neg, mid, pos *fuzzy.Membership) {
	neg, mid, pos = fuzzy.DefaultMembership(), fuzzy.DefaultMembership(), fuzzy.DefaultMembership()
	_, err := fuzzy.DefineInputsByPeaks(-math.MaxFloat64, []fuzzy.Peak{
		{Fn: neg, X2: -math.MaxFloat64, X3: -span},
		{Fn: mid, X2: 0, X3: 0},
		{Fn: pos, X2: span, X3: math.MaxFloat64},
	}, math.MaxFloat64)
	if err != nil {
		panic(err)
	}
	return neg, mid, pos
}

func NewPendulumStabilizer(gain, target float64) *PendulumStabilizer {
	return NewPendulumStabilizerWithSpans(gain, target, DefaultAngleSpan, DefaultRateSpan)
}

// NewPendulumStabilizerWithSpans sets where the angle and rate categories
// saturate. Spans must be positive.
func NewPendulumStabilizerWithSpans(gain, target, angleSpan, rateSpan float64) *PendulumStabilizer {
	aNeg, aZero, aPos := triad(angleSpan)
	rNeg, rZero, rPos := triad(rateSpan)

	angle := Input{
		Name: "angle_error", Unit: "rad", Min: -2 * angleSpan, Max: 2 * angleSpan,
		Categories: []Category{{"negative", aNeg}, {"zero", aZero}, {"positive", aPos}},
	}
	rate := Input{
		Name: "angular_velocity", Unit: "rad/s", Min: -2 * rateSpan, Max: 2 * rateSpan,
		Categories: []Category{{"negative", rNeg}, {"zero", rZero}, {"positive", rPos}},
	}

	when := func(a, r *fuzzy.Membership) fuzzy.Truth {
		return func() float64 { return fuzzy.And(a.Degree(), r.Degree()) }
	}

	rules := []fuzzy.Rule{
		fuzzy.NewRule(posBig, when(aNeg, rNeg)),
		fuzzy.NewRule(posSmall, when(aNeg, rZero)),
		fuzzy.NewRule(zero, when(aNeg, rPos)),
		fuzzy.NewRule(posSmall, when(aZero, rNeg)),
		fuzzy.NewRule(zero, when(aZero, rZero)),
		fuzzy.NewRule(negSmall, when(aZero, rPos)),
		fuzzy.NewRule(zero, when(aPos, rNeg)),
		fuzzy.NewRule(negSmall, when(aPos, rZero)),
		fuzzy.NewRule(negBig, when(aPos, rPos)),
	}

	return &PendulumStabilizer{
		Mamdani: NewMamdani("pendulum", []Input{angle, rate}, rules),
		Gain:    gain,
		Target:  target,
	}
}

// Compute implements plant.Controller for a [theta, omega] state.
func (p *PendulumStabilizer) Compute(x plant.State, t float64) plant.Control {
	if len(x) < 2 {
		return plant.Control{0}
	}
	u, err := p.Evaluate(x[0]-p.Target, x[1])
	if err != nil {
		return plant.Control{0}
	}
	return plant.Control{p.Gain * u}
}

// GetParams returns tunable parameters for live adjustment.
func (p *PendulumStabilizer) GetParams() map[string]float64 {
	return map[string]float64{
		"gain":   p.Gain,
		"target": p.Target,
	}
}

// SetParam adjusts a stabilizer parameter. Unknown names are ignored.
func (p *PendulumStabilizer) SetParam(name string, value float64) {
	switch name {
	case "gain":
		p.Gain = value
	case "target":
		p.Target = value
	}
}

// None applies zero control; it is the open-loop baseline.
type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{dim: dim}
}

func (n *None) Compute(x plant.State, t float64) plant.Control {
	return make(plant.Control, n.dim)
}
