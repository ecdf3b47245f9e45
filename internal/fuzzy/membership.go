package fuzzy

import "math"

// Membership is a trapezoidal membership function with a remembered degree.
//
// The shape rises from x1 to x2, stays at 1 until x3 and falls back to 0 at
// x4. Equal neighbours collapse a ramp into a step (x1 == x2, x3 == x4) or
// the plateau into a triangle peak (x2 == x3). Using -math.MaxFloat64 for x1
// or math.MaxFloat64 for x4 gives an open shoulder.
type Membership struct {
	x1, x2, x3, x4 float64
	fx             float64
}

// NewMembership validates the boundaries and returns a membership whose
// degree is NaN until the first Fuzzify call.
func NewMembership(x1, x2, x3, x4 float64) (*Membership, error) {
	if !(x1 <= x2 && x2 <= x3 && x3 <= x4) {
		return nil, &ShapeError{X1: x1, X2: x2, X3: x3, X4: x4}
	}
	return &Membership{x1: x1, x2: x2, x3: x3, x4: x4, fx: math.NaN()}, nil
}

// MustMembership is like NewMembership but panics on invalid boundaries.
// Intended for literal controller tables.
func MustMembership(x1, x2, x3, x4 float64) *Membership {
	m, err := NewMembership(x1, x2, x3, x4)
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultMembership returns the neutral shape: a single peak at 0 with
// shoulders reaching the representable extremes.
func DefaultMembership() *Membership {
	return &Membership{
		x1: -math.MaxFloat64,
		x2: 0,
		x3: 0,
		x4: math.MaxFloat64,
		fx: math.NaN(),
	}
}

// Fuzzify computes the degree of x, stores it and returns it.
func (m *Membership) Fuzzify(x float64) float64 {
	m.fx = m.Sample(x)
	return m.fx
}

// Sample evaluates the shape at x without storing the degree.
func (m *Membership) Sample(x float64) float64 {
	switch {
	case x <= m.x1:
		return 0
	case x <= m.x2:
		return (x - m.x1) / (m.x2 - m.x1)
	case x <= m.x3:
		return 1
	case x <= m.x4:
		return 1 - (x-m.x3)/(m.x4-m.x3)
	default:
		return 0
	}
}

// Degree returns the degree stored by the last Fuzzify call.
func (m *Membership) Degree() float64 {
	return m.fx
}

func (m *Membership) Bounds() (x1, x2, x3, x4 float64) {
	return m.x1, m.x2, m.x3, m.x4
}

func (m *Membership) setBounds(x1, x2, x3, x4 float64) {
	m.x1, m.x2, m.x3, m.x4 = x1, x2, x3, x4
}
