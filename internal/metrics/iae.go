package metrics

import (
	"math"

	"github.com/san-kum/fuzzylab/internal/plant"
)

// IAE integrates |x[Index] - Target| over time with the rectangle rule.
type IAE struct {
	Index  int
	Target float64
	sum    float64
	prevT  float64
	prevE  float64
	first  bool
}

func NewIAE(index int, target float64) *IAE {
	return &IAE{Index: index, Target: target, first: true}
}

func (m *IAE) Name() string {
	return "iae"
}

func (m *IAE) Observe(x plant.State, u plant.Control, t float64) {
	if m.Index >= len(x) {
		return
	}
	e := math.Abs(x[m.Index] - m.Target)
	if !m.first {
		m.sum += m.prevE * (t - m.prevT)
	}
	m.prevE, m.prevT, m.first = e, t, false
}

func (m *IAE) Value() float64 {
	return m.sum
}

func (m *IAE) Reset() {
	m.sum, m.prevT, m.prevE = 0, 0, 0
	m.first = true
}
