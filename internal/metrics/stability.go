package metrics

import (
	"math"

	"github.com/san-kum/fuzzylab/internal/plant"
)

// Stability is the fraction of steps where component Index stayed within
// Threshold of Target.
type Stability struct {
	Index      int
	Target     float64
	Threshold  float64
	violations int
	samples    int
}

func NewStability(index int, target, threshold float64) *Stability {
	return &Stability{Index: index, Target: target, Threshold: threshold}
}

func (s *Stability) Name() string {
	return "stability"
}

func (s *Stability) Observe(x plant.State, u plant.Control, t float64) {
	if s.Index >= len(x) {
		return
	}
	s.samples++
	if math.Abs(x[s.Index]-s.Target) > s.Threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
