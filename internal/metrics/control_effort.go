package metrics

import (
	"math"

	"github.com/san-kum/fuzzylab/internal/plant"
)

// ControlEffort is the root mean square of the control vector norm over all
// observed steps.
type ControlEffort struct {
	sumSq float64
	steps int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x plant.State, u plant.Control, t float64) {
	for _, v := range u {
		c.sumSq += v * v
	}
	c.steps++
}

func (c *ControlEffort) Value() float64 {
	if c.steps == 0 {
		return 0
	}
	return math.Sqrt(c.sumSq / float64(c.steps))
}

func (c *ControlEffort) Reset() {
	*c = ControlEffort{}
}

// PeakControl is the largest absolute control component seen.
type PeakControl struct {
	peak float64
}

func NewPeakControl() *PeakControl { return &PeakControl{} }

func (p *PeakControl) Name() string { return "peak_control" }

func (p *PeakControl) Observe(x plant.State, u plant.Control, t float64) {
	for _, v := range u {
		p.peak = math.Max(p.peak, math.Abs(v))
	}
}

func (p *PeakControl) Value() float64 { return p.peak }

func (p *PeakControl) Reset() { p.peak = 0 }
