// Package sweep evaluates a controller over a grid of crisp inputs.
//
// Controllers keep their membership degrees as mutable state, so the
// sweep never shares one between goroutines: every worker builds its own
// controller from a [controllers.Factory] and owns a contiguous block of
// grid points.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fuzzylab/internal/controllers"
)

// ErrInvalidAxis indicates an axis with no points or an inverted range.
var ErrInvalidAxis = errors.New("sweep: invalid axis")

// Axis samples one input at Steps evenly spaced points from Min to Max.
type Axis struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Min   float64 `json:"min" yaml:"min" toml:"min"`
	Max   float64 `json:"max" yaml:"max" toml:"max"`
	Steps int     `json:"steps" yaml:"steps" toml:"steps"`
}

func (a Axis) Value(i int) float64 {
	if a.Steps <= 1 {
		return a.Min
	}
	return a.Min + (a.Max-a.Min)*float64(i)/float64(a.Steps-1)
}

func (a Axis) Values() []float64 {
	v := make([]float64, a.Steps)
	for i := range v {
		v[i] = a.Value(i)
	}
	return v
}

// Grid is the cartesian product of its axes, last axis varying fastest.
type Grid []Axis

func (g Grid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("empty grid: %w", ErrInvalidAxis)
	}
	for _, a := range g {
		if a.Steps < 1 {
			return fmt.Errorf("axis %q: %d steps: %w", a.Name, a.Steps, ErrInvalidAxis)
		}
		if a.Max < a.Min {
			return fmt.Errorf("axis %q: max %g below min %g: %w", a.Name, a.Max, a.Min, ErrInvalidAxis)
		}
	}
	return nil
}

func (g Grid) Size() int {
	n := 1
	for _, a := range g {
		n *= a.Steps
	}
	return n
}

// Point returns the inputs of grid point i.
func (g Grid) Point(i int) []float64 {
	p := make([]float64, len(g))
	for k := len(g) - 1; k >= 0; k-- {
		p[k] = g[k].Value(i % g[k].Steps)
		i /= g[k].Steps
	}
	return p
}

// AxesFor builds a grid over the declared range of every controller input.
func AxesFor(ctrl controllers.Controller, steps int) Grid {
	inputs := ctrl.Inputs()
	g := make(Grid, len(inputs))
	for i, in := range inputs {
		g[i] = Axis{Name: in.Name, Min: in.Min, Max: in.Max, Steps: steps}
	}
	return g
}

type Sample struct {
	Inputs []float64 `json:"inputs"`
	Output float64   `json:"output"`
}

type Options struct {
	Workers int
	Logger  *zap.Logger
}

// Run evaluates the controller at every grid point and returns the samples
// in grid order.
func Run(ctx context.Context, factory controllers.Factory, grid Grid, opts Options) ([]Sample, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	n := grid.Size()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	log.Debug("starting sweep", zap.Int("points", n), zap.Int("workers", workers))

	samples := make([]Sample, n)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		start, end := w*chunk, (w+1)*chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			ctrl := factory()
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				in := grid.Point(i)
				out, err := ctrl.Evaluate(in...)
				if err != nil {
					return fmt.Errorf("point %v: %w", in, err)
				}
				samples[i] = Sample{Inputs: in, Output: out}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug("sweep finished", zap.Int("points", n))
	return samples, nil
}

// Outputs extracts the output column of samples.
func Outputs(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Output
	}
	return out
}
