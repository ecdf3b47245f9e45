package optim

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/fuzzylab/internal/experiment"
)

// ErrNoCandidate indicates that no grid point produced a usable score.
var ErrNoCandidate = errors.New("optim: no candidate could be evaluated")

// Objective scores one parameter set; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	log        *zap.Logger
}

func NewGridSearch(params []string, ranges [][]float64, log *zap.Logger) *GridSearch {
	if log == nil {
		log = zap.NewNop()
	}
	return &GridSearch{paramNames: params, ranges: ranges, log: log}
}

// Search tries every combination and returns the best parameters and score.
// Combinations whose objective fails or returns NaN are skipped.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := objective(ctx, current)
		if err != nil {
			g.log.Debug("candidate failed", zap.Any("params", current), zap.Error(err))
			return nil
		}
		g.log.Debug("candidate scored", zap.Any("params", current), zap.Float64("score", val))
		if !math.IsNaN(val) && val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// MetricObjective scores a closed-loop pendulum run of base with the
// candidate parameters applied, using the named result metric.
func MetricObjective(base experiment.Config, metric string) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg, err := base.WithParams(params)
		if err != nil {
			return 0, err
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return 0, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return 0, err
		}
		if len(result.Errors) > 0 {
			return 0, result.Errors[0]
		}
		return result.Metrics[metric], nil
	}
}
