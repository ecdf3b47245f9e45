package scenario

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/fuzzylab/internal/experiment"
	"github.com/san-kum/fuzzylab/internal/plant"
)

const DefaultBand = 0.05

// MonteCarloConfig perturbs every component of Base.InitState uniformly
// within ±Perturbation. A trial is stable when the final angle is within
// Band of the target and the final angular velocity within Band of zero.
type MonteCarloConfig struct {
	Base         experiment.Config
	Perturbation float64
	NumTrials    int
	Band         float64
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	InitState  plant.State
	FinalState plant.State
	Stable     bool
}

// RunMonteCarlo executes the trials sequentially. A zero seed uses the clock.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig, log *zap.Logger) ([]MonteCarloResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	band := cfg.Band
	if band <= 0 {
		band = DefaultBand
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		initState := make(plant.State, len(cfg.Base.InitState))
		for i, v := range cfg.Base.InitState {
			initState[i] = v + (rng.Float64()-0.5)*2*cfg.Perturbation
		}

		expCfg := cfg.Base
		expCfg.InitState = initState

		exp, err := experiment.New(expCfg)
		if err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		final := result.Final()
		stable := len(result.Errors) == 0 && len(final) >= 2 &&
			math.Abs(final[0]-expCfg.Target) <= band &&
			math.Abs(final[1]) <= band

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			InitState:  initState,
			FinalState: final,
			Stable:     stable,
		})

		if (trial+1)%10 == 0 {
			log.Debug("monte carlo progress", zap.Int("done", trial+1), zap.Int("trials", cfg.NumTrials))
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
