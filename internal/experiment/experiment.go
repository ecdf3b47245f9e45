package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/fuzzylab/internal/controllers"
	"github.com/san-kum/fuzzylab/internal/integrators"
	"github.com/san-kum/fuzzylab/internal/metrics"
	"github.com/san-kum/fuzzylab/internal/models"
	"github.com/san-kum/fuzzylab/internal/plant"
)

// Config describes one closed-loop pendulum run.
type Config struct {
	Integrator string
	Controller string // "pendulum" or "none"
	InitState  []float64
	Dt         float64
	Duration   float64
	Gain       float64
	Target     float64
	AngleSpan  float64
	RateSpan   float64
}

func DefaultConfig() Config {
	return Config{
		Integrator: "rk4",
		Controller: "pendulum",
		InitState:  []float64{0.5, 0},
		Dt:         0.01,
		Duration:   10,
		Gain:       controllers.DefaultGain,
		AngleSpan:  controllers.DefaultAngleSpan,
		RateSpan:   controllers.DefaultRateSpan,
	}
}

// WithParams returns a copy of cfg with the tunable fields named in params
// replaced. Recognised names are gain, target, angle_span and rate_span.
func (c Config) WithParams(params map[string]float64) (Config, error) {
	for name, v := range params {
		switch name {
		case "gain":
			c.Gain = v
		case "target":
			c.Target = v
		case "angle_span":
			c.AngleSpan = v
		case "rate_span":
			c.RateSpan = v
		default:
			return c, fmt.Errorf("unknown parameter: %s", name)
		}
	}
	return c, nil
}

type Experiment struct {
	cfg       Config
	simulator *plant.Simulator
}

// New builds the pendulum, integrator, controller and the standard metrics
// (iae, control_effort, peak_control, stability) for cfg.
func New(cfg Config) (*Experiment, error) {
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	var ctrl plant.Controller
	switch cfg.Controller {
	case "pendulum", "":
		if cfg.AngleSpan <= 0 || cfg.RateSpan <= 0 {
			return nil, fmt.Errorf("spans must be positive, got angle %g rate %g", cfg.AngleSpan, cfg.RateSpan)
		}
		ctrl = controllers.NewPendulumStabilizerWithSpans(cfg.Gain, cfg.Target, cfg.AngleSpan, cfg.RateSpan)
	case "none":
		ctrl = controllers.NewNone(1)
	default:
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller)
	}

	sim := plant.New(models.NewPendulum(), integ, ctrl)
	sim.AddMetric(metrics.NewIAE(0, cfg.Target))
	sim.AddMetric(metrics.NewControlEffort())
	sim.AddMetric(metrics.NewPeakControl())
	sim.AddMetric(metrics.NewStability(0, cfg.Target, 0.05))

	return &Experiment{cfg: cfg, simulator: sim}, nil
}

func (e *Experiment) Config() Config {
	return e.cfg
}

func (e *Experiment) Run(ctx context.Context) (*plant.Result, error) {
	x0 := make(plant.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	return e.simulator.Run(ctx, x0, plant.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	})
}
