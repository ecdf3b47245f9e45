// Package scenario runs scripted checks against the registered controllers
// and the closed-loop pendulum.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fuzzylab/internal/controllers"
	"github.com/san-kum/fuzzylab/internal/experiment"
)

const DefaultTolerance = 1e-6

var ErrInvalidStep = errors.New("scenario: invalid step")

// Scenario is a named list of steps loaded from YAML.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step either evaluates a controller at Inputs or, when Simulate is set,
// runs the pendulum with Params applied and reads Metric. Expect is checked
// within Tolerance; Max is an upper bound.
type Step struct {
	Name       string             `yaml:"name"`
	Controller string             `yaml:"controller"`
	Inputs     []float64          `yaml:"inputs"`
	Simulate   bool               `yaml:"simulate"`
	Integrator string             `yaml:"integrator"`
	InitState  []float64          `yaml:"init_state"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	Params     map[string]float64 `yaml:"params"`
	Metric     string             `yaml:"metric"`
	Expect     *float64           `yaml:"expect"`
	Tolerance  float64            `yaml:"tolerance"`
	Max        *float64           `yaml:"max"`
}

// Outcome is the value a step produced and whether it met its expectation.
type Outcome struct {
	Step  int
	Name  string
	Value float64
	Pass  bool
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// RunScenario executes every step in order and stops at the first step that
// cannot be run. A failed expectation is not an error.
func RunScenario(ctx context.Context, sc *Scenario, reg *controllers.Registry, log *zap.Logger) ([]Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	outcomes := make([]Outcome, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		log.Debug("running step", zap.String("scenario", sc.Name), zap.String("step", name))

		var (
			value float64
			err   error
		)
		if step.Simulate {
			value, err = simulate(ctx, step)
		} else {
			value, err = evaluate(reg, step)
		}
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}

		o := Outcome{Step: i + 1, Name: name, Value: value, Pass: step.check(value)}
		if !o.Pass {
			log.Warn("step failed", zap.String("step", name), zap.Float64("value", value))
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func evaluate(reg *controllers.Registry, step Step) (float64, error) {
	if step.Controller == "" {
		return 0, fmt.Errorf("no controller: %w", ErrInvalidStep)
	}
	ctrl, err := reg.Get(step.Controller)
	if err != nil {
		return 0, err
	}
	return ctrl.Evaluate(step.Inputs...)
}

func simulate(ctx context.Context, step Step) (float64, error) {
	if step.Metric == "" {
		return 0, fmt.Errorf("simulate needs a metric: %w", ErrInvalidStep)
	}

	cfg := experiment.DefaultConfig()
	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	if step.Controller != "" {
		cfg.Controller = step.Controller
	}
	if step.InitState != nil {
		cfg.InitState = step.InitState
	}
	if step.Dt > 0 {
		cfg.Dt = step.Dt
	}
	if step.Duration > 0 {
		cfg.Duration = step.Duration
	}
	cfg, err := cfg.WithParams(step.Params)
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

	v, ok := result.Metrics[step.Metric]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q: %w", step.Metric, ErrInvalidStep)
	}
	return v, nil
}

func (s Step) check(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if s.Expect != nil {
		tol := s.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		if math.Abs(v-*s.Expect) > tol {
			return false
		}
	}
	if s.Max != nil && v > *s.Max {
		return false
	}
	return true
}

// Passed reports whether every outcome passed.
func Passed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if !o.Pass {
			return false
		}
	}
	return true
}
