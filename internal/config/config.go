package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fuzzylab/internal/controllers"
	"github.com/san-kum/fuzzylab/internal/experiment"
	"github.com/san-kum/fuzzylab/internal/sweep"
)

const (
	DefaultSteps    = 21
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultTheta    = 0.5
	DefaultWidth    = 80
	DefaultHeight   = 12
	DefaultSamples  = 200
)

// Config holds CLI settings. Controller shapes and rules are built in code
// and never read from a file.
type Config struct {
	Controller string      `yaml:"controller" toml:"controller"`
	Workers    int         `yaml:"workers" toml:"workers"`
	Sweep      SweepConfig `yaml:"sweep" toml:"sweep"`
	Sim        SimConfig   `yaml:"sim" toml:"sim"`
	Plot       PlotConfig  `yaml:"plot" toml:"plot"`
}

type SweepConfig struct {
	Steps int          `yaml:"steps" toml:"steps"`
	Axes  []sweep.Axis `yaml:"axes,omitempty" toml:"axes,omitempty"`
}

type SimConfig struct {
	Integrator string  `yaml:"integrator" toml:"integrator"`
	Dt         float64 `yaml:"dt" toml:"dt"`
	Duration   float64 `yaml:"duration" toml:"duration"`
	Theta      float64 `yaml:"theta" toml:"theta"`
	Omega      float64 `yaml:"omega" toml:"omega"`
	Gain       float64 `yaml:"gain" toml:"gain"`
	Target     float64 `yaml:"target" toml:"target"`
	AngleSpan  float64 `yaml:"angle_span" toml:"angle_span"`
	RateSpan   float64 `yaml:"rate_span" toml:"rate_span"`
}

type PlotConfig struct {
	Width   int `yaml:"width" toml:"width"`
	Height  int `yaml:"height" toml:"height"`
	Samples int `yaml:"samples" toml:"samples"`
}

func DefaultConfig() *Config {
	return &Config{
		Controller: "tipper",
		Sweep:      SweepConfig{Steps: DefaultSteps},
		Sim: SimConfig{
			Integrator: "rk4",
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Theta:      DefaultTheta,
			Gain:       controllers.DefaultGain,
			AngleSpan:  controllers.DefaultAngleSpan,
			RateSpan:   controllers.DefaultRateSpan,
		},
		Plot: PlotConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Samples: DefaultSamples,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML (by .toml extension) file over the defaults.
// TOML files may not contain unknown keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Experiment converts the simulation section into an experiment config.
func (c *Config) Experiment() experiment.Config {
	return experiment.Config{
		Integrator: c.Sim.Integrator,
		Controller: "pendulum",
		InitState:  []float64{c.Sim.Theta, c.Sim.Omega},
		Dt:         c.Sim.Dt,
		Duration:   c.Sim.Duration,
		Gain:       c.Sim.Gain,
		Target:     c.Sim.Target,
		AngleSpan:  c.Sim.AngleSpan,
		RateSpan:   c.Sim.RateSpan,
	}
}

// Grid returns the configured axes, or one axis per controller input over
// its declared range when none are configured.
func (c *Config) Grid(ctrl controllers.Controller) sweep.Grid {
	if len(c.Sweep.Axes) > 0 {
		return sweep.Grid(c.Sweep.Axes)
	}
	return sweep.AxesFor(ctrl, c.Sweep.Steps)
}
