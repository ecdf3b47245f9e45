package config

import (
	"sort"

	"github.com/san-kum/fuzzylab/internal/sweep"
)

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"tipper": {
		"coarse": preset(func(c *Config) {
			c.Controller = "tipper"
			c.Sweep.Steps = 6
		}),
		"fine": preset(func(c *Config) {
			c.Controller = "tipper"
			c.Sweep.Steps = 101
		}),
	},
	"food_tipper": {
		"coarse": preset(func(c *Config) {
			c.Controller = "food_tipper"
			c.Sweep.Steps = 6
		}),
		"bad_food": preset(func(c *Config) {
			c.Controller = "food_tipper"
			c.Sweep.Axes = []sweep.Axis{
				{Name: "service", Min: 0, Max: 5, Steps: 21},
				{Name: "food", Min: 0, Max: 3, Steps: 1},
			}
		}),
	},
	"pendulum": {
		"gentle": preset(func(c *Config) {
			c.Controller = "pendulum"
			c.Sim.Gain = 2
			c.Sim.Duration = 20
		}),
		"stiff": preset(func(c *Config) {
			c.Controller = "pendulum"
			c.Sim.Gain = 20
		}),
		"offset": preset(func(c *Config) {
			c.Controller = "pendulum"
			c.Sim.Theta = 0
			c.Sim.Target = 0.2
			c.Sim.Gain = 40
		}),
		"kick": preset(func(c *Config) {
			c.Controller = "pendulum"
			c.Sim.Theta = 0
			c.Sim.Omega = 3
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(controller, name string) *Config {
	byName, ok := Presets[controller]
	if !ok {
		return nil
	}
	cfg, ok := byName[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Sweep.Axes = append([]sweep.Axis(nil), cfg.Sweep.Axes...)
	return &c
}

func ListPresets(controller string) []string {
	byName, ok := Presets[controller]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
