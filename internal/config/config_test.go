package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fuzzylab/internal/controllers"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Controller != "tipper" {
		t.Errorf("expected controller tipper, got %s", cfg.Controller)
	}
	if cfg.Sim.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Sim.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Sweep.Steps <= 1 {
		t.Error("sweep needs more than one step")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	data := []byte("controller: food_tipper\nsweep:\n  steps: 5\nsim:\n  gain: 12.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Controller != "food_tipper" || cfg.Sweep.Steps != 5 || cfg.Sim.Gain != 12.5 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Sim.Dt != DefaultDt {
		t.Errorf("expected default dt to survive, got %f", cfg.Sim.Dt)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.toml")
	data := []byte("controller = \"pendulum\"\n\n[sim]\ntheta = 0.25\nintegrator = \"euler\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Controller != "pendulum" || cfg.Sim.Theta != 0.25 || cfg.Sim.Integrator != "euler" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_TOMLUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.toml")
	if err := os.WriteFile(path, []byte("rules = \"if service is poor\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown TOML key")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"lab.yaml", "lab.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := GetPreset("food_tipper", "bad_food")

			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if len(loaded.Sweep.Axes) != 2 || loaded.Sweep.Axes[1].Max != 3 {
				t.Errorf("axes lost in round trip: %+v", loaded.Sweep.Axes)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "stiff")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sim.Gain != 20 {
		t.Errorf("expected gain 20, got %f", cfg.Sim.Gain)
	}

	cfg.Sim.Gain = 1
	if GetPreset("pendulum", "stiff").Sim.Gain != 20 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("pendulum", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "stiff") != nil {
		t.Error("expected nil for nonexistent controller")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("pendulum")
	if len(presets) != 4 || presets[0] != "gentle" {
		t.Errorf("unexpected presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent controller")
	}
}

func TestExperiment(t *testing.T) {
	cfg := GetPreset("pendulum", "offset")
	exp := cfg.Experiment()

	if exp.Target != 0.2 || exp.Gain != 40 || exp.InitState[0] != 0 {
		t.Errorf("unexpected experiment config %+v", exp)
	}
}

func TestGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sweep.Steps = 7

	g := cfg.Grid(controllers.NewTipper())
	if len(g) != 1 || g[0].Steps != 7 || g[0].Max != 5 {
		t.Errorf("unexpected default grid %+v", g)
	}

	g = GetPreset("food_tipper", "bad_food").Grid(controllers.NewFoodTipper())
	if g.Size() != 21 {
		t.Errorf("expected configured grid of 21 points, got %d", g.Size())
	}
}
