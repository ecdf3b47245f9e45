package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fuzzylab/internal/controllers"
)

func tipper() controllers.Controller     { return controllers.NewTipper() }
func foodTipper() controllers.Controller { return controllers.NewFoodTipper() }

func TestAxisValues(t *testing.T) {
	a := Axis{Name: "x", Min: 0, Max: 5, Steps: 6}
	v := a.Values()
	for i, want := range []float64{0, 1, 2, 3, 4, 5} {
		if math.Abs(v[i]-want) > 1e-12 {
			t.Errorf("value %d = %v, want %v", i, v[i], want)
		}
	}

	if got := (Axis{Min: 2, Max: 9, Steps: 1}).Value(0); got != 2 {
		t.Errorf("single step axis = %v, want 2", got)
	}
}

func TestGridPoint(t *testing.T) {
	g := Grid{
		{Name: "a", Min: 0, Max: 1, Steps: 2},
		{Name: "b", Min: 10, Max: 12, Steps: 3},
	}

	if g.Size() != 6 {
		t.Fatalf("expected size 6, got %d", g.Size())
	}

	expected := [][]float64{{0, 10}, {0, 11}, {0, 12}, {1, 10}, {1, 11}, {1, 12}}
	for i, want := range expected {
		got := g.Point(i)
		if got[0] != want[0] || got[1] != want[1] {
			t.Errorf("Point(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{"empty", Grid{}},
		{"zero steps", Grid{{Name: "x", Min: 0, Max: 1, Steps: 0}}},
		{"inverted", Grid{{Name: "x", Min: 1, Max: 0, Steps: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grid.Validate(); !errors.Is(err, ErrInvalidAxis) {
				t.Errorf("expected ErrInvalidAxis, got %v", err)
			}
		})
	}
}

func TestRun_MatchesSequential(t *testing.T) {
	grid := Grid{
		{Name: "service", Min: 0, Max: 5, Steps: 11},
		{Name: "food", Min: 0, Max: 10, Steps: 11},
	}

	samples, err := Run(context.Background(), foodTipper, grid, Options{Workers: 4})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(samples) != grid.Size() {
		t.Fatalf("expected %d samples, got %d", grid.Size(), len(samples))
	}

	ref := controllers.NewFoodTipper()
	for i, s := range samples {
		want, err := ref.Evaluate(grid.Point(i)...)
		if err != nil {
			t.Fatal(err)
		}
		if s.Output != want {
			t.Errorf("sample %d %v: got %v, want %v", i, s.Inputs, s.Output, want)
		}
	}
}

func TestRun_Tipper(t *testing.T) {
	grid := Grid{{Name: "service", Min: 3.5, Max: 3.5, Steps: 1}}

	samples, err := Run(context.Background(), tipper, grid, Options{})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(samples) != 1 || math.Abs(samples[0].Output-17.5) > 1e-9 {
		t.Errorf("unexpected samples %v", samples)
	}
}

func TestRun_InputCountMismatch(t *testing.T) {
	grid := Grid{{Name: "service", Min: 0, Max: 5, Steps: 3}}

	_, err := Run(context.Background(), foodTipper, grid, Options{Workers: 2})
	if !errors.Is(err, controllers.ErrInputCount) {
		t.Errorf("expected ErrInputCount, got %v", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid := Grid{{Name: "service", Min: 0, Max: 5, Steps: 100}}
	if _, err := Run(ctx, tipper, grid, Options{Workers: 2}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAxesFor(t *testing.T) {
	g := AxesFor(controllers.NewFoodTipper(), 5)
	if len(g) != 2 {
		t.Fatalf("expected 2 axes, got %d", len(g))
	}
	if g[0].Name != "service" || g[0].Max != 5 || g[1].Name != "food" || g[1].Max != 10 {
		t.Errorf("unexpected axes %+v", g)
	}
}

func TestOutputs(t *testing.T) {
	out := Outputs([]Sample{{Output: 1}, {Output: 2}})
	if len(out) != 2 || out[1] != 2 {
		t.Errorf("unexpected outputs %v", out)
	}
}
