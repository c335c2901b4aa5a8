package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

// finalX reports the x position of the first body after the run.
type finalX struct{ x float64 }

func (f *finalX) Name() string { return "final_x" }
func (f *finalX) Observe(bodies []*dynamo.Body, tick uint64) {
	f.x = float64(bodies[0].Position.X)
}
func (f *finalX) Value() float64 { return f.x }
func (f *finalX) Reset()         { f.x = 0 }

func build(params map[string]float64) (*sim.Simulation, error) {
	s, err := sim.New(dynamo.Bounds{Width: 1000, Height: 1000})
	if err != nil {
		return nil, err
	}
	v := dynamo.Vec2{X: float32(params["speed"]), Y: 0}
	if _, err := s.Spawn(dynamo.Vec2{X: 500, Y: 500}, v, float32(params["radius"])); err != nil {
		return nil, err
	}
	s.AddMetric(&finalX{})
	return s, nil
}

var cfg = sim.RunConfig{Ticks: 10, SampleEvery: 10}

func TestGridSearchMinimize(t *testing.T) {
	g := NewGridSearch([]string{"radius", "speed"}, [][]float64{{5, 10}, {-2, 1, 3}})

	best, trials, err := g.Search(context.Background(), build, cfg, "final_x")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(trials) != 6 {
		t.Errorf("got %d trials, want 6", len(trials))
	}
	if best.Params["speed"] != -2 || best.Value != 480 {
		t.Errorf("best = %+v, want speed -2 at x 480", best)
	}
	if trials[0].Params["radius"] != 5 || trials[5].Params["radius"] != 10 {
		t.Error("trials not in grid order")
	}
}

func TestGridSearchMaximize(t *testing.T) {
	g := NewGridSearch([]string{"radius", "speed"}, [][]float64{{5}, {-2, 1, 3}})
	g.Maximize = true

	best, _, err := g.Search(context.Background(), build, cfg, "final_x")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best.Params["speed"] != 3 || best.Value != 530 {
		t.Errorf("best = %+v, want speed 3 at x 530", best)
	}
}

func TestGridSearchErrors(t *testing.T) {
	ctx := context.Background()

	if _, _, err := NewGridSearch(nil, nil).Search(ctx, build, cfg, "final_x"); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}

	g := NewGridSearch([]string{"radius", "speed"}, [][]float64{{0}, {1}})
	if _, _, err := g.Search(ctx, build, cfg, "final_x"); !errors.Is(err, dynamo.ErrInvalidRadius) {
		t.Errorf("expected build error, got %v", err)
	}

	g = NewGridSearch([]string{"radius", "speed"}, [][]float64{{5}, {1}})
	if _, _, err := g.Search(ctx, build, cfg, "nope"); err == nil {
		t.Error("expected unknown metric error")
	}
}
