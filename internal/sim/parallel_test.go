package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func seededFactory(seed int64) (*Simulation, error) {
	s, err := New(testBounds)
	if err != nil {
		return nil, err
	}
	if _, err := s.Spawn(dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: float32(seed), Y: 0}, 10); err != nil {
		return nil, err
	}
	return s, nil
}

func TestEnsemble_SeedOrder(t *testing.T) {
	cfg := RunConfig{Ticks: 10, SampleEvery: 10, ValidateState: true}
	seeds := Seeds(1, 4)

	results, err := NewEnsemble(seededFactory, cfg, nil).Run(context.Background(), seeds)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(seeds) {
		t.Fatalf("got %d results, want %d", len(results), len(seeds))
	}
	for i, r := range results {
		want := 100 + 10*float32(seeds[i])
		if got := r.Final().Bodies[0].Position.X; got != want {
			t.Errorf("seed %d: x = %v, want %v", seeds[i], got, want)
		}
	}
}

func TestEnsemble_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	factory := func(seed int64) (*Simulation, error) {
		if seed == 3 {
			return nil, boom
		}
		return seededFactory(seed)
	}

	_, err := NewEnsemble(factory, DefaultRunConfig(), nil).Run(context.Background(), Seeds(1, 4))
	if !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
}
