package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballpit/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.World.Width != 800 || cfg.World.Height != 600 {
		t.Errorf("expected 800x600 world, got %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Layout.Radius != 20 {
		t.Errorf("expected radius 20, got %v", cfg.Layout.Radius)
	}
	if m, err := cfg.Mode(); err != nil || m != physics.ModeOrdered {
		t.Errorf("expected ordered pair mode by default")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballpit.yaml")
	data := []byte(`
world:
  width: 320
  height: 200
ticks: 50
pair_mode: unordered
layout:
  kind: explicit
  bodies:
    - {x: 10, y: 20, vx: 1, vy: -1, radius: 4}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.World.Width != 320 || cfg.Ticks != 50 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps to survive, got %d", cfg.FPS)
	}
	if m, err := cfg.Mode(); err != nil || m != physics.ModeUnordered {
		t.Errorf("expected unordered mode")
	}
	if len(cfg.Layout.Bodies) != 1 || cfg.Layout.Bodies[0].VY != -1 {
		t.Errorf("bodies not parsed: %+v", cfg.Layout.Bodies)
	}
}

func TestLoadWith_OverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("ticks: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base, err := GetPreset("crowd")
	if err != nil {
		t.Fatal(err)
	}
	count := base.Layout.Count

	cfg, err := LoadWith(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Ticks != 42 {
		t.Errorf("ticks = %d, want 42", cfg.Ticks)
	}
	if cfg.Layout.Count != count {
		t.Errorf("preset count lost: %d, want %d", cfg.Layout.Count, count)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pair_mode: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }},
		{"zero sample", func(c *Config) { c.SampleEvery = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad mode", func(c *Config) { c.PairMode = "both" }},
		{"negative count", func(c *Config) { c.Layout.Count = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ticks = 42
	cfg.SampleEvery = 7

	rc := cfg.RunConfig()
	if rc.Ticks != 42 || rc.SampleEvery != 7 || !rc.ValidateState {
		t.Errorf("unexpected run config %+v", rc)
	}
	opts, err := cfg.SimOptions()
	if err != nil || len(opts) == 0 {
		t.Errorf("expected sim options, got %v", err)
	}
}

func TestMode_Unvalidated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PairMode = "sideways"

	if _, err := cfg.Mode(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Mode: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := cfg.SimOptions(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SimOptions: expected ErrInvalidConfig, got %v", err)
	}
}
