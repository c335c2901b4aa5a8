package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jinzhu/copier"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]*Config{
	"classic": {
		World: worldDefault, Seed: 1, Ticks: 1200, SampleEvery: 1, PairMode: "ordered", ValidateState: true, FPS: 60,
		Layout: LayoutConfig{Kind: "explicit", Bodies: []BodyConfig{
			{X: 400, Y: 300, VX: 1, VY: 1, Radius: 20},
		}},
	},
	"pair": {
		World: worldDefault, Seed: 1, Ticks: 60, SampleEvery: 1, PairMode: "ordered", ValidateState: true, FPS: 30,
		Layout: LayoutConfig{Kind: "explicit", Bodies: []BodyConfig{
			{X: 380, Y: 300, VX: 1, VY: 0, Radius: 20},
			{X: 420, Y: 300, VX: 0, VY: 0, Radius: 20},
		}},
	},
	"corner": {
		World: worldDefault, Seed: 1, Ticks: 600, SampleEvery: 1, PairMode: "ordered", ValidateState: true, FPS: 60,
		Layout: LayoutConfig{Kind: "explicit", Bodies: []BodyConfig{
			{X: 100, Y: 100, VX: -2, VY: -2, Radius: 20},
		}},
	},
	"crowd": {
		World: worldDefault, Seed: 7, Ticks: 600, SampleEvery: 10, PairMode: "ordered", ValidateState: true, FPS: 60,
		Layout: LayoutConfig{Kind: "random", Count: 40, Radius: 12, MaxSpeed: 2},
	},
	"calm": {
		World: worldDefault, Seed: 7, Ticks: 600, SampleEvery: 10, PairMode: "unordered", ValidateState: true, FPS: 60,
		Layout: LayoutConfig{Kind: "random", Count: 40, Radius: 12, MaxSpeed: 2},
	},
	"lattice": {
		World: worldDefault, Seed: 3, Ticks: 600, SampleEvery: 10, PairMode: "ordered", ValidateState: true, FPS: 60,
		Layout: LayoutConfig{Kind: "grid", Count: 48, Radius: 10, MaxSpeed: 1.5, Gap: 40},
	},
	"drift": {
		World: worldDefault, Seed: 11, Ticks: 900, SampleEvery: 10, PairMode: "ordered", ValidateState: true, FPS: 60,
		Layout: LayoutConfig{Kind: "field", Count: 30, Radius: 10, MaxSpeed: 1.5, NoiseScale: 0.004},
	},
}

var worldDefault = DefaultConfig().World

// GetPreset returns a deep copy of the named preset, so callers may edit it.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := &Config{}
	if err := copier.CopyWithOption(cfg, p, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
