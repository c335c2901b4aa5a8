package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// KineticEnergy reports the total ½|v|² of the latest observed tick, taking
// every body as unit mass.
type KineticEnergy struct {
	name    string
	current float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bodies []*dynamo.Body, tick uint64) {
	total := 0.0
	for _, b := range bodies {
		total += 0.5 * float64(b.Velocity.LenSq())
	}
	e.current = total
}

func (e *KineticEnergy) Value() float64 { return e.current }

func (e *KineticEnergy) Reset() { e.current = 0 }

// PeakSpeed reports the highest body speed seen during the run.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(bodies []*dynamo.Body, tick uint64) {
	for _, b := range bodies {
		p.peak = math.Max(p.peak, float64(b.Speed()))
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
