package metrics

import (
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

// Contacts counts overlapping body pairs, each pair once per tick, summed
// over the run.
type Contacts struct {
	name     string
	total    int
	detector physics.Detector
	pairs    []physics.Pair
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts", detector: physics.BruteForce{}}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(bodies []*dynamo.Body, tick uint64) {
	c.pairs = c.detector.Detect(bodies, physics.ModeUnordered, c.pairs[:0])
	c.total += len(c.pairs)
}

func (c *Contacts) Value() float64 { return float64(c.total) }

func (c *Contacts) Reset() { c.total = 0 }

// WallHits counts body-ticks in which a body sat on or past a boundary line.
type WallHits struct {
	name   string
	bounds dynamo.Bounds
	total  int
}

func NewWallHits(bounds dynamo.Bounds) *WallHits {
	return &WallHits{name: "wall_hits", bounds: bounds}
}

func (w *WallHits) Name() string { return w.name }

func (w *WallHits) Observe(bodies []*dynamo.Body, tick uint64) {
	for _, b := range bodies {
		if physics.Walls(b, w.bounds).Any() {
			w.total++
		}
	}
}

func (w *WallHits) Value() float64 { return float64(w.total) }

func (w *WallHits) Reset() { w.total = 0 }

// Defaults returns a fresh instance of every metric for a world of the given size.
func Defaults(bounds dynamo.Bounds) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewPeakSpeed(),
		NewContacts(),
		NewWallHits(bounds),
		NewContainment(bounds),
	}
}
