package metrics

import "github.com/san-kum/ballpit/internal/dynamo"

// Containment is the fraction of observed ticks in which every body lay inside
// the world rectangle. Walls never clamp positions, so fast bodies can tunnel out.
type Containment struct {
	name       string
	bounds     dynamo.Bounds
	violations int
	samples    int
}

func NewContainment(bounds dynamo.Bounds) *Containment {
	return &Containment{
		name:   "containment",
		bounds: bounds,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []*dynamo.Body, tick uint64) {
	c.samples++
	for _, b := range bodies {
		if !c.bounds.Contains(b.Position) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
