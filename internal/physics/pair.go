package physics

import (
	"fmt"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// ExchangeGain scales the relative velocity handed to each body of a colliding pair.
const ExchangeGain = 5

// Mode selects how colliding pairs are enumerated.
type Mode int

const (
	// ModeOrdered visits every ordered pair (i, j), i != j. Each contact is
	// resolved twice, once as (i, j) and once as (j, i).
	ModeOrdered Mode = iota
	// ModeUnordered visits i < j only, resolving each contact once.
	ModeUnordered
)

func (m Mode) String() string {
	switch m {
	case ModeOrdered:
		return "ordered"
	case ModeUnordered:
		return "unordered"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config string to a Mode. Empty means ModeOrdered.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "ordered":
		return ModeOrdered, nil
	case "unordered":
		return ModeUnordered, nil
	}
	return 0, fmt.Errorf("unknown pair mode: %s", s)
}

// Pair is a colliding pair of indices into the body slice passed to a Detector.
type Pair struct {
	I, J int
}

// Detector finds colliding pairs. Implementations append to dst and must not
// mutate bodies. A broad-phase implementation must report exactly the pairs
// BruteForce reports for the same mode, in the same order.
type Detector interface {
	Detect(bodies []*dynamo.Body, mode Mode, dst []Pair) []Pair
}

// Overlapping is the narrow-phase test. Bodies at the exact same position are
// never considered colliding.
func Overlapping(a, b *dynamo.Body) bool {
	if a.Position.Equal(b.Position) {
		return false
	}
	return a.Position.Sub(b.Position).Len() < a.Radius+b.Radius
}

// BruteForce checks every pair, O(n²).
type BruteForce struct{}

func (BruteForce) Detect(bodies []*dynamo.Body, mode Mode, dst []Pair) []Pair {
	n := len(bodies)
	for i := 0; i < n; i++ {
		start := 0
		if mode == ModeUnordered {
			start = i + 1
		}
		for j := start; j < n; j++ {
			if i == j {
				continue
			}
			if Overlapping(bodies[i], bodies[j]) {
				dst = append(dst, Pair{I: i, J: j})
			}
		}
	}
	return dst
}

// PairCollider resolves body-body contacts for one tick.
type PairCollider struct {
	Mode     Mode
	Detector Detector

	pairs []Pair
}

func NewPairCollider(mode Mode) *PairCollider {
	return &PairCollider{Mode: mode, Detector: BruteForce{}}
}

// Detect returns the colliding pairs without touching velocities. The slice is
// reused by the next call.
func (c *PairCollider) Detect(bodies []*dynamo.Body) []Pair {
	d := c.Detector
	if d == nil {
		d = BruteForce{}
	}
	c.pairs = d.Detect(bodies, c.Mode, c.pairs[:0])
	return c.pairs
}

// ResolvePairs detects every contact first, then applies the exchange to each
// pair in detection order:
//
//	v_i = (v_j - v_i) * ExchangeGain
//	v_j = (v_i - v_j) * ExchangeGain
//
// with both right-hand sides taken before the assignment. In ModeOrdered the
// (j, i) entry sees the velocities written by (i, j).
func (c *PairCollider) ResolvePairs(bodies []*dynamo.Body) {
	for _, p := range c.Detect(bodies) {
		bi, bj := bodies[p.I], bodies[p.J]
		rij := bi.Velocity.Sub(bj.Velocity)
		rji := bj.Velocity.Sub(bi.Velocity)
		bi.Velocity = rji.Scale(ExchangeGain)
		bj.Velocity = rij.Scale(ExchangeGain)
	}
}
