package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

func ball(x, y, vx, vy, r float32) *dynamo.Body {
	return &dynamo.Body{
		Position: dynamo.Vec2{X: x, Y: y},
		Velocity: dynamo.Vec2{X: vx, Y: vy},
		Radius:   r,
	}
}

// exchange is the per-pair update written out longhand for expectations.
func exchange(vi, vj dynamo.Vec2) (dynamo.Vec2, dynamo.Vec2) {
	rij := dynamo.Vec2{X: vi.X - vj.X, Y: vi.Y - vj.Y}
	rji := dynamo.Vec2{X: vj.X - vi.X, Y: vj.Y - vi.Y}
	return dynamo.Vec2{X: rji.X * 5, Y: rji.Y * 5}, dynamo.Vec2{X: rij.X * 5, Y: rij.Y * 5}
}

var _ = Describe("PairCollider", func() {
	var collider *physics.PairCollider

	BeforeEach(func() {
		collider = physics.NewPairCollider(physics.ModeOrdered)
	})

	It("never pairs a body with itself", func() {
		b := ball(100, 100, 3, -2, 50)
		collider.ResolvePairs([]*dynamo.Body{b})
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 3, Y: -2}))
		Expect(collider.Detect([]*dynamo.Body{b})).To(BeEmpty())
	})

	It("ignores bodies at exactly the same position", func() {
		a := ball(100, 100, 1, 0, 30)
		b := ball(100, 100, -4, 2, 30)
		bodies := []*dynamo.Body{a, b}

		Expect(collider.Detect(bodies)).To(BeEmpty())
		collider.ResolvePairs(bodies)
		Expect(a.Velocity).To(Equal(dynamo.Vec2{X: 1, Y: 0}))
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: -4, Y: 2}))
	})

	It("does not flag bodies exactly touching", func() {
		a := ball(0, 0, 1, 0, 1)
		b := ball(2, 0, 0, 0, 1)
		Expect(collider.Detect([]*dynamo.Body{a, b})).To(BeEmpty())
	})

	It("reports both orderings of a contact", func() {
		a := ball(0, 0, 0, 0, 1)
		b := ball(1, 0, 0, 0, 1)
		Expect(collider.Detect([]*dynamo.Body{a, b})).To(Equal([]physics.Pair{{I: 0, J: 1}, {I: 1, J: 0}}))
	})

	Context("amplified exchange", func() {
		var a, b *dynamo.Body

		BeforeEach(func() {
			a = ball(10, 10, 1, 0, 0.6)
			b = ball(11, 10, 0, 0, 0.6)
		})

		It("applies the exchange once per ordered pair, second on updated velocities", func() {
			v0, v1 := exchange(dynamo.Vec2{X: 1}, dynamo.Vec2{})
			v1, v0 = exchange(v1, v0)

			collider.ResolvePairs([]*dynamo.Body{a, b})

			Expect(a.Velocity).To(Equal(v0))
			Expect(b.Velocity).To(Equal(v1))
			Expect(a.Velocity).To(Equal(dynamo.Vec2{X: 50, Y: 0}))
			Expect(b.Velocity).To(Equal(dynamo.Vec2{X: -50, Y: 0}))
		})

		It("applies the exchange once in unordered mode", func() {
			collider.Mode = physics.ModeUnordered
			collider.ResolvePairs([]*dynamo.Body{a, b})

			Expect(a.Velocity).To(Equal(dynamo.Vec2{X: -5, Y: 0}))
			Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 5, Y: 0}))
		})

		It("leaves positions alone", func() {
			collider.ResolvePairs([]*dynamo.Body{a, b})
			Expect(a.Position).To(Equal(dynamo.Vec2{X: 10, Y: 10}))
			Expect(b.Position).To(Equal(dynamo.Vec2{X: 11, Y: 10}))
		})
	})

	It("detects every contact before resolving any", func() {
		// a touches b, b touches c, a and c are apart
		a := ball(0, 0, 1, 0, 0.6)
		b := ball(1, 0, 0, 1, 0.6)
		c := ball(2, 0, 0, 0, 0.6)
		bodies := []*dynamo.Body{a, b, c}

		pairs := collider.Detect(bodies)
		Expect(pairs).To(Equal([]physics.Pair{{I: 0, J: 1}, {I: 1, J: 0}, {I: 1, J: 2}, {I: 2, J: 1}}))

		va, vb, vc := a.Velocity, b.Velocity, c.Velocity
		for _, p := range pairs {
			vs := []*dynamo.Vec2{&va, &vb, &vc}
			*vs[p.I], *vs[p.J] = exchange(*vs[p.I], *vs[p.J])
		}

		collider.ResolvePairs(bodies)
		Expect(a.Velocity).To(Equal(va))
		Expect(b.Velocity).To(Equal(vb))
		Expect(c.Velocity).To(Equal(vc))
	})

	It("accepts a custom detector", func() {
		collider.Detector = fixedDetector{pairs: []physics.Pair{{I: 1, J: 0}}}
		a := ball(0, 0, 2, 0, 1)
		b := ball(100, 0, 0, 0, 1)

		collider.ResolvePairs([]*dynamo.Body{a, b})

		// the detector decides; b is "i" here
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 10, Y: 0}))
		Expect(a.Velocity).To(Equal(dynamo.Vec2{X: -10, Y: 0}))
	})
})

var _ = Describe("ParseMode", func() {
	DescribeTable("known modes",
		func(in string, want physics.Mode) {
			m, err := physics.ParseMode(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(want))
			Expect(m.String()).NotTo(BeEmpty())
		},
		Entry("default", "", physics.ModeOrdered),
		Entry("ordered", "ordered", physics.ModeOrdered),
		Entry("unordered", "unordered", physics.ModeUnordered),
	)

	It("rejects unknown modes", func() {
		_, err := physics.ParseMode("sideways")
		Expect(err).To(HaveOccurred())
	})
})

type fixedDetector struct {
	pairs []physics.Pair
}

func (f fixedDetector) Detect(_ []*dynamo.Body, _ physics.Mode, dst []physics.Pair) []physics.Pair {
	return append(dst, f.pairs...)
}
