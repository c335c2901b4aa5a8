package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

var _ = Describe("WallCollider", func() {
	var (
		walls  physics.WallCollider
		bounds dynamo.Bounds
	)

	BeforeEach(func() {
		walls = physics.WallCollider{}
		bounds = dynamo.Bounds{Width: 800, Height: 600}
	})

	body := func(x, y, vx, vy, r float32) *dynamo.Body {
		return &dynamo.Body{
			Position: dynamo.Vec2{X: x, Y: y},
			Velocity: dynamo.Vec2{X: vx, Y: vy},
			Radius:   r,
		}
	}

	It("inverts x velocity on the min-x line without moving the body", func() {
		b := body(20, 300, -3, 0, 20)
		walls.Resolve(b, bounds)
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 3, Y: 0}))
		Expect(b.Position).To(Equal(dynamo.Vec2{X: 20, Y: 300}))
	})

	It("inverts both components in a corner", func() {
		b := body(20, 20, -3, -4, 20)
		walls.Resolve(b, bounds)
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 3, Y: 4}))
	})

	DescribeTable("boundary lines",
		func(x, y float32, want dynamo.Vec2) {
			b := body(x, y, 2, 5, 10)
			walls.Resolve(b, bounds)
			Expect(b.Velocity).To(Equal(want))
		},
		Entry("mid-field", float32(400), float32(300), dynamo.Vec2{X: 2, Y: 5}),
		Entry("max-y line", float32(400), float32(590), dynamo.Vec2{X: 2, Y: -5}),
		Entry("past max-y", float32(400), float32(700), dynamo.Vec2{X: 2, Y: -5}),
		Entry("min-y line", float32(400), float32(10), dynamo.Vec2{X: 2, Y: -5}),
		Entry("past min-y", float32(400), float32(-50), dynamo.Vec2{X: 2, Y: -5}),
		Entry("min-x line", float32(10), float32(300), dynamo.Vec2{X: -2, Y: 5}),
		Entry("max-x line", float32(790), float32(300), dynamo.Vec2{X: -2, Y: 5}),
		Entry("just inside max-x", float32(789.5), float32(300), dynamo.Vec2{X: 2, Y: 5}),
		Entry("max-x/max-y corner", float32(795), float32(595), dynamo.Vec2{X: -2, Y: -5}),
	)

	It("flips on every call while the body stays past a line", func() {
		b := body(-5, 300, 1, 0, 10)
		walls.Resolve(b, bounds)
		Expect(b.Velocity.X).To(Equal(float32(-1)))
		walls.Resolve(b, bounds)
		Expect(b.Velocity.X).To(Equal(float32(1)))
	})

	It("flips twice, a no-op, when the world is narrower than the body", func() {
		b := body(5, 5, 1, 1, 10)
		walls.Resolve(b, dynamo.Bounds{Width: 8, Height: 8})
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 1, Y: 1}))
	})

	It("reports hits through Walls", func() {
		h := physics.Walls(body(10, 10, 0, 0, 10), bounds)
		Expect(h.MinX).To(BeTrue())
		Expect(h.MinY).To(BeTrue())
		Expect(h.MaxX).To(BeFalse())
		Expect(h.MaxY).To(BeFalse())
		Expect(h.Any()).To(BeTrue())

		Expect(physics.Walls(body(400, 300, 0, 0, 10), bounds).Any()).To(BeFalse())
	})

	It("resolves every body in ResolveAll", func() {
		a := body(10, 300, -1, 0, 10)
		b := body(400, 300, -1, 0, 10)
		walls.ResolveAll([]*dynamo.Body{a, b}, bounds)
		Expect(a.Velocity.X).To(Equal(float32(1)))
		Expect(b.Velocity.X).To(Equal(float32(-1)))
	})
})
