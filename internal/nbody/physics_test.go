package nbody_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/nbody"
)

// unitParams drops the display scales so orbital formulas apply directly.
func unitParams() nbody.Params {
	p := nbody.DefaultParams()
	p.G = 1
	p.SizeScale = 1
	p.DistanceScale = 1
	return p
}

func mustBody(radius, density float64, pos, vel mgl64.Vec3) nbody.Body {
	b, err := nbody.NewBody(radius, density, pos, vel)
	Expect(err).NotTo(HaveOccurred())
	return b
}

var _ = Describe("Force", func() {
	It("is symmetric in the masses", func() {
		for _, d := range []float64{1.0001, 2, 10, 1e4} {
			Expect(nbody.Force(3e5, 7e2, d)).To(Equal(nbody.Force(7e2, 3e5, d)))
		}
	})

	It("strictly decreases with distance above the floor", func() {
		prev := nbody.Force(1e6, 1e6, 1.01)
		for d := 1.5; d < 100; d += 0.5 {
			f := nbody.Force(1e6, 1e6, d)
			Expect(f).To(BeNumerically("<", prev))
			prev = f
		}
	})

	It("is zero at or below unit distance", func() {
		for _, d := range []float64{0, 0.25, 0.999, 1} {
			Expect(nbody.Force(1e9, 1e9, d)).To(BeZero())
		}
	})
})

var _ = Describe("PairAcceleration", func() {
	p := nbody.DefaultParams()

	It("obeys Newton's third law", func() {
		pairs := [][2]nbody.Body{
			{mustBody(300, 100, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{}), mustBody(3000, 10, mgl64.Vec3{120, -40, 7}, mgl64.Vec3{})},
			{mustBody(1, 1, mgl64.Vec3{-5, 2, 9}, mgl64.Vec3{}), mustBody(50, 2, mgl64.Vec3{300, 300, -300}, mgl64.Vec3{})},
		}
		for _, pair := range pairs {
			a, b := pair[0], pair[1]
			accA, accB := p.PairAcceleration(a, b)
			fa := accA.Mul(a.Mass())
			fb := accB.Mul(-b.Mass())
			for k := 0; k < 3; k++ {
				Expect(fa[k]).To(BeNumerically("~", fb[k], math.Abs(fb[k])*1e-12))
			}
			Expect(accA.Len()).To(BeNumerically(">", 0))
		}
	})

	It("is zero for coincident bodies", func() {
		a := mustBody(10, 1, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{})
		accA, accB := p.PairAcceleration(a, a)
		Expect(accA).To(Equal(mgl64.Vec3{}))
		Expect(accB).To(Equal(mgl64.Vec3{}))
	})

	Context("with the zero collision policy", func() {
		a := mustBody(100, 1, mgl64.Vec3{}, mgl64.Vec3{})
		contact := 200 * p.SizeScale

		It("drops the force inside contact distance", func() {
			b := mustBody(100, 1, mgl64.Vec3{contact * 0.5, 0, 0}, mgl64.Vec3{})
			accA, accB := p.PairAcceleration(a, b)
			Expect(accA.Len()).To(BeZero())
			Expect(accB.Len()).To(BeZero())
		})

		It("never spikes around the contact boundary", func() {
			at := mustBody(100, 1, mgl64.Vec3{contact, 0, 0}, mgl64.Vec3{})
			inside := mustBody(100, 1, mgl64.Vec3{contact * (1 - 1e-9), 0, 0}, mgl64.Vec3{})
			outside := mustBody(100, 1, mgl64.Vec3{contact * (1 + 1e-9), 0, 0}, mgl64.Vec3{})

			accAt, _ := p.PairAcceleration(a, at)
			accIn, _ := p.PairAcceleration(a, inside)
			accOut, _ := p.PairAcceleration(a, outside)

			Expect(math.IsInf(accAt.Len(), 0) || math.IsNaN(accAt.Len())).To(BeFalse())
			Expect(accIn.Len()).To(BeNumerically("<=", accAt.Len()))
			Expect(accOut.Len()).To(BeNumerically("~", accAt.Len(), accAt.Len()*1e-6))
		})
	})
})

var _ = Describe("World", func() {
	It("closes a circular two-body orbit", func() {
		p := unitParams()
		const (
			centralMass = 1000.0
			orbit       = 10.0
		)
		central := mustBody(1, centralMass/(4.0/3.0*math.Pi), mgl64.Vec3{}, mgl64.Vec3{})
		v := math.Sqrt(p.G * centralMass / orbit)
		start := mgl64.Vec3{orbit, 0, 0}
		satellite := mustBody(0.01, 1, start, mgl64.Vec3{0, 0, v})

		w, err := nbody.NewWorld(p, central, satellite)
		Expect(err).NotTo(HaveOccurred())
		w.Prime()

		const steps = 4000
		period := 2 * math.Pi * orbit / v
		dt := period / steps
		for i := 0; i < steps; i++ {
			w.Step(dt)
		}

		end := w.Body(1).Position
		Expect(end.Sub(start).Len()).To(BeNumerically("<", 0.05))
		Expect(w.Body(1).Position.Sub(w.Body(0).Position).Len()).To(BeNumerically("~", orbit, 0.05))
	})

	It("keeps coincident bodies finite", func() {
		a := mustBody(5, 2, mgl64.Vec3{4, 4, 4}, mgl64.Vec3{})
		w, err := nbody.NewWorld(nbody.DefaultParams(), a, a)
		Expect(err).NotTo(HaveOccurred())

		w.Step(36.45)

		Expect(w.IsValid()).To(BeTrue())
		for i := 0; i < w.Len(); i++ {
			Expect(w.Body(i).Velocity).To(Equal(mgl64.Vec3{}))
			Expect(w.Body(i).Acceleration).To(Equal(mgl64.Vec3{}))
		}
	})

	It("treats a zero-duration tick as a no-op", func() {
		w, err := nbody.NewWorld(nbody.DefaultParams(),
			mustBody(3000, 10, mgl64.Vec3{-275, 13, 10}, mgl64.Vec3{0.1, 0, 0}),
			mustBody(3000, 10, mgl64.Vec3{175, -13, 150}, mgl64.Vec3{}),
		)
		Expect(err).NotTo(HaveOccurred())
		w.Step(10)
		before := w.Bodies()

		w.Step(0)

		Expect(w.Bodies()).To(Equal(before))
		Expect(w.Steps()).To(Equal(1))
	})

	It("passes over a single body without pair work", func() {
		w, err := nbody.NewWorld(nbody.DefaultParams(), mustBody(1, 1, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}))
		Expect(err).NotTo(HaveOccurred())

		w.Step(2)

		Expect(w.Body(0).Position).To(Equal(mgl64.Vec3{2, 0, 0}))
		Expect(w.Body(0).Acceleration).To(Equal(mgl64.Vec3{}))
	})
})
