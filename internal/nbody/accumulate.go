package nbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// below this many bodies the pair loop always runs on one goroutine
const minParallelBodies = 64

// Accumulate is the second velocity-Verlet half. It sums every unordered
// pair's contribution into a fresh acceleration per body, then applies
// v += (a_prev + a_new)·dt/2 and stores a_new for the next tick.
func (w *World) Accumulate(dt float64) {
	acc := w.pairAccelerations()
	half := dt * 0.5
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Add(acc[i]).Mul(half))
		b.Acceleration = acc[i]
	}
}

// PairAcceleration returns the accelerations bodies a and b impart on each
// other under p. The two results always point in opposite directions and
// satisfy accA·mass(a) = -accB·mass(b). Coincident bodies yield zero.
func (p Params) PairAcceleration(a, b Body) (accA, accB mgl64.Vec3) {
	return p.pairAcceleration(&a, &b, a.Mass(), b.Mass())
}

func (p Params) pairAcceleration(a, b *Body, massA, massB float64) (accA, accB mgl64.Vec3) {
	delta := b.Position.Sub(a.Position)
	distSq := delta.Dot(delta)
	if distSq == 0 {
		return
	}

	scale := p.lengthScale()
	f := p.G / (distSq / (scale * scale))

	distance := math.Sqrt(distSq)
	f = p.Policy.attenuate(f, distance, p.contact(a, b))
	if f == 0 {
		return
	}

	perMass := delta.Mul(f / distance)
	return perMass.Mul(massB), perMass.Mul(-massA)
}

// pairAccelerations fills w.acc with the summed pair accelerations. Rows are
// dealt round-robin to workers with private buffers, then reduced in worker
// order so the result only depends on the body count and worker count.
func (w *World) pairAccelerations() []mgl64.Vec3 {
	n := len(w.bodies)
	workers := w.params.Workers
	if n < minParallelBodies {
		workers = 1
	}
	w.ensureScratch(n, workers)

	parallelRows(workers, func(worker int) {
		s := w.scratch[worker]
		for k := range s {
			s[k] = mgl64.Vec3{}
		}
		for i := worker; i < n; i += workers {
			for j := i + 1; j < n; j++ {
				ai, aj := w.params.pairAcceleration(&w.bodies[i], &w.bodies[j], w.masses[i], w.masses[j])
				s[i] = s[i].Add(ai)
				s[j] = s[j].Add(aj)
			}
		}
	})

	for i := 0; i < n; i++ {
		sum := w.scratch[0][i]
		for k := 1; k < workers; k++ {
			sum = sum.Add(w.scratch[k][i])
		}
		w.acc[i] = sum
	}
	return w.acc
}

func (w *World) ensureScratch(n, workers int) {
	if len(w.acc) != n {
		w.acc = make([]mgl64.Vec3, n)
	}
	if len(w.scratch) != workers || len(w.scratch[0]) != n {
		w.scratch = make([][]mgl64.Vec3, workers)
		for k := range w.scratch {
			w.scratch[k] = make([]mgl64.Vec3, n)
		}
	}
}

// Prime stores the accelerations for the current positions without touching
// velocities, so the first Integrate already sees real forces. Bodies added
// later start with whatever acceleration they were given.
func (w *World) Prime() {
	acc := w.pairAccelerations()
	for i := range w.bodies {
		w.bodies[i].Acceleration = acc[i]
	}
}
