package nbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// KineticEnergy is Σ ½·m·|v|².
func (w *World) KineticEnergy() float64 {
	ke := 0.0
	for i := range w.bodies {
		v := w.bodies[i].Velocity
		ke += 0.5 * w.masses[i] * v.Dot(v)
	}
	return ke
}

// PotentialEnergy is the pairwise potential matching the accumulator's
// force law. Coincident pairs contribute nothing.
func (w *World) PotentialEnergy() float64 {
	scale := w.params.lengthScale()
	k := w.params.G * scale * scale
	pe := 0.0
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := w.bodies[j].Position.Sub(w.bodies[i].Position).Len()
			if d == 0 {
				continue
			}
			pe -= k * w.masses[i] * w.masses[j] / d
		}
	}
	return pe
}

// Energy is kinetic plus potential energy.
func (w *World) Energy() float64 {
	return w.KineticEnergy() + w.PotentialEnergy()
}

// Momentum is Σ m·v.
func (w *World) Momentum() mgl64.Vec3 {
	var p mgl64.Vec3
	for i := range w.bodies {
		p = p.Add(w.bodies[i].Velocity.Mul(w.masses[i]))
	}
	return p
}

// Contacts counts pairs closer than the sum of their scaled radii.
func (w *World) Contacts() int {
	count := 0
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := &w.bodies[i], &w.bodies[j]
			contact := w.params.contact(a, b)
			d := b.Position.Sub(a.Position)
			if d.Dot(d) < contact*contact {
				count++
			}
		}
	}
	return count
}

// CenterOfMass returns the mass-weighted mean position, or zero for an empty world.
func (w *World) CenterOfMass() mgl64.Vec3 {
	var sum mgl64.Vec3
	total := 0.0
	for i := range w.bodies {
		sum = sum.Add(w.bodies[i].Position.Mul(w.masses[i]))
		total += w.masses[i]
	}
	if total == 0 || math.IsInf(total, 0) {
		return mgl64.Vec3{}
	}
	return sum.Mul(1 / total)
}
