package analysis

import (
	"math"

	"github.com/san-kum/gravsim/internal/nbody"
)

// LyapunovExponent estimates the largest Lyapunov exponent of w using the
// trajectory separation method. A clone of w has body displaced along x by
// perturbation, both worlds are stepped, and the perturbed copy is pulled
// back towards the reference whenever the separation grows past unity.
// w itself is not modified.
//
// Algorithm:
// 1. Run two nearby worlds
// 2. Measure their divergence over time
// 3. λ ≈ (1/t) * ln(|δx(t)/δx(0)|)
func LyapunovExponent(w *nbody.World, body int, perturbation, dt float64, steps int) float64 {
	if w.Len() == 0 || body < 0 || body >= w.Len() || perturbation <= 0 || dt <= 0 {
		return 0
	}

	ref := w.Clone()
	pert := w.Clone()
	p := pert.Body(body).Position
	p[0] += perturbation
	pert.SetPosition(body, p)

	d0 := perturbation
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		ref.Step(dt)
		pert.Step(dt)

		sep := separation(ref, pert)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		// Renormalize to prevent overflow
		if sep > 1.0 {
			renormalize(ref, pert, d0/sep)
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

func separation(a, b *nbody.World) float64 {
	sum := 0.0
	for i := 0; i < a.Len(); i++ {
		d := b.Body(i).Position.Sub(a.Body(i).Position)
		sum += d.Dot(d)
	}
	return math.Sqrt(sum)
}

func renormalize(ref, pert *nbody.World, scale float64) {
	for i := 0; i < ref.Len(); i++ {
		r, q := ref.Body(i), pert.Body(i)
		pert.SetPosition(i, r.Position.Add(q.Position.Sub(r.Position).Mul(scale)))
		pert.SetVelocity(i, r.Velocity.Add(q.Velocity.Sub(r.Velocity).Mul(scale)))
	}
}
