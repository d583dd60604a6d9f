package nbody

// Integrate is the first velocity-Verlet half: position += v·dt + a·dt²/2,
// using the acceleration left over from the previous tick. Velocity and
// acceleration are not touched.
func (w *World) Integrate(dt float64) {
	halfDt2 := dt * dt * 0.5
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Position = b.Position.Add(b.Velocity.Mul(dt)).Add(b.Acceleration.Mul(halfDt2))
	}
}

// stepEuler is the direct-velocity path: each pair's force from Force is
// applied to both velocities, then every body moves with its new velocity.
func (w *World) stepEuler(dt float64) {
	p := w.params
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := &w.bodies[i], &w.bodies[j]
			delta := b.Position.Sub(a.Position)
			distance := delta.Len()

			f := forceG(p.G, w.masses[i], w.masses[j], distance/p.SizeScale*p.DistanceScale)
			f = p.Policy.attenuate(f, distance, p.contact(a, b))
			if f == 0 {
				continue
			}

			dir := normalizeOrZero(delta)
			a.Velocity = a.Velocity.Add(dir.Mul(f / w.masses[i] * dt))
			b.Velocity = b.Velocity.Sub(dir.Mul(f / w.masses[j] * dt))
		}
	}
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}
