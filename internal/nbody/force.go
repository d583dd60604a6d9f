package nbody

// GravitationalConstant in SI units. The scale constants below are applied
// on top of it; see Params.
const GravitationalConstant = 6.6743e-11

// Force returns the gravitational force magnitude between two masses at the
// given distance. Distances of 1 or less yield 0 instead of a singularity.
// Distance must not be negative.
func Force(mass1, mass2, distance float64) float64 {
	return forceG(GravitationalConstant, mass1, mass2, distance)
}

func forceG(g, mass1, mass2, distance float64) float64 {
	if distance > 1 {
		return g * mass1 * mass2 / (distance * distance)
	}
	return 0
}
