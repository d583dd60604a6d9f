// Package analysis provides orbit analysis tools over recorded runs.
//
//   - [PowerSpectrum] and [DominantPeriod]: orbital period from a coordinate series
//   - [LyapunovExponent]: sensitivity of a world to a small perturbation
//   - [NewOrbitPlot]: 2D projection of a body's trajectory
//   - [NewPoincareSection]: points where a trajectory crosses a plane
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(world, 0, 1e-6, dt, steps)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
