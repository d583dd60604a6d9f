// Package nbody provides the gravitational n-body core.
//
// The package owns the physics of a set of rigid spherical bodies:
//
//   - [Body]: radius, density and kinematic state of one sphere
//   - [World]: index-addressable arena of bodies plus the tick pipeline
//   - [Force]: scalar force law with a numerical floor
//   - [CollisionPolicy]: what happens to a pair's force inside contact distance
//   - [Scheme]: velocity-Verlet (default) or the direct-velocity Euler path
//
// # Tick Order
//
// [World.Step] runs the two phases of velocity-Verlet explicitly:
//
//	w.Integrate(dt)  // position += v*dt + a*dt²/2, a from the previous tick
//	w.Accumulate(dt) // new a from all pairs, v += (a_old + a_new)*dt/2
//
// The acceleration stored on a body is always one tick stale when
// [World.Integrate] reads it.
//
// # Thread Safety
//
// World instances are NOT thread-safe. Readers (renderers, HUDs) must take
// snapshots between ticks with [World.Positions] or [World.Bodies].
// Parallel accumulation inside a tick is handled by the world itself when
// [Params.Workers] is greater than one.
package nbody
