package nbody

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// World is the index-addressable set of simulated bodies. Indices are stable:
// bodies are only ever appended, so renderers may keep a parallel slice of
// handles keyed by index.
type World struct {
	params Params
	bodies []Body
	masses []float64
	steps  int

	// per-worker pair accumulators, reduced into acc
	scratch [][]mgl64.Vec3
	acc     []mgl64.Vec3
}

// NewWorld creates a world with the given constants and initial bodies.
func NewWorld(p Params, bodies ...Body) (*World, error) {
	if p.Workers < 1 {
		p.Workers = 1
	}
	w := &World{
		params: p,
		bodies: make([]Body, 0, len(bodies)),
		masses: make([]float64, 0, len(bodies)),
	}
	for _, b := range bodies {
		if _, err := w.Add(b); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Add validates b and appends it, returning its index.
func (w *World) Add(b Body) (int, error) {
	if err := b.Validate(); err != nil {
		var be *BodyError
		if errors.As(err, &be) {
			be.Index = len(w.bodies)
		}
		return -1, err
	}
	w.bodies = append(w.bodies, b)
	w.masses = append(w.masses, b.Mass())
	return len(w.bodies) - 1, nil
}

func (w *World) Params() Params { return w.params }
func (w *World) Len() int       { return len(w.bodies) }

// Steps returns the number of non-empty ticks applied so far.
func (w *World) Steps() int { return w.steps }

// Body returns a copy of body i.
func (w *World) Body(i int) Body { return w.bodies[i] }

// Mass returns the cached mass of body i.
func (w *World) Mass(i int) float64 { return w.masses[i] }

// SetVelocity overwrites the velocity of body i. Used when seeding orbits
// before the first tick.
func (w *World) SetVelocity(i int, v mgl64.Vec3) { w.bodies[i].Velocity = v }

// SetPosition overwrites the position of body i.
func (w *World) SetPosition(i int, p mgl64.Vec3) { w.bodies[i].Position = p }

// Clone returns an independent world with the same constants, bodies and
// step count.
func (w *World) Clone() *World {
	return &World{
		params: w.params,
		bodies: w.Bodies(),
		masses: append([]float64(nil), w.masses...),
		steps:  w.steps,
	}
}

// Bodies returns a snapshot copy of every body.
func (w *World) Bodies() []Body {
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Positions returns a snapshot of body positions in index order.
func (w *World) Positions() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(w.bodies))
	for i := range w.bodies {
		out[i] = w.bodies[i].Position
	}
	return out
}

// IsValid reports whether every body's state is finite.
func (w *World) IsValid() bool {
	for i := range w.bodies {
		if !w.bodies[i].IsValid() {
			return false
		}
	}
	return true
}

// Step advances the world by one tick of effective duration dt.
//
// For SchemeVerlet the order is fixed: Integrate moves every body with the
// acceleration stored by the previous tick, then Accumulate derives the new
// accelerations from the moved positions and completes the velocity update.
// A zero dt is a no-op.
func (w *World) Step(dt float64) {
	if dt == 0 {
		return
	}
	switch w.params.Scheme {
	case SchemeEuler:
		w.stepEuler(dt)
	default:
		w.Integrate(dt)
		w.Accumulate(dt)
	}
	w.steps++
}
