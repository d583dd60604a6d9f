package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravsim/internal/nbody"
)

// Metric accumulates a scalar over a run. Observe is called after every
// tick with the world state and the simulated time.
type Metric interface {
	Name() string
	Observe(w *nbody.World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(w *nbody.World, tick int, t float64)
}

// Controller runs before every tick and may change the clock or the world,
// the way keyboard input does in the live view.
type Controller interface {
	Control(tick int, wall float64) error
}

type Config struct {
	// Tick is the fixed wall-clock step in seconds.
	Tick float64
	// Duration is the wall-clock length of the run in seconds.
	Duration float64
	// SampleEvery records a sample every n ticks; 0 disables sampling
	// except for the initial and final states.
	SampleEvery int
	// ValidateState stops the run at the first non-finite body.
	ValidateState bool
}

type Sample struct {
	Tick      int
	Time      float64
	Speed     float64
	Energy    float64
	Positions []mgl64.Vec3
}

type Result struct {
	Samples     []Sample
	Metrics     map[string]float64
	Ticks       int
	SimTime     float64
	EnergyDrift float64
	Errors      []error
}

// Series returns coordinate axis of body i over every sample that contains it.
func (r *Result) Series(i, axis int) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		if i < len(s.Positions) {
			out = append(out, s.Positions[i][axis])
		}
	}
	return out
}

// Energies returns the total energy of every sample.
func (r *Result) Energies() []float64 {
	out := make([]float64, len(r.Samples))
	for k, s := range r.Samples {
		out[k] = s.Energy
	}
	return out
}

// SampleDt is the simulated time between the first two samples, or 0.
func (r *Result) SampleDt() float64 {
	if len(r.Samples) < 2 {
		return 0
	}
	return r.Samples[1].Time - r.Samples[0].Time
}

type SimError struct {
	Tick    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %s", e.Tick, e.Time, e.Message)
}
