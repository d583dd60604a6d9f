package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/gravsim/internal/nbody"
	"github.com/san-kum/gravsim/internal/timescale"
)

type Runner struct {
	metrics    []Metric
	observers  []Observer
	controller Controller
	log        *slog.Logger
}

// New creates a runner. A nil logger discards diagnostics.
func New(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (r *Runner) AddMetric(m Metric)         { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }
func (r *Runner) SetController(c Controller) { r.controller = c }

// Run drives w for cfg.Duration wall seconds in fixed ticks of cfg.Tick. Each
// tick advances the world by clock.EffectiveDt(cfg.Tick), so a paused clock
// still consumes ticks without moving anything.
func (r *Runner) Run(ctx context.Context, w *nbody.World, clock *timescale.Clock, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	ticks := int(math.Round(cfg.Duration / cfg.Tick))
	result := &Result{
		Samples: make([]Sample, 0, sampleCap(ticks, cfg.SampleEvery)),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	initialEnergy := w.Energy()
	result.Samples = append(result.Samples, r.sample(w, clock, 0, t))

	r.log.Debug("run started",
		"bodies", w.Len(),
		"ticks", ticks,
		"tick", cfg.Tick,
		"scheme", w.Params().Scheme,
		"collision", w.Params().Policy,
		"workers", w.Params().Workers)

	for i := 1; i <= ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if r.controller != nil {
			if err := r.controller.Control(i, float64(i-1)*cfg.Tick); err != nil {
				return result, fmt.Errorf("tick %d: %w", i, err)
			}
		}

		dt := clock.EffectiveDt(cfg.Tick)
		w.Step(dt)
		t += dt
		result.Ticks++

		if cfg.ValidateState && !w.IsValid() {
			err := SimError{Tick: i, Time: t, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			r.log.Warn("run stopped", "err", err)
			break
		}

		for _, m := range r.metrics {
			m.Observe(w, t)
		}
		for _, obs := range r.observers {
			obs.OnTick(w, i, t)
		}

		if (cfg.SampleEvery > 0 && i%cfg.SampleEvery == 0) || i == ticks {
			result.Samples = append(result.Samples, r.sample(w, clock, i, t))
		}
	}

	result.SimTime = t
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(w.Energy()-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.log.Debug("run finished", "ticks", result.Ticks, "sim_time", t, "energy_drift", result.EnergyDrift)
	return result, nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %f", cfg.Tick)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d", cfg.SampleEvery)
	}
	return nil
}

func (r *Runner) sample(w *nbody.World, clock *timescale.Clock, tick int, t float64) Sample {
	return Sample{
		Tick:      tick,
		Time:      t,
		Speed:     clock.Speed(),
		Energy:    w.Energy(),
		Positions: w.Positions(),
	}
}

func sampleCap(ticks, every int) int {
	if every <= 0 {
		return 2
	}
	return ticks/every + 2
}
