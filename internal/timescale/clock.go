// Package timescale converts wall-clock ticks into simulated time.
//
// A [Clock] carries the user-adjustable speed factor together with the
// pause memory. It is created once by the host and passed explicitly to
// whatever advances the world; there is no package-level state.
package timescale

// DefaultTimeSpeed maps one wall second to simulated seconds: a 27 day lunar
// orbit plays out in roughly 10 seconds at speed 1.
const DefaultTimeSpeed = 2332.8

// Options configures a Clock.
type Options struct {
	// TimeSpeed is the fixed wall-to-simulated multiplier.
	TimeSpeed float64
	// Speed is the initial user speed factor.
	Speed float64
	// Rate is the speed change per second of a held nudge.
	Rate float64
	// FastMultiplier scales Rate while the fast modifier is held.
	FastMultiplier float64
	// AllowReverse permits negative speed (running the integrator backwards).
	// When false, speed is clamped at zero.
	AllowReverse bool
}

// DefaultOptions returns speed 1 with a 0.5/s nudge rate and a 10x fast modifier.
func DefaultOptions() Options {
	return Options{
		TimeSpeed:      DefaultTimeSpeed,
		Speed:          1,
		Rate:           0.5,
		FastMultiplier: 10,
	}
}

// Clock is the Timescale Controller state.
type Clock struct {
	opts      Options
	speed     float64
	lastSpeed float64
}

// New creates a clock. The pause memory starts at 1 so resuming a clock that
// was created paused runs at normal speed.
func New(opts Options) *Clock {
	c := &Clock{opts: opts, speed: opts.Speed, lastSpeed: 1}
	c.clamp()
	return c
}

// Speed is the current user speed factor.
func (c *Clock) Speed() float64 { return c.speed }

// Paused reports whether the speed is exactly zero.
func (c *Clock) Paused() bool { return c.speed == 0 }

// TimeSpeed is the fixed wall-to-simulated multiplier.
func (c *Clock) TimeSpeed() float64 { return c.opts.TimeSpeed }

// EffectiveDt converts a wall-clock tick into the simulated dt every
// physics phase must consume.
func (c *Clock) EffectiveDt(wallDt float64) float64 {
	return wallDt * c.opts.TimeSpeed * c.speed
}

// TogglePause stops a running clock, remembering its speed, or restores the
// remembered speed on a stopped one.
func (c *Clock) TogglePause() {
	if c.speed != 0 {
		c.lastSpeed = c.speed
		c.speed = 0
		return
	}
	c.speed = c.lastSpeed
}

// Nudge changes the speed for a control held for elapsed wall seconds.
// direction is +1 to speed up and -1 to slow down. Slowing a running clock
// down to a stop remembers the speed it was slowed from, so the next
// TogglePause resumes there.
func (c *Clock) Nudge(direction, elapsed float64, fast bool) {
	rate := c.opts.Rate
	if fast {
		rate *= c.opts.FastMultiplier
	}
	prev := c.speed
	c.speed += direction * rate * elapsed
	c.clamp()
	if c.speed == 0 && prev > 0 {
		c.lastSpeed = prev
	}
}

// Increase is Nudge(+1, ...).
func (c *Clock) Increase(elapsed float64, fast bool) { c.Nudge(1, elapsed, fast) }

// Decrease is Nudge(-1, ...).
func (c *Clock) Decrease(elapsed float64, fast bool) { c.Nudge(-1, elapsed, fast) }

// SetSpeed jumps straight to v, subject to the same clamp as Nudge.
func (c *Clock) SetSpeed(v float64) {
	c.speed = v
	c.clamp()
}

// Reset snaps the speed back to exactly 1.
func (c *Clock) Reset() { c.speed = 1 }

func (c *Clock) clamp() {
	if !c.opts.AllowReverse && c.speed < 0 {
		c.speed = 0
	}
}
