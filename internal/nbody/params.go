package nbody

import (
	"fmt"
	"sort"
)

// Default scale constants. They are presentation parameters, not SI units:
// SizeScale turns body radii into world length, DistanceScale stretches
// separations for display.
const (
	DefaultSizeScale     = 7.0 / 1000.0
	DefaultDistanceScale = 10.0
)

// CollisionPolicy selects how a pair's force behaves once the bodies are
// closer than the sum of their scaled radii.
type CollisionPolicy int

const (
	// CollisionZero drops the pair force to zero inside contact distance.
	CollisionZero CollisionPolicy = iota
	// CollisionRamp scales the force by distance/contact, reaching zero at full overlap.
	CollisionRamp
	// CollisionInvert ramps and flips the sign, pushing overlapping bodies apart.
	CollisionInvert
)

var policyNames = map[string]CollisionPolicy{
	"zero":   CollisionZero,
	"ramp":   CollisionRamp,
	"invert": CollisionInvert,
}

// ParsePolicy resolves a policy by name.
func ParsePolicy(name string) (CollisionPolicy, error) {
	p, ok := policyNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

// PolicyNames lists the registered policies in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policyNames))
	for name := range policyNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c CollisionPolicy) String() string {
	for name, p := range policyNames {
		if p == c {
			return name
		}
	}
	return fmt.Sprintf("policy(%d)", int(c))
}

// attenuate applies the policy to force f for a pair at the given distance.
// Outside contact distance f is returned unchanged.
func (c CollisionPolicy) attenuate(f, distance, contact float64) float64 {
	if distance >= contact {
		return f
	}
	switch c {
	case CollisionRamp:
		return f * (distance / contact)
	case CollisionInvert:
		return -f * (distance / contact)
	default:
		return 0
	}
}

// Scheme selects the integration path used by World.Step.
type Scheme int

const (
	// SchemeVerlet is the two-phase velocity-Verlet integrator.
	SchemeVerlet Scheme = iota
	// SchemeEuler applies pair forces straight to velocities, then moves bodies.
	SchemeEuler
)

// ParseScheme resolves an integration scheme by name.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "verlet":
		return SchemeVerlet, nil
	case "euler":
		return SchemeEuler, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

func (s Scheme) String() string {
	if s == SchemeEuler {
		return "euler"
	}
	return "verlet"
}

// Params holds the fixed physical constants of a world.
type Params struct {
	G             float64
	SizeScale     float64
	DistanceScale float64
	Policy        CollisionPolicy
	Scheme        Scheme
	Workers       int
}

// DefaultParams returns the standard constants with the zero-on-contact
// policy, velocity-Verlet and serial accumulation.
func DefaultParams() Params {
	return Params{
		G:             GravitationalConstant,
		SizeScale:     DefaultSizeScale,
		DistanceScale: DefaultDistanceScale,
		Policy:        CollisionZero,
		Scheme:        SchemeVerlet,
		Workers:       1,
	}
}

// lengthScale converts world separations to the force law's length basis.
func (p Params) lengthScale() float64 {
	return p.SizeScale * p.DistanceScale
}

// contact is the separation below which two bodies touch.
func (p Params) contact(a, b *Body) float64 {
	return (a.Radius + b.Radius) * p.SizeScale
}
