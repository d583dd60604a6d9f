package nbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is one simulated sphere. Radius and Density are fixed after creation;
// Position, Velocity and Acceleration are advanced by the World each tick.
type Body struct {
	Radius       float64
	Density      float64
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
}

// NewBody creates a body at rest acceleration-wise. It rejects non-positive
// radius or density and non-finite vectors.
func NewBody(radius, density float64, position, velocity mgl64.Vec3) (Body, error) {
	b := Body{
		Radius:   radius,
		Density:  density,
		Position: position,
		Velocity: velocity,
	}
	if err := b.Validate(); err != nil {
		return Body{}, err
	}
	return b, nil
}

// Mass is (4/3)·π·r³·ρ.
func (b Body) Mass() float64 {
	return (4.0 / 3.0) * math.Pi * b.Radius * b.Radius * b.Radius * b.Density
}

// Validate checks the creation invariants of the body.
func (b Body) Validate() error {
	switch {
	case !(b.Radius > 0) || math.IsInf(b.Radius, 0):
		return &BodyError{Index: -1, Reason: "radius must be positive", Wrapped: ErrInvalidBody}
	case !(b.Density > 0) || math.IsInf(b.Density, 0):
		return &BodyError{Index: -1, Reason: "density must be positive", Wrapped: ErrInvalidBody}
	case !finite(b.Position):
		return &BodyError{Index: -1, Reason: "position is not finite", Wrapped: ErrInvalidBody}
	case !finite(b.Velocity):
		return &BodyError{Index: -1, Reason: "velocity is not finite", Wrapped: ErrInvalidBody}
	}
	return nil
}

// IsValid reports whether the kinematic state contains no NaN or Inf.
func (b Body) IsValid() bool {
	return finite(b.Position) && finite(b.Velocity) && finite(b.Acceleration)
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// normalizeOrZero returns the unit vector of v, or the zero vector when v is zero.
func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
