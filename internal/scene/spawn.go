package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravsim/internal/nbody"
)

// Spawner produces identical bodies at random positions inside a cube.
// A fixed seed gives a reproducible sequence.
type Spawner struct {
	rng     *rand.Rand
	radius  float64
	density float64
	extent  float64
}

func NewSpawner(seed int64, radius, density, extent float64) *Spawner {
	return &Spawner{
		rng:     rand.New(rand.NewSource(seed)),
		radius:  radius,
		density: density,
		extent:  extent,
	}
}

// Extent is the half-width of the spawn cube.
func (s *Spawner) Extent() float64 { return s.extent }

// Next returns a resting body uniform in [-extent, extent]^3 and a colour.
func (s *Spawner) Next() (nbody.Body, colorful.Color) {
	pos := mgl64.Vec3{s.coord(), s.coord(), s.coord()}
	return nbody.Body{
		Radius:   s.radius,
		Density:  s.density,
		Position: pos,
	}, s.Color()
}

// Color returns a random saturated hue.
func (s *Spawner) Color() colorful.Color {
	return colorful.Hsv(s.rng.Float64()*360, 0.6, 0.95)
}

func (s *Spawner) coord() float64 {
	return (s.rng.Float64()*2 - 1) * s.extent
}

// CircularVelocity returns the velocity body needs for a circular orbit
// around central, ignoring every other body. The orbit lies in the plane
// spanned by the radius and the z axis cross product, falling back to the
// x axis when the radius is parallel to z. Returns central's velocity when
// the two positions coincide.
func CircularVelocity(central, body nbody.Body, p nbody.Params) mgl64.Vec3 {
	r := body.Position.Sub(central.Position)
	d := r.Len()
	if d == 0 {
		return central.Velocity
	}
	// Acceleration magnitude toward central is G*M*L^2/d^2 with L the
	// world length scale, so v^2/d = G*M*L^2/d^2.
	l := p.SizeScale * p.DistanceScale
	speed := l * math.Sqrt(p.G*central.Mass()/d)

	axis := r.Cross(mgl64.Vec3{0, 0, 1})
	if axis.Len() < 1e-9*d {
		axis = r.Cross(mgl64.Vec3{1, 0, 0})
	}
	return central.Velocity.Add(axis.Normalize().Mul(speed))
}
