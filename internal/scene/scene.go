// Package scene builds worlds from configuration and spawns bodies into them.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/nbody"
)

// Appearance is the render-side data for one body. Scene.Appearance is
// indexed like the world's bodies.
type Appearance struct {
	Color colorful.Color
}

type Scene struct {
	Name       string
	World      *nbody.World
	Appearance []Appearance
	Spawner    *Spawner
}

// Build creates the world described by cfg. Configured bodies come first, in
// order, followed by cfg.Random.Count scattered bodies.
func Build(cfg *config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	world, err := nbody.NewWorld(params)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:    cfg.Name,
		World:   world,
		Spawner: NewSpawner(cfg.Seed, cfg.Spawn.Radius, cfg.Spawn.Density, cfg.Spawn.Extent),
	}

	for i, bc := range cfg.Bodies {
		body := nbody.Body{
			Radius:   bc.Radius,
			Density:  bc.Density,
			Position: mgl64.Vec3(bc.Position),
			Velocity: mgl64.Vec3(bc.Velocity),
		}
		col, err := s.color(bc.Color)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if err := s.add(body, col); err != nil {
			return nil, err
		}
	}

	if cfg.Random.Count > 0 {
		// seeded from the spawn stream so runtime spawns never replay the scatter
		scatter := NewSpawner(s.Spawner.rng.Int63(), cfg.Random.Radius, cfg.Random.Density, cfg.Random.Extent)
		for range cfg.Random.Count {
			body, col := scatter.Next()
			if cfg.Random.Color != "" {
				if col, err = colorful.Hex(cfg.Random.Color); err != nil {
					return nil, fmt.Errorf("random color: %w", err)
				}
			}
			if err := s.add(body, col); err != nil {
				return nil, err
			}
		}
	}

	if cfg.AutoOrbit {
		s.autoOrbit()
	}
	if cfg.Prime {
		world.Prime()
	}
	return s, nil
}

// Spawn adds one body from the scene's spawner and returns its index.
func (s *Scene) Spawn() (int, error) {
	body, col := s.Spawner.Next()
	if err := s.add(body, col); err != nil {
		return -1, err
	}
	return s.World.Len() - 1, nil
}

func (s *Scene) add(b nbody.Body, col colorful.Color) error {
	if _, err := s.World.Add(b); err != nil {
		return err
	}
	s.Appearance = append(s.Appearance, Appearance{Color: col})
	return nil
}

func (s *Scene) color(hex string) (colorful.Color, error) {
	if hex == "" {
		return s.Spawner.Color(), nil
	}
	return colorful.Hex(hex)
}

// autoOrbit gives every resting body after the first a circular velocity
// around body 0. Bodies with a configured velocity are left alone.
func (s *Scene) autoOrbit() {
	w := s.World
	if w.Len() < 2 {
		return
	}
	central := w.Body(0)
	bodies := w.Bodies()
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Velocity != (mgl64.Vec3{}) {
			continue
		}
		w.SetVelocity(i, CircularVelocity(central, bodies[i], w.Params()))
	}
}
