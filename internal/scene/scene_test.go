package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/nbody"
	"github.com/san-kum/gravsim/internal/timescale"
)

func TestBuildPresets(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := config.GetPreset(name)
			s, err := Build(cfg)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			want := len(cfg.Bodies) + cfg.Random.Count
			if s.World.Len() != want {
				t.Errorf("expected %d bodies, got %d", want, s.World.Len())
			}
			if len(s.Appearance) != s.World.Len() {
				t.Errorf("appearance length %d does not match body count %d", len(s.Appearance), s.World.Len())
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := config.GetPreset("swarm")
	cfg.Random.Count = 20

	a, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	pa, pb := a.World.Positions(), b.World.Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("body %d differs: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestBuildInvalidBody(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies = []config.BodyConfig{{Radius: 1, Density: 1}, {Radius: -1, Density: 1}}
	if _, err := Build(cfg); err == nil {
		t.Error("expected error for negative radius")
	}
}

func TestBuildBadColor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies = []config.BodyConfig{{Radius: 1, Density: 1, Color: "red"}}
	if _, err := Build(cfg); err == nil {
		t.Error("expected error for malformed colour")
	}
}

func TestSpawn(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		idx, err := s.Spawn()
		if err != nil {
			t.Fatalf("spawn failed: %v", err)
		}
		if idx != i {
			t.Errorf("expected index %d, got %d", i, idx)
		}
		b := s.World.Body(idx)
		for k := 0; k < 3; k++ {
			if math.Abs(b.Position[k]) > cfg.Spawn.Extent {
				t.Errorf("coordinate %f outside extent", b.Position[k])
			}
		}
		if b.Velocity != (mgl64.Vec3{}) {
			t.Errorf("spawned body should be at rest, got %v", b.Velocity)
		}
		if b.Radius != cfg.Spawn.Radius || b.Density != cfg.Spawn.Density {
			t.Errorf("unexpected body size: %+v", b)
		}
	}
	if len(s.Appearance) != 10 {
		t.Errorf("expected 10 appearances, got %d", len(s.Appearance))
	}
}

func TestSpawnAvoidsScatterPositions(t *testing.T) {
	cfg := config.GetPreset("swarm")
	s, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	initial := s.World.Positions()

	for k := 0; k < 5; k++ {
		idx, err := s.Spawn()
		if err != nil {
			t.Fatal(err)
		}
		p := s.World.Body(idx).Position
		for i, q := range initial {
			if p == q {
				t.Fatalf("spawned body %d coincides with body %d at %v", idx, i, p)
			}
		}
	}
}

func TestCircularVelocity(t *testing.T) {
	p := nbody.Params{G: 1, SizeScale: 1, DistanceScale: 1}
	central := nbody.Body{Radius: 1, Density: 1}
	body := nbody.Body{Radius: 0.1, Density: 1, Position: mgl64.Vec3{10, 0, 0}}

	v := CircularVelocity(central, body, p)

	want := math.Sqrt(central.Mass() / 10)
	if math.Abs(v.Len()-want) > 1e-12 {
		t.Errorf("expected speed %f, got %f", want, v.Len())
	}
	if math.Abs(v.Dot(body.Position)) > 1e-12 {
		t.Errorf("velocity should be perpendicular to radius, got %v", v)
	}
}

func TestCircularVelocityAlongZ(t *testing.T) {
	p := nbody.Params{G: 1, SizeScale: 1, DistanceScale: 1}
	central := nbody.Body{Radius: 1, Density: 1, Velocity: mgl64.Vec3{1, 0, 0}}
	body := nbody.Body{Radius: 0.1, Density: 1, Position: mgl64.Vec3{0, 0, 5}}

	v := CircularVelocity(central, body, p).Sub(central.Velocity)
	if v.Len() == 0 || math.IsNaN(v.Len()) {
		t.Fatalf("expected a finite non-zero relative velocity, got %v", v)
	}
	if math.Abs(v.Z()) > 1e-12 {
		t.Errorf("relative velocity should be perpendicular to z, got %v", v)
	}
}

func TestAutoOrbitKeepsRadius(t *testing.T) {
	s, err := Build(config.GetPreset("moon"))
	if err != nil {
		t.Fatal(err)
	}
	w := s.World
	r0 := w.Body(1).Position.Sub(w.Body(0).Position).Len()

	dt := config.DefaultTick * timescale.DefaultTimeSpeed
	for i := 0; i < 500; i++ {
		w.Step(dt)
	}

	r := w.Body(1).Position.Sub(w.Body(0).Position).Len()
	if math.Abs(r-r0)/r0 > 0.05 {
		t.Errorf("orbit radius drifted from %f to %f", r0, r)
	}
}
