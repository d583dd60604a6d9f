package config

import "sort"

func preset(name string, mutate func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	// Three heavy bodies in a cloud of 500 light ones.
	"swarm": preset("swarm", func(c *Config) {
		c.Seed = 1
		c.Workers = 4
		c.Random = RandomConfig{Count: 500, Radius: 300, Density: 100, Extent: 400, Color: "#c0c0c0"}
		c.Bodies = []BodyConfig{
			{Radius: 3000, Density: 10, Position: [3]float64{-275, 13, 10}, Color: "#ff0000"},
			{Radius: 3000, Density: 10, Position: [3]float64{175, -13, 150}, Color: "#00ff00"},
			{Radius: 3000, Density: 10, Position: [3]float64{-175, -130, -100}, Color: "#0000ff"},
		}
	}),
	// Earth and moon at display scale; the moon's speed comes from auto_orbit.
	"moon": preset("moon", func(c *Config) {
		c.Duration = 20
		c.AutoOrbit = true
		c.Prime = true
		c.Bodies = []BodyConfig{
			{Radius: 6378, Density: 5.51, Color: "#1e90ff"},
			{Radius: 1737.4, Density: 3.34, Position: [3]float64{0, 384400 * 7.0 / 1000.0 / 10.0, 0}, Color: "#ffffff"},
		}
	}),
	"binary": preset("binary", func(c *Config) {
		c.Duration = 30
		c.AutoOrbit = true
		c.Prime = true
		c.Bodies = []BodyConfig{
			{Radius: 3000, Density: 10, Color: "#ffcc00"},
			{Radius: 300, Density: 100, Position: [3]float64{150, 0, 0}, Color: "#ff6600"},
		}
	}),
	// Three-body figure eight in unit scales. Radius and density give each
	// body unit mass with a contact distance well below the closest approach.
	"figure": preset("figure", func(c *Config) {
		c.Duration = 20
		c.Scales = ScalesConfig{Size: 1, Distance: 1, TimeSpeed: 1, G: 1}
		c.Bodies = []BodyConfig{
			{Radius: 0.01, Density: 238732.414637843, Position: [3]float64{-0.97000436, 0.24308753, 0}, Velocity: [3]float64{0.46620368, 0.43236573, 0}, Color: "#ff4040"},
			{Radius: 0.01, Density: 238732.414637843, Position: [3]float64{0.97000436, -0.24308753, 0}, Velocity: [3]float64{0.46620368, 0.43236573, 0}, Color: "#40ff40"},
			{Radius: 0.01, Density: 238732.414637843, Velocity: [3]float64{-0.93240737, -0.86473146, 0}, Color: "#4040ff"},
		}
	}),
	"collide": preset("collide", func(c *Config) {
		c.Duration = 5
		c.Collision = "invert"
		c.Bodies = []BodyConfig{
			{Radius: 3000, Density: 10, Position: [3]float64{-40, 0, 0}, Velocity: [3]float64{0.01, 0, 0}, Color: "#ff0000"},
			{Radius: 3000, Density: 10, Position: [3]float64{40, 0, 0}, Velocity: [3]float64{-0.01, 0, 0}, Color: "#00ffff"},
		}
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
