package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravsim/internal/sim"
)

type ExportData struct {
	Scene       string             `json:"scene"`
	Scheme      string             `json:"scheme"`
	Collision   string             `json:"collision"`
	Tick        float64            `json:"tick"`
	Duration    float64            `json:"duration"`
	Ticks       int                `json:"ticks"`
	SimTime     float64            `json:"sim_time"`
	EnergyDrift float64            `json:"energy_drift"`
	Times       []float64          `json:"times"`
	Energies    []float64          `json:"energies"`
	Positions   [][][3]float64     `json:"positions"`
	Metrics     map[string]float64 `json:"metrics"`
}

// RunInfo names the configuration a result was produced with.
type RunInfo struct {
	Scene     string
	Scheme    string
	Collision string
	Tick      float64
	Duration  float64
}

// WriteJSON encodes every sample of result, indented.
func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	data := ExportData{
		Scene:       info.Scene,
		Scheme:      info.Scheme,
		Collision:   info.Collision,
		Tick:        info.Tick,
		Duration:    info.Duration,
		Ticks:       result.Ticks,
		SimTime:     result.SimTime,
		EnergyDrift: result.EnergyDrift,
		Times:       make([]float64, len(result.Samples)),
		Energies:    result.Energies(),
		Positions:   make([][][3]float64, len(result.Samples)),
		Metrics:     result.Metrics,
	}

	for i, s := range result.Samples {
		data.Times[i] = s.Time
		data.Positions[i] = make([][3]float64, len(s.Positions))
		for k, p := range s.Positions {
			data.Positions[i][k] = [3]float64(p)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
