package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
)

func testResult() *sim.Result {
	return &sim.Result{
		Ticks:   2,
		SimTime: 1,
		Samples: []sim.Sample{
			{Tick: 0, Time: 0, Speed: 1, Energy: -2, Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}},
			{Tick: 2, Time: 1, Speed: 1, Energy: -2, Positions: []mgl64.Vec3{{0, 1, 0}, {1, 1, 0}}},
		},
		Metrics: map[string]float64{"energy_drift": 0},
	}
}

func TestTrajectoriesToSVG(t *testing.T) {
	svg := TrajectoriesToSVG([]Trajectory{
		{Points: []struct{ X, Y float64 }{{0, 0}, {1, 1}}, Color: "#ff0000"},
		{Points: []struct{ X, Y float64 }{{2, 2}, {3, 1}, {4, 0}}, Color: "#00ff00"},
		{Points: []struct{ X, Y float64 }{{5, 5}}, Color: "#0000ff"},
	}, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if n := strings.Count(svg, "<path"); n != 2 {
		t.Errorf("expected 2 paths, got %d", n)
	}
	if !strings.Contains(svg, `stroke="#ff0000"`) || !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("expected per-trajectory colours")
	}
}

func TestTrajectoriesToSVGEmpty(t *testing.T) {
	if svg := TrajectoriesToSVG(nil, 10, 10); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	info := RunInfo{Scene: "binary", Scheme: "verlet", Collision: "zero", Tick: 0.5, Duration: 1}
	if err := WriteJSON(&buf, info, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Scene != "binary" || data.Ticks != 2 {
		t.Errorf("unexpected header: %+v", data)
	}
	if len(data.Positions) != 2 || data.Positions[1][1] != [3]float64{1, 1, 0} {
		t.Errorf("unexpected positions: %v", data.Positions)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[4], ",") != "2,1,1,-2,1,1,1,0" {
		t.Errorf("unexpected last row %v", rows[4])
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("malformed svg document:\n%s", svg)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Errorf("expected 8x8 document for a 2x1 canvas at scale 2:\n%s", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	for _, dot := range []string{`cx="1.0" cy="1.0"`, `cx="7.0" cy="7.0"`} {
		if !strings.Contains(svg, dot) {
			t.Errorf("missing dot %s", dot)
		}
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should render empty")
	}
}
