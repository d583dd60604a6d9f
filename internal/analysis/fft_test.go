package analysis

import (
	"math"
	"testing"
)

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		dt     float64
		period float64
	}{
		{"power of two", 256, 0.5, 16},
		{"odd length", 300, 1, 30},
		{"offset signal", 200, 0.25, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 100 + 3*math.Sin(2*math.Pi*float64(i)*tt.dt/tt.period)
			}
			got := DominantPeriod(data, tt.dt)
			if math.Abs(got-tt.period)/tt.period > 0.05 {
				t.Errorf("expected period %f, got %f", tt.period, got)
			}
		})
	}
}

func TestDominantPeriodDegenerate(t *testing.T) {
	if got := DominantPeriod(nil, 1); got != 0 {
		t.Errorf("expected 0 for empty series, got %f", got)
	}
	if got := DominantPeriod([]float64{2, 2, 2, 2}, 1); got != 0 {
		t.Errorf("expected 0 for constant series, got %f", got)
	}
	if got := DominantPeriod([]float64{1, 2, 1, 2}, 0); got != 0 {
		t.Errorf("expected 0 for zero sample spacing, got %f", got)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	if len(ps) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(ps))
	}
	for k, v := range ps {
		if v > 1e-12 {
			t.Errorf("bin %d: expected 0, got %e", k, v)
		}
	}
}
