package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the series'
// discrete Fourier transform, after removing the mean. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant frequency
// in a series sampled every sampleDt, or 0 when none can be found. The
// resolution is limited by the series length: a series must cover at least
// two periods to be reliable.
func DominantPeriod(data []float64, sampleDt float64) float64 {
	if sampleDt <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	best, bin := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bin = ps[k], k
		}
	}
	if bin == 0 || best == 0 {
		return 0
	}
	return float64(len(data)) * sampleDt / float64(bin)
}
