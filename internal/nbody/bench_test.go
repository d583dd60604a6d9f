package nbody

import "testing"

func benchmarkStep(b *testing.B, n, workers int) {
	p := DefaultParams()
	p.Workers = workers
	w := randomWorld(b, p, n, 3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(36.45)
	}
}

func BenchmarkStep_Serial64(b *testing.B)    { benchmarkStep(b, 64, 1) }
func BenchmarkStep_Serial503(b *testing.B)   { benchmarkStep(b, 503, 1) }
func BenchmarkStep_Parallel503(b *testing.B) { benchmarkStep(b, 503, 4) }
