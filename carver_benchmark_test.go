package seamcut

import "testing"

func Benchmark_CarveDP(b *testing.B) {
	benchmarkCarve(b, MethodDP)
}

func Benchmark_CarveGreedy(b *testing.B) {
	benchmarkCarve(b, MethodGreedy)
}

func Benchmark_CarveShortestPath(b *testing.B) {
	benchmarkCarve(b, MethodShortestPath)
}

func benchmarkCarve(b *testing.B, m Method) {
	src := noiseImage(128, 96)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := NewResizer(src, m)
		if _, err := r.Step(Vertical); err != nil {
			b.Fatal(err)
		}
	}
}
