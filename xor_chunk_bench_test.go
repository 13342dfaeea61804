package chunkenc

import (
	"math/rand"
	"testing"
)

var benchmarkSizes = []struct {
	name string
	size int
}{
	{"120_samples", 120},
	{"1000_samples", 1000},
	{"10000_samples", 10000},
}

// generateSamples builds a gauge-like series: 10s scrape interval with
// jitter and a value performing a small random walk.
func generateSamples(n int) []sample {
	rng := rand.New(rand.NewSource(1))
	samples := make([]sample, n)

	ts := int64(1_700_000_000_000)
	v := 100.0
	for i := range samples {
		ts += 10_000 + rng.Int63n(10) - 5
		v += rng.Float64() - 0.5
		samples[i] = sample{t: ts, v: v}
	}

	return samples
}

func BenchmarkXORChunk_Append(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			samples := generateSamples(size.size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				c := NewXORChunk()
				app, err := c.Appender()
				if err != nil {
					b.Fatal(err)
				}
				for _, s := range samples {
					if err := app.Append(s.t, s.v); err != nil {
						b.Fatal(err)
					}
				}
				app.Release()
				c.Close()
			}
		})
	}
}

func BenchmarkXORChunk_Iterate(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			c := NewXORChunk()
			defer c.Close()

			app, err := c.Appender()
			if err != nil {
				b.Fatal(err)
			}
			for _, s := range generateSamples(size.size) {
				if err := app.Append(s.t, s.v); err != nil {
					b.Fatal(err)
				}
			}
			app.Release()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				it := c.Iterator()
				for {
					ok, err := it.Next()
					if err != nil {
						b.Fatal(err)
					}
					if !ok {
						break
					}
					_, _ = it.At()
				}
			}
		})
	}
}

func BenchmarkXORChunk_Seek(b *testing.B) {
	const size = 10000
	samples := generateSamples(size)

	c := NewXORChunk()
	defer c.Close()

	app, err := c.Appender()
	if err != nil {
		b.Fatal(err)
	}
	for _, s := range samples {
		if err := app.Append(s.t, s.v); err != nil {
			b.Fatal(err)
		}
	}
	app.Release()

	target := samples[size/2].t

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		it := c.Iterator()
		ok, err := it.Seek(target)
		if err != nil {
			b.Fatal(err)
		}
		if !ok {
			b.Fatal("seek missed")
		}
	}
}
