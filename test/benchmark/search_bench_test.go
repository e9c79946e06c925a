package benchmark

import (
	"fmt"
	"testing"

	"github.com/lexirank/lexirank/internal/analyzer"
	"github.com/lexirank/lexirank/internal/index"
	"github.com/lexirank/lexirank/internal/search"
)

// BenchmarkSearch measures full query latency over corpora of varying size.
func BenchmarkSearch(b *testing.B) {
	engine := search.NewEngine(analyzer.NewExtractor())
	opts := search.DefaultOptions()
	for _, size := range []int{100, 1000, 10000} {
		idx := index.Build(benchDocuments(size), "bench")
		b.Run(fmt.Sprintf("docs-%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				results := engine.Search("cosine similarity query", idx, opts)
				_ = results
			}
		})
	}
}

// BenchmarkSearchParallel measures concurrent read throughput against one
// shared index snapshot.
func BenchmarkSearchParallel(b *testing.B) {
	engine := search.NewEngine(analyzer.NewExtractor())
	opts := search.DefaultOptions()
	idx := index.Build(benchDocuments(1000), "bench")

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			results := engine.Search("weighted document vectors", idx, opts)
			_ = results
		}
	})
}

// BenchmarkSearchBoostHeavyQuery measures the boost heuristics on a query
// full of technical tokens.
func BenchmarkSearchBoostHeavyQuery(b *testing.B) {
	engine := search.NewEngine(analyzer.NewExtractor())
	opts := search.DefaultOptions()
	idx := index.Build(benchDocuments(1000), "bench")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results := engine.Search("handleRequest snake_case HTTP tokenization", idx, opts)
		_ = results
	}
}
