// Package benchmark contains Go benchmarks for the analyzer, index builder,
// and query engine, measuring throughput and allocation behaviour.
package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lexirank/lexirank/internal/analyzer"
)

var benchDoc = strings.Repeat(
	"The query engine computes cosine similarity between TF-IDF weighted "+
		"document vectors. Identifiers like handleRequest and snake_case "+
		"tokens survive tokenization, and ```code blocks``` are stripped. ",
	20)

// BenchmarkTokenize measures tokenization throughput over markdown-ish prose.
func BenchmarkTokenize(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDoc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tokens := analyzer.Tokenize(benchDoc)
		_ = tokens
	}
}

// BenchmarkStem measures per-word stemming latency.
func BenchmarkStem(b *testing.B) {
	words := []string{"authentication", "connections", "databases", "querying", "relational", "controlling"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = analyzer.Stem(words[i%len(words)])
	}
}

// BenchmarkExtract measures full term extraction for one document.
func BenchmarkExtract(b *testing.B) {
	e := analyzer.NewExtractor()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDoc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table := e.Extract(benchDoc)
		_ = table
	}
}

// BenchmarkExtractWithNGrams measures the extra cost of n-gram folding.
func BenchmarkExtractWithNGrams(b *testing.B) {
	e := analyzer.NewExtractor(analyzer.WithNGrams(3))
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDoc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table := e.Extract(benchDoc)
		_ = table
	}
}

// BenchmarkSnowballExtract compares the Snowball strategy against the
// rule-based one.
func BenchmarkSnowballExtract(b *testing.B) {
	e := analyzer.SnowballExtractor{}
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDoc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table := e.Extract(benchDoc)
		_ = table
	}
}

// benchCorpus produces n distinct extracted documents.
func benchCorpus(n int) []analyzer.TermTable {
	e := analyzer.NewExtractor()
	tables := make([]analyzer.TermTable, 0, n)
	for i := 0; i < n; i++ {
		tables = append(tables, e.Extract(fmt.Sprintf("document %d %s topic%d", i, benchDoc, i%17)))
	}
	return tables
}
