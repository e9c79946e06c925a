package search

import (
	"sort"
	"testing"

	"github.com/lexirank/lexirank/internal/analyzer"
	"github.com/lexirank/lexirank/internal/index"
)

type corpusDoc struct {
	uri, content string
}

func buildCorpus(t *testing.T, docs []corpusDoc) *index.SearchIndex {
	t.Helper()
	extractor := analyzer.NewExtractor()
	input := make([]index.Document, 0, len(docs))
	for _, d := range docs {
		table := extractor.Extract(d.content)
		input = append(input, index.Document{URI: d.uri, Terms: table.Terms, Raw: table.Raw})
	}
	return index.Build(input, "test")
}

func testCorpus(t *testing.T) *index.SearchIndex {
	return buildCorpus(t, []corpusDoc{
		{"docs/auth.md", "authenticate user password"},
		{"docs/db.md", "database connect query"},
		{"docs/fetch.md", "fetch user data via database query"},
		{"docs/email.md", "validate email"},
	})
}

func TestSearchRanking(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	results := engine.Search("database query", idx, DefaultOptions())
	if len(results) != 2 {
		t.Fatalf("got %d results %v, want 2", len(results), results)
	}
	// Both documents contain both terms; the shorter document has the
	// higher term frequencies and must rank first.
	if results[0].URI != "docs/db.md" {
		t.Errorf("top result = %q, want docs/db.md", results[0].URI)
	}
	if results[1].URI != "docs/fetch.md" {
		t.Errorf("second result = %q, want docs/fetch.md", results[1].URI)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v", results)
	}
	for _, r := range results {
		if r.Score <= 0 {
			t.Errorf("result %q has non-positive score %v", r.URI, r.Score)
		}
	}

	wantMatched := []string{"database", "query"}
	got := append([]string(nil), results[1].MatchedTerms...)
	sort.Strings(got)
	if len(got) != 2 || got[0] != wantMatched[0] || got[1] != wantMatched[1] {
		t.Errorf("MatchedTerms = %v, want %v", results[1].MatchedTerms, wantMatched)
	}
}

func TestSearchRankingScenarios(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	tests := []struct {
		query   string
		wantTop string
	}{
		{"authenticate user password", "docs/auth.md"},
		{"validate email", "docs/email.md"},
		{"database connect", "docs/db.md"},
	}
	for _, tt := range tests {
		results := engine.Search(tt.query, idx, DefaultOptions())
		if len(results) == 0 {
			t.Errorf("query %q returned no results", tt.query)
			continue
		}
		if results[0].URI != tt.wantTop {
			t.Errorf("query %q: top result = %q (score %v), want %q",
				tt.query, results[0].URI, results[0].Score, tt.wantTop)
		}
		if results[0].Score <= 0 {
			t.Errorf("query %q: top score = %v, want positive", tt.query, results[0].Score)
		}
	}

	if results := engine.Search("zzqxnonexistent", idx, DefaultOptions()); len(results) != 0 {
		t.Errorf("nonsense query returned %v", results)
	}
}

func TestSearchBoostMonotonicity(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	base := engine.Search("database query", idx, DefaultOptions())
	raised := DefaultOptions()
	raised.ExactMatchBoost = 3.0
	boosted := engine.Search("database query", idx, raised)

	if len(base) == 0 || len(boosted) == 0 {
		t.Fatal("expected results from both runs")
	}
	// Raising the exact-match multiplier never lowers a matching
	// document's score.
	for i := range base {
		if boosted[i].Score < base[i].Score {
			t.Errorf("document %q: score dropped from %v to %v",
				base[i].URI, base[i].Score, boosted[i].Score)
		}
	}
}

func TestSearchUnrelatedDocumentsExcluded(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	results := engine.Search("password", idx, DefaultOptions())
	for _, r := range results {
		if r.URI == "docs/email.md" || r.URI == "docs/db.md" {
			t.Errorf("zero-score document %q returned", r.URI)
		}
	}
	if len(results) != 1 || results[0].URI != "docs/auth.md" {
		t.Errorf("results = %v, want only docs/auth.md", results)
	}
}

func TestSearchOutOfVocabularyQuery(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	if results := engine.Search("zzzz qqqq", idx, DefaultOptions()); len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
	if results := engine.Search("", idx, DefaultOptions()); len(results) != 0 {
		t.Errorf("empty query results = %v, want none", results)
	}
}

func TestSearchNilOrEmptyIndex(t *testing.T) {
	engine := NewEngine(analyzer.NewExtractor())
	if results := engine.Search("anything", nil, DefaultOptions()); results == nil || len(results) != 0 {
		t.Errorf("nil index results = %v, want empty non-nil slice", results)
	}
	empty := index.Build(nil, "test")
	if results := engine.Search("anything", empty, DefaultOptions()); len(results) != 0 {
		t.Errorf("empty index results = %v, want none", results)
	}
}

func TestSearchStemmedMatch(t *testing.T) {
	idx := buildCorpus(t, []corpusDoc{
		{"a", "connecting servers"},
		{"b", "unrelated text entirely"},
	})
	engine := NewEngine(analyzer.NewExtractor())

	// "connection" stems to the same root as "connecting".
	results := engine.Search("connection", idx, DefaultOptions())
	if len(results) != 1 || results[0].URI != "a" {
		t.Fatalf("results = %v, want document a", results)
	}
}

func TestSearchExactMatchBoost(t *testing.T) {
	// Identical term vectors; only document a contains the literal query
	// token, so only it receives the exact-match multiplier.
	idx := buildCorpus(t, []corpusDoc{
		{"a", "connect server"},
		{"b", "connected server"},
		{"c", "something else here"},
	})
	engine := NewEngine(analyzer.NewExtractor())

	results := engine.Search("connect", idx, DefaultOptions())
	if len(results) != 2 {
		t.Fatalf("got %d results %v, want 2", len(results), results)
	}
	if results[0].URI != "a" || results[1].URI != "b" {
		t.Fatalf("order = %q, %q, want a then b", results[0].URI, results[1].URI)
	}
	opts := DefaultOptions()
	if ratio := results[0].Score / results[1].Score; !almost(ratio, opts.ExactMatchBoost) {
		t.Errorf("score ratio = %v, want %v", ratio, opts.ExactMatchBoost)
	}
}

func TestSearchPhraseBoost(t *testing.T) {
	idx := buildCorpus(t, []corpusDoc{
		{"both", "alpha beta"},
		{"one", "alpha gamma"},
		{"neither", "delta epsilon"},
	})
	engine := NewEngine(analyzer.NewExtractor())

	results := engine.Search("alpha beta", idx, DefaultOptions())
	if len(results) < 1 || results[0].URI != "both" {
		t.Fatalf("results = %v, want %q first", results, "both")
	}
}

func TestSearchLimit(t *testing.T) {
	docs := make([]corpusDoc, 0, 8)
	for _, uri := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		docs = append(docs, corpusDoc{uri, "common token " + uri + uri})
	}
	// One more document so "common" does not appear everywhere.
	docs = append(docs, corpusDoc{"other", "different words"})
	idx := buildCorpus(t, docs)
	engine := NewEngine(analyzer.NewExtractor())

	opts := DefaultOptions()
	opts.Limit = 3
	results := engine.Search("common token", idx, opts)
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestSearchMinScore(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	opts := DefaultOptions()
	opts.MinScore = 1e9
	if results := engine.Search("database query", idx, opts); len(results) != 0 {
		t.Errorf("results above impossible threshold: %v", results)
	}
}

func TestSearchZeroOptionsFallBackToDefaults(t *testing.T) {
	idx := testCorpus(t)
	engine := NewEngine(analyzer.NewExtractor())

	// A zero Options value must behave like DefaultOptions, not multiply
	// every score by zero.
	results := engine.Search("database query", idx, Options{})
	if len(results) == 0 {
		t.Fatal("zero options produced no results")
	}
	want := engine.Search("database query", idx, DefaultOptions())
	if len(results) != len(want) || results[0].Score != want[0].Score {
		t.Errorf("zero options results %v differ from defaults %v", results, want)
	}
}

func almost(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
