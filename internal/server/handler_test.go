package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexirank/lexirank/internal/analyzer"
	"github.com/lexirank/lexirank/internal/index"
	"github.com/lexirank/lexirank/internal/search"
	"github.com/lexirank/lexirank/pkg/config"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	return New(search.NewEngine(analyzer.NewExtractor()), nil, nil, config.SearchConfig{})
}

func testIndex(t *testing.T) *index.SearchIndex {
	t.Helper()
	extractor := analyzer.NewExtractor()
	contents := map[string]string{
		"docs/auth.md": "authenticate user password",
		"docs/db.md":   "database connect query",
	}
	docs := make([]index.Document, 0, len(contents))
	for _, uri := range []string{"docs/auth.md", "docs/db.md"} {
		table := extractor.Extract(contents[uri])
		docs = append(docs, index.Document{URI: uri, Terms: table.Terms, Raw: table.Raw})
	}
	return index.Build(docs, "test")
}

func doSearch(t *testing.T, h *Handler, url string) (*httptest.ResponseRecorder, SearchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	var resp SearchResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestSearchHandler(t *testing.T) {
	h := testHandler(t)
	h.Publish(testIndex(t))

	rec, resp := doSearch(t, h, "/search?q=database")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Query != "database" {
		t.Errorf("Query = %q", resp.Query)
	}
	if len(resp.Results) != 1 || resp.Results[0].URI != "docs/db.md" {
		t.Errorf("Results = %v, want docs/db.md", resp.Results)
	}
}

func TestSearchHandlerMissingQuery(t *testing.T) {
	h := testHandler(t)
	h.Publish(testIndex(t))

	rec, _ := doSearch(t, h, "/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchHandlerBadParams(t *testing.T) {
	h := testHandler(t)
	h.Publish(testIndex(t))

	for _, url := range []string{
		"/search?q=x&limit=0",
		"/search?q=x&limit=abc",
		"/search?q=x&min_score=-1",
		"/search?q=x&min_score=abc",
	} {
		rec, _ := doSearch(t, h, url)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, rec.Code)
		}
	}
}

func TestSearchHandlerNoIndexPublished(t *testing.T) {
	h := testHandler(t)

	rec, resp := doSearch(t, h, "/search?q=database")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(resp.Results) != 0 {
		t.Errorf("Results = %v, want none", resp.Results)
	}
}

func TestSearchHandlerLimitClamped(t *testing.T) {
	h := New(search.NewEngine(analyzer.NewExtractor()), nil, nil, config.SearchConfig{MaxResults: 1})
	h.Publish(testIndex(t))

	rec, resp := doSearch(t, h, "/search?q=user+database&limit=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Results) > 1 {
		t.Errorf("got %d results, want at most 1", len(resp.Results))
	}
}

func TestPublishSwapsIndex(t *testing.T) {
	h := testHandler(t)
	h.Publish(testIndex(t))

	// A rebuilt snapshot replaces the old one for subsequent queries.
	extractor := analyzer.NewExtractor()
	table := extractor.Extract("completely new corpus")
	h.Publish(index.Build([]index.Document{
		{URI: "new.md", Terms: table.Terms, Raw: table.Raw},
	}, "2"))

	_, resp := doSearch(t, h, "/search?q=database")
	if len(resp.Results) != 0 {
		t.Errorf("old corpus still served: %v", resp.Results)
	}
	_, resp = doSearch(t, h, "/search?q=corpus")
	if len(resp.Results) != 1 || resp.Results[0].URI != "new.md" {
		t.Errorf("Results = %v, want new.md", resp.Results)
	}
}
