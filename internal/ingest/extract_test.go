package ingest

import (
	"context"
	"testing"

	"github.com/lexirank/lexirank/internal/analyzer"
)

func TestExtractAllPreservesOrder(t *testing.T) {
	docs := []Document{
		{URI: "a", Content: "alpha words"},
		{URI: "b", Content: "beta words"},
		{URI: "c", Content: ""},
		{URI: "d", Content: "delta words"},
	}
	out, err := ExtractAll(context.Background(), analyzer.NewExtractor(), docs, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(docs) {
		t.Fatalf("got %d documents, want %d", len(out), len(docs))
	}
	for i, doc := range docs {
		if out[i].URI != doc.URI {
			t.Errorf("out[%d].URI = %q, want %q", i, out[i].URI, doc.URI)
		}
	}
	if out[0].Terms["alpha"] != 1 {
		t.Errorf("terms for a = %v, want alpha counted", out[0].Terms)
	}
	if len(out[2].Terms) != 0 {
		t.Errorf("empty document produced terms %v", out[2].Terms)
	}
}

func TestExtractAllDefaultWorkers(t *testing.T) {
	out, err := ExtractAll(context.Background(), analyzer.NewExtractor(), []Document{{URI: "a", Content: "text"}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d documents, want 1", len(out))
	}
}

func TestExtractAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	docs := make([]Document, 64)
	for i := range docs {
		docs[i] = Document{URI: "doc", Content: "some text"}
	}
	if _, err := ExtractAll(ctx, analyzer.NewExtractor(), docs, 4); err == nil {
		t.Error("expected error from cancelled context")
	}
}
