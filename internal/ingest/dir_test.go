package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSourceDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "hello")
	writeFile(t, root, "sub/main.go", "package main")
	writeFile(t, root, "image.png", "binary")
	writeFile(t, root, ".git/config", "ignored")

	docs, err := NewDirSource(root, nil).Documents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents %v, want 2", len(docs), docs)
	}
	// Sorted by URI, slash-separated, relative to root.
	if docs[0].URI != "readme.md" || docs[1].URI != "sub/main.go" {
		t.Errorf("URIs = %q, %q", docs[0].URI, docs[1].URI)
	}
	if docs[0].Content != "hello" {
		t.Errorf("content = %q, want %q", docs[0].Content, "hello")
	}
}

func TestDirSourceCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.adoc", "asciidoc")
	writeFile(t, root, "readme.md", "markdown")

	docs, err := NewDirSource(root, []string{"adoc"}).Documents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].URI != "notes.adoc" {
		t.Errorf("docs = %v, want only notes.adoc", docs)
	}
}

func TestDirSourceCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "hello")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDirSource(root, nil).Documents(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestDirSourceMissingRoot(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "absent"), nil).Documents(context.Background()); err == nil {
		t.Error("expected error for missing root")
	}
}
