package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultExtensions are the file types indexed when none are configured.
var defaultExtensions = map[string]struct{}{
	".md": {}, ".markdown": {}, ".txt": {}, ".rst": {},
	".go": {}, ".py": {}, ".js": {}, ".ts": {}, ".rs": {},
	".java": {}, ".rb": {}, ".sh": {}, ".sql": {},
	".yaml": {}, ".yml": {}, ".json": {}, ".toml": {},
}

// DirSource walks a directory tree and yields text and source files as
// documents, with slash-separated paths relative to the root as URIs.
type DirSource struct {
	root       string
	extensions map[string]struct{}
	logger     *slog.Logger
}

var _ Source = (*DirSource)(nil)

// NewDirSource creates a DirSource over root. extensions narrows the indexed
// file types; nil keeps the defaults.
func NewDirSource(root string, extensions []string) *DirSource {
	s := &DirSource{
		root:       root,
		extensions: defaultExtensions,
		logger:     slog.Default().With("component", "dir-source"),
	}
	if len(extensions) > 0 {
		s.extensions = make(map[string]struct{}, len(extensions))
		for _, ext := range extensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			s.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
	return s
}

// Documents walks the tree and reads every matching file. The result is
// sorted by URI so repeated walks of the same tree index identically.
func (s *DirSource) Documents(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, Document{
			URI:     filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	s.logger.Info("directory walked", "root", s.root, "documents", len(docs))
	return docs, nil
}
