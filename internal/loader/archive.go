package loader

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// LoadArchive parses the TypeScript files bundled in a txtar archive. File
// names are taken relative to root.
func (s *Service) LoadArchive(ctx context.Context, root string, data []byte) (*LoadResult, error) {
	archive := txtar.Parse(data)

	sources := make([]source, 0, len(archive.Files))
	for _, f := range archive.Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		if s.shouldSkipFile(path) {
			continue
		}
		sources = append(sources, source{path: path, content: f.Data, inMemory: true})
	}

	return s.parseSources(ctx, sources)
}

// LoadArchiveFile reads a txtar archive from disk and parses it.
func (s *Service) LoadArchiveFile(ctx context.Context, path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.LoadArchive(ctx, filepath.Dir(path), data)
}
