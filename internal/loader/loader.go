package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// source a file to parse, with its contents when already in memory
type source struct {
	path     string
	content  []byte
	inMemory bool
}

// LoadSearchDirs loads TypeScript files from the specified search directories
func (s *Service) LoadSearchDirs(ctx context.Context, dirs []string) (*LoadResult, error) {
	var sources []source

	for _, searchDir := range dirs {
		absDir, err := filepath.Abs(searchDir)
		if err != nil {
			return nil, err
		}

		err = s.walkDirectory(absDir, func(path string) {
			sources = append(sources, source{path: path})
		})
		if err != nil {
			return nil, err
		}
	}

	return s.parseSources(ctx, sources)
}

// walkDirectory walks a directory and reports every file to parse
func (s *Service) walkDirectory(searchDir string, visit func(path string)) error {
	return filepath.Walk(searchDir, func(path string, f os.FileInfo, wError error) error {
		if wError != nil {
			return fmt.Errorf("failed to access path %q, err: %v", path, wError)
		}

		err := s.shouldSkipDir(path, f)
		if err != nil {
			return err
		}

		if f.IsDir() {
			return nil
		}

		if s.shouldSkipFile(path) {
			return nil
		}

		visit(path)
		return nil
	})
}

// parseSources parses all sources concurrently using an errgroup bounded by
// the number of CPUs. Results are keyed by path, so the outcome does not
// depend on goroutine scheduling.
func (s *Service) parseSources(ctx context.Context, sources []source) (*LoadResult, error) {
	var (
		mu     sync.Mutex
		result = &LoadResult{Files: make(map[string]*FileInfo, len(sources))}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, src := range sources {
		src := src

		g.Go(func() error {
			content := src.content
			if !src.inMemory {
				var err error
				content, err = os.ReadFile(src.path)
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", src.path, err)
				}
			}

			info, err := s.ParseSource(ctx, src.path, content)
			if err != nil {
				return fmt.Errorf("failed to parse file %s: %w", src.path, err)
			}

			mu.Lock()
			result.Files[src.path] = info
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for path, info := range result.Files {
		if info.HasErrors {
			s.debug.Printf("warning: syntax errors in %s, declarations may be incomplete", path)
		}
	}
	s.debug.Printf("loader: parsed %d files", len(result.Files))

	return result, nil
}

// shouldSkipFile checks if a file should be skipped
func (s *Service) shouldSkipFile(path string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".spec"+s.parseExtension) || strings.HasSuffix(lower, ".test"+s.parseExtension) {
		return true
	}
	if strings.HasSuffix(lower, ".d.ts") && s.parseExtension == ".ts" {
		return false
	}
	return filepath.Ext(path) != s.parseExtension
}

// shouldSkipDir checks if a directory should be skipped
func (s *Service) shouldSkipDir(path string, f os.FileInfo) error {
	if !f.IsDir() {
		return nil
	}

	if !s.parseVendor && f.Name() == "node_modules" {
		return filepath.SkipDir
	}
	if f.Name() == "dist" {
		return filepath.SkipDir
	}
	if len(f.Name()) > 1 && f.Name()[0] == '.' && f.Name() != ".." {
		return filepath.SkipDir
	}

	if s.excludes != nil {
		if _, ok := s.excludes[path]; ok {
			return filepath.SkipDir
		}
		if _, ok := s.excludes[f.Name()]; ok {
			return filepath.SkipDir
		}
	}

	return nil
}
