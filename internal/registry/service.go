// Package registry provides the declaration index for a run. It collects the
// declarations found in each source file and answers name lookups over them.
package registry

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/domain"
)

// FileInfo the declarations read from one source file.
type FileInfo struct {
	// Path absolute path of the source file
	Path string

	// Declarations in source order
	Declarations []*domain.Declaration
}

// Service indexes declarations by their simple name.
type Service struct {
	files  map[string]*FileInfo
	byName map[string][]*domain.Declaration
	debug  Debugger
}

// NewService creates a new registry service.
func NewService() *Service {
	return &Service{
		files:  make(map[string]*FileInfo),
		byName: make(map[string][]*domain.Declaration),
		debug:  console.Logger,
	}
}

// SetDebugger sets the debugger.
func (s *Service) SetDebugger(debug Debugger) {
	s.debug = debug
}

// CollectFile registers the declarations of a source file. A path that was
// already collected is ignored.
func (s *Service) CollectFile(path string, decls []*domain.Declaration) error {
	if s.files == nil {
		s.files = make(map[string]*FileInfo)
	}
	if s.byName == nil {
		s.byName = make(map[string][]*domain.Declaration)
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if _, exists := s.files[path]; exists {
		return nil
	}

	s.files[path] = &FileInfo{Path: path, Declarations: decls}
	for _, decl := range decls {
		if decl.File == "" {
			decl.File = path
		}
		s.byName[decl.Name] = append(s.byName[decl.Name], decl)
	}

	if s.debug != nil && len(decls) > 0 {
		s.debug.Printf("registry: %d declarations in %s", len(decls), path)
	}

	return nil
}

// RangeFiles iterates over files in alphabetic order.
func (s *Service) RangeFiles(handle func(info *FileInfo) error) error {
	sortedFiles := make([]*FileInfo, 0, len(s.files))
	for _, info := range s.files {
		sortedFiles = append(sortedFiles, info)
	}

	sort.Slice(sortedFiles, func(i, j int) bool {
		return strings.Compare(sortedFiles[i].Path, sortedFiles[j].Path) < 0
	})

	for _, info := range sortedFiles {
		err := handle(info)
		if err != nil {
			return err
		}
	}

	return nil
}

// Declarations returns every declaration, files in alphabetic order and
// declarations in source order within a file.
func (s *Service) Declarations() []*domain.Declaration {
	var decls []*domain.Declaration
	_ = s.RangeFiles(func(info *FileInfo) error {
		decls = append(decls, info.Declarations...)
		return nil
	})
	return decls
}

// FileCount returns the number of collected files.
func (s *Service) FileCount() int {
	return len(s.files)
}
