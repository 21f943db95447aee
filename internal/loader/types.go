package loader

import "github.com/griffnb/core-tsdoc/internal/domain"

// Service loads TypeScript sources and extracts their declarations.
type Service struct {
	parseVendor    bool
	excludes       map[string]struct{}
	parseExtension string
	debug          Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the results of loading sources
type LoadResult struct {
	// Files parsed files keyed by path
	Files map[string]*FileInfo
}

// FileInfo contains the declarations parsed from one source file
type FileInfo struct {
	Path         string
	Declarations []*domain.Declaration

	// HasErrors the parser recovered from syntax errors in this file
	HasErrors bool
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
