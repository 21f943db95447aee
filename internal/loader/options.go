package loader

import "strings"

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		parseVendor:    false,
		excludes:       make(map[string]struct{}),
		parseExtension: ".ts",
		debug:          &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithParseVendor sets whether to parse node_modules directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithExcludes sets directory exclusion patterns
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithParseExtension sets the file extension to parse
func WithParseExtension(ext string) Option {
	return func(s *Service) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.parseExtension = ext
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debug Debugger) Option {
	return func(s *Service) {
		if debug != nil {
			s.debug = debug
		}
	}
}
