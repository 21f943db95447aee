// Package orchestrator coordinates all services to generate OpenAPI documentation.
// It provides a clean, simple coordinator that delegates to specialized services.
package orchestrator

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-tsdoc/internal/loader"
	"github.com/griffnb/core-tsdoc/internal/registry"
	"github.com/griffnb/core-tsdoc/internal/resolver"
	"github.com/griffnb/core-tsdoc/internal/schema"
)

// Service coordinates all parsing services to generate OpenAPI documentation.
type Service struct {
	loader        *loader.Service
	registry      *registry.Service
	schemaBuilder *schema.BuilderService
	swagger       *spec.Swagger
	table         *resolver.Table
	config        *Config
}

// Config holds orchestrator configuration options.
type Config struct {
	ParseVendor    bool
	Excludes       map[string]struct{}
	ParseExtension string

	// Roots type references whose schemas the document must contain. When
	// empty every non-generic class and interface is a root.
	Roots []string

	// Vocabulary recognized reference names; nil means the resolver defaults
	Vocabulary *resolver.Vocabulary

	// Overrides replace (or, with an empty value, skip) named types
	Overrides map[string]string

	Title       string
	Version     string
	Description string

	Debug Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(format string, v ...interface{}) {}

// New creates a new orchestrator service with the given configuration.
func New(config *Config) *Service {
	if config == nil {
		config = &Config{}
	}

	// Apply defaults for zero values
	if config.Excludes == nil {
		config.Excludes = make(map[string]struct{})
	}
	if config.ParseExtension == "" {
		config.ParseExtension = ".ts"
	}
	if config.Overrides == nil {
		config.Overrides = make(map[string]string)
	}
	if config.Debug == nil {
		config.Debug = noOpDebugger{}
	}

	loaderService := loader.NewService(
		loader.WithParseVendor(config.ParseVendor),
		loader.WithExcludes(config.Excludes),
		loader.WithParseExtension(config.ParseExtension),
		loader.WithDebugger(config.Debug),
	)

	registryService := registry.NewService()
	registryService.SetDebugger(config.Debug)

	schemaBuilder := schema.NewBuilder()
	schemaBuilder.SetDebugger(config.Debug)

	swagger := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       config.Title,
					Version:     config.Version,
					Description: config.Description,
				},
			},
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: make(spec.Definitions),
		},
	}

	return &Service{
		loader:        loaderService,
		registry:      registryService,
		schemaBuilder: schemaBuilder,
		swagger:       swagger,
		config:        config,
	}
}

// Parse generates OpenAPI documentation from the TypeScript sources under
// the given search directories.
func (s *Service) Parse(ctx context.Context, searchDirs []string) (*spec.Swagger, error) {
	s.config.Debug.Printf("Orchestrator: Starting parse with %d search dirs", len(searchDirs))

	loadResult, err := s.loader.LoadSearchDirs(ctx, searchDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to load search directories: %w", err)
	}
	return s.build(ctx, loadResult)
}

// ParseArchive generates OpenAPI documentation from the sources bundled in
// a txtar archive.
func (s *Service) ParseArchive(ctx context.Context, path string) (*spec.Swagger, error) {
	s.config.Debug.Printf("Orchestrator: Starting parse of archive %s", path)

	loadResult, err := s.loader.LoadArchiveFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive %s: %w", path, err)
	}
	return s.build(ctx, loadResult)
}

func (s *Service) build(ctx context.Context, loadResult *loader.LoadResult) (*spec.Swagger, error) {
	// Step 1: Register declarations
	s.config.Debug.Printf("Orchestrator: Step 1 - Registering declarations from %d files", len(loadResult.Files))

	paths := make([]string, 0, len(loadResult.Files))
	for path := range loadResult.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		info := loadResult.Files[path]
		if err := s.registry.CollectFile(info.Path, info.Declarations); err != nil {
			return nil, fmt.Errorf("failed to collect file %s: %w", info.Path, err)
		}
	}

	if err := s.registry.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Resolve roots
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, err
	}
	s.config.Debug.Printf("Orchestrator: Step 2 - Resolving %d roots", len(roots))

	r := s.newResolver()
	r.OnFinish(s.schemaBuilder.BuildDefinitions)

	rootSchemas := make([]*spec.Schema, 0, len(roots))
	for _, root := range roots {
		expr, err := r.Resolve(root.node, resolver.EmptyBinding)
		if err != nil {
			return nil, fmt.Errorf("root %s: %w", root.expr, err)
		}
		rootSchemas = append(rootSchemas, s.schemaBuilder.BuildSchema(expr))
	}

	// Step 3: Finish the run, which builds the definitions
	table, err := r.Finish()
	if err != nil {
		return nil, err
	}
	s.table = table
	s.config.Debug.Printf("Orchestrator: Step 3 - Resolved %d references", table.Len())

	// Step 4: Assemble the document
	s.assemble(rootSchemas)
	s.config.Debug.Printf("Orchestrator: Parse complete with %d definitions", len(s.swagger.Definitions))

	return s.swagger, nil
}

func (s *Service) newResolver() *resolver.Resolver {
	options := []resolver.Option{resolver.WithOverrides(s.config.Overrides)}
	if s.config.Vocabulary != nil {
		options = append(options, resolver.WithVocabulary(*s.config.Vocabulary))
	}
	return resolver.New(s.registry, options...)
}

// GetSwagger returns the swagger specification.
func (s *Service) GetSwagger() *spec.Swagger {
	return s.swagger
}

// Table returns the reference table of the last parse, or nil before one.
func (s *Service) Table() *resolver.Table {
	return s.table
}

// Registry returns the registry service for external access.
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// SchemaBuilder returns the schema builder service for external access.
func (s *Service) SchemaBuilder() *schema.BuilderService {
	return s.schemaBuilder
}
