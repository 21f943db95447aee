package orchestrator

import (
	"github.com/go-openapi/spec"

	"github.com/griffnb/core-tsdoc/internal/schema"
)

// assemble copies the definitions built when the run finished into the
// document and drops the ones no root reaches, such as base types that
// were only resolved to be flattened into their subtypes.
func (s *Service) assemble(rootSchemas []*spec.Schema) {
	if s.swagger.Definitions == nil {
		s.swagger.Definitions = make(spec.Definitions)
	}

	for name, def := range s.schemaBuilder.Definitions() {
		s.swagger.Definitions[name] = def
	}

	before := len(s.swagger.Definitions)
	schema.RemoveUnusedDefinitions(s.swagger, rootSchemas...)
	if removed := before - len(s.swagger.Definitions); removed > 0 {
		s.config.Debug.Printf("Orchestrator: Removed %d unreferenced definitions", removed)
	}
}
