package registry

import (
	"sort"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

// Lookup finds the single declaration whose simple name matches the
// rightmost segment of name. When kinds are given only declarations of
// those kinds are considered. A qualified name narrows several matches to
// the one declared in that namespace.
func (s *Service) Lookup(name string, kinds ...domain.DeclKind) (*domain.Declaration, error) {
	candidates := s.candidates(domain.SimpleName(name), kinds)

	if len(candidates) > 1 && domain.Namespace(name) != "" {
		var qualified []*domain.Declaration
		for _, decl := range candidates {
			if decl.QualifiedName() == name {
				qualified = append(qualified, decl)
			}
		}
		if len(qualified) > 0 {
			candidates = qualified
		}
	}

	switch len(candidates) {
	case 0:
		return nil, domain.UnknownDeclaration(name)
	case 1:
		return candidates[0], nil
	default:
		return nil, domain.AmbiguousDeclaration(name, len(candidates))
	}
}

// Enums returns every enum declaration named name.
func (s *Service) Enums(name string) []*domain.Declaration {
	return s.candidates(domain.SimpleName(name), []domain.DeclKind{domain.EnumDecl})
}

// LiteralAliases returns every alias of a union of literal constants named name.
func (s *Service) LiteralAliases(name string) []*domain.Declaration {
	var aliases []*domain.Declaration
	for _, decl := range s.candidates(domain.SimpleName(name), []domain.DeclKind{domain.TypeAliasDecl}) {
		if _, ok := decl.LiteralUnion(); ok {
			aliases = append(aliases, decl)
		}
	}
	return aliases
}

// Validate fails when two enums, or two literal-union aliases, share a name.
func (s *Service) Validate() error {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if enums := s.Enums(name); len(enums) > 1 {
			return domain.DuplicateNamedType("enum", name, files(enums)...)
		}
		if aliases := s.LiteralAliases(name); len(aliases) > 1 {
			return domain.DuplicateNamedType("literal union", name, files(aliases)...)
		}
	}
	return nil
}

func (s *Service) candidates(simple string, kinds []domain.DeclKind) []*domain.Declaration {
	var matches []*domain.Declaration
	for _, decl := range s.byName[simple] {
		if acceptsKind(kinds, decl.Kind) {
			matches = append(matches, decl)
		}
	}
	return matches
}

func acceptsKind(kinds []domain.DeclKind, kind domain.DeclKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func files(decls []*domain.Declaration) []string {
	paths := make([]string, len(decls))
	for i, decl := range decls {
		paths[i] = decl.File
	}
	return paths
}
