package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-tsdoc/internal/domain"
	"github.com/griffnb/core-tsdoc/internal/registry"
)

func newIndex(t *testing.T, decls ...*domain.Declaration) *registry.Service {
	t.Helper()
	index := registry.NewService()
	index.SetDebugger(nil)
	require.NoError(t, index.CollectFile("/src/models.ts", decls))
	return index
}

func iface(name string, members ...*domain.Member) *domain.Declaration {
	return &domain.Declaration{Kind: domain.InterfaceDecl, Name: name, Members: members}
}

func class(name string, members ...*domain.Member) *domain.Declaration {
	return &domain.Declaration{Kind: domain.ClassDecl, Name: name, Members: members}
}

func generic(decl *domain.Declaration, params ...string) *domain.Declaration {
	for _, p := range params {
		decl.TypeParams = append(decl.TypeParams, domain.TypeParam{Name: p})
	}
	return decl
}

func extends(decl *domain.Declaration, bases ...*domain.TypeNode) *domain.Declaration {
	decl.Heritage = append(decl.Heritage, bases...)
	return decl
}

func alias(name string, typ *domain.TypeNode) *domain.Declaration {
	return &domain.Declaration{Kind: domain.TypeAliasDecl, Name: name, Type: typ}
}

func enumDecl(name string, members ...domain.EnumMember) *domain.Declaration {
	return &domain.Declaration{Kind: domain.EnumDecl, Name: name, EnumMembers: members}
}

func documented(m *domain.Member, doc string) *domain.Member {
	m.Doc = doc
	return m
}

func annotated(m *domain.Member, source domain.AnnotationSource, names ...string) *domain.Member {
	for _, n := range names {
		m.Annotations = append(m.Annotations, domain.Annotation{Name: n, Source: source})
	}
	return m
}

func str() *domain.TypeNode { return domain.Keyword(domain.KeywordString) }
func num() *domain.TypeNode { return domain.Keyword(domain.KeywordNumber) }
func boolean() *domain.TypeNode { return domain.Keyword(domain.KeywordBoolean) }

func mustResolve(t *testing.T, r *Resolver, node *domain.TypeNode) TypeExpression {
	t.Helper()
	expr, err := r.Resolve(node, EmptyBinding)
	require.NoError(t, err)
	return expr
}

func mustReference(t *testing.T, r *Resolver, key string) *Reference {
	t.Helper()
	ref, ok := r.Table().Get(key)
	require.True(t, ok, "table has no entry %q (keys: %v)", key, r.Table().Keys())
	return ref
}

func mustProperty(t *testing.T, ref *Reference, name string) Property {
	t.Helper()
	prop, ok := ref.Property(name)
	require.True(t, ok, "%s has no property %q", ref.Key, name)
	return prop
}

func propertyNames(ref *Reference) []string {
	names := make([]string, len(ref.Properties))
	for i, p := range ref.Properties {
		names[i] = p.Name
	}
	return names
}
