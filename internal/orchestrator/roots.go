package orchestrator

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/griffnb/core-tsdoc/internal/domain"
	"github.com/griffnb/core-tsdoc/internal/loader"
)

// root a type reference the document is built from.
type root struct {
	expr string
	node *domain.TypeNode
}

// roots returns the configured roots, or every non-generic class and
// interface when none are configured.
func (s *Service) roots(ctx context.Context) ([]root, error) {
	if len(s.config.Roots) > 0 {
		return parseRootsParallel(ctx, s.config.Roots)
	}
	return defaultRoots(s.registry.Declarations()), nil
}

// parseRootsParallel parses the root expressions concurrently using an
// errgroup bounded by the number of CPUs. Each result is stored at its
// input position so the order matches the configuration.
func parseRootsParallel(ctx context.Context, exprs []string) ([]root, error) {
	roots := make([]root, len(exprs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, expr := range exprs {
		i, expr := i, expr

		g.Go(func() error {
			node, err := loader.ParseTypeExpr(ctx, expr)
			if err != nil {
				return fmt.Errorf("failed to parse root: %w", err)
			}
			roots[i] = root{expr: expr, node: node}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return roots, nil
}

func defaultRoots(decls []*domain.Declaration) []root {
	var roots []root
	for _, decl := range decls {
		if decl.IsGeneric() {
			continue
		}
		if decl.Kind != domain.ClassDecl && decl.Kind != domain.InterfaceDecl {
			continue
		}
		name := decl.QualifiedName()
		roots = append(roots, root{expr: name, node: domain.Ref(name)})
	}
	return roots
}
