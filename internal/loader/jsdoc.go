package loader

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

// docComment returns the description and tags of the JSDoc block right
// before node, or before the export statement wrapping it.
func (p *fileParser) docComment(node *sitter.Node) (string, []domain.Annotation) {
	comment := p.precedingJSDoc(node)
	if comment == "" {
		if parent := node.Parent(); parent != nil && parent.Type() == "export_statement" {
			comment = p.precedingJSDoc(parent)
		}
	}
	if comment == "" {
		return "", nil
	}
	return parseJSDoc(comment)
}

func (p *fileParser) precedingJSDoc(node *sitter.Node) string {
	prev := node.PrevNamedSibling()
	for prev != nil && prev.Type() == "decorator" {
		prev = prev.PrevNamedSibling()
	}
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	comment := p.text(prev)
	if !strings.HasPrefix(comment, "/**") {
		return ""
	}
	return comment
}

// parseJSDoc splits a /** ... */ block into its description and @tags.
func parseJSDoc(comment string) (string, []domain.Annotation) {
	body := strings.TrimSuffix(strings.TrimPrefix(comment, "/**"), "*/")

	var (
		description []string
		tags        []domain.Annotation
	)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))

		if strings.HasPrefix(line, "@") {
			name, rest, _ := strings.Cut(line[1:], " ")
			tag := domain.Annotation{Name: name, Source: domain.DocTagAnnotation}
			if rest = strings.TrimSpace(rest); rest != "" {
				tag.Args = []string{rest}
			}
			tags = append(tags, tag)
			continue
		}

		if len(tags) > 0 {
			// continuation of the previous tag
			if line != "" {
				last := &tags[len(tags)-1]
				last.Args = append(last.Args, line)
			}
			continue
		}
		description = append(description, line)
	}

	return strings.TrimSpace(strings.Join(description, "\n")), tags
}

// decorators returns the decorators written directly on node.
func (p *fileParser) decorators(node *sitter.Node) []domain.Annotation {
	var annotations []domain.Annotation
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		if a, ok := p.decorator(child); ok {
			annotations = append(annotations, a)
		}
	}
	return annotations
}

// decorator reads @Name, @Name(args) and @ns.Name(args).
func (p *fileParser) decorator(node *sitter.Node) (domain.Annotation, bool) {
	expr := firstNamed(node)
	if expr == nil {
		return domain.Annotation{}, false
	}

	a := domain.Annotation{Source: domain.DecoratorAnnotation}
	if expr.Type() == "call_expression" {
		if args := expr.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				a.Args = append(a.Args, p.text(args.NamedChild(i)))
			}
		}
		expr = expr.ChildByFieldName("function")
	}

	switch {
	case expr == nil:
		return domain.Annotation{}, false
	case expr.Type() == "identifier", expr.Type() == "member_expression":
		a.Name = domain.SimpleName(compact(p.text(expr)))
	default:
		return domain.Annotation{}, false
	}
	return a, a.Name != ""
}
