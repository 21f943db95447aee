package loader

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

// typeNode converts a type syntax node. Syntax the resolver does not model
// becomes an unsupported node carrying the grammar's name for it.
func (p *fileParser) typeNode(node *sitter.Node) *domain.TypeNode {
	if node == nil {
		return nil
	}

	switch node.Type() {
	case "predefined_type":
		return domain.Keyword(p.text(node))
	case "null":
		return domain.Keyword(domain.KeywordNull)
	case "undefined":
		return domain.Keyword(domain.KeywordUndefined)
	case "type_identifier", "identifier":
		return domain.Ref(p.text(node))
	case "nested_type_identifier", "nested_identifier", "member_expression":
		return domain.Ref(compact(p.text(node)))
	case "generic_type":
		ref := domain.Ref(compact(p.text(node.ChildByFieldName("name"))))
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			ref.Args = p.typeList(args)
			ref.Syntax = "generic_type"
		}
		return ref
	case "array_type":
		return domain.ArrayOf(p.typeNode(firstNamed(node)))
	case "union_type":
		return domain.UnionOf(p.unionMembers(node)...)
	case "parenthesized_type", "readonly_type":
		return p.typeNode(firstNamed(node))
	case "object_type":
		return domain.ObjectLiteral(p.objectMembers(node)...)
	case "literal_type":
		return p.literalType(node)
	case "function_type", "constructor_type":
		return &domain.TypeNode{Kind: domain.NodeFunction, Syntax: node.Type()}
	}

	return domain.Unsupported(node.Type())
}

// unionMembers flattens A | B | C, which the grammar nests left to right.
func (p *fileParser) unionMembers(node *sitter.Node) []*domain.TypeNode {
	var members []*domain.TypeNode
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "comment":
			continue
		case "union_type":
			members = append(members, p.unionMembers(child)...)
		default:
			members = append(members, p.typeNode(child))
		}
	}
	return members
}

func (p *fileParser) literalType(node *sitter.Node) *domain.TypeNode {
	inner := firstNamed(node)
	if inner == nil {
		return domain.Unsupported(node.Type())
	}

	switch inner.Type() {
	case "null":
		return domain.Keyword(domain.KeywordNull)
	case "undefined":
		return domain.Keyword(domain.KeywordUndefined)
	}

	if lit := p.literal(inner); lit != nil {
		return domain.LiteralOf(lit.Value, lit.Raw)
	}
	return domain.Unsupported(inner.Type())
}

// literal reads a string, number or boolean constant. Anything computed
// yields nil.
func (p *fileParser) literal(node *sitter.Node) *domain.Literal {
	raw := p.text(node)

	switch node.Type() {
	case "string", "template_string":
		return &domain.Literal{Value: unquote(raw), Raw: raw}
	case "number", "unary_expression":
		f, err := strconv.ParseFloat(strings.ReplaceAll(compact(raw), "_", ""), 64)
		if err != nil {
			return nil
		}
		return &domain.Literal{Value: f, Raw: raw}
	case "true", "false":
		return &domain.Literal{Value: node.Type() == "true", Raw: raw}
	}
	return nil
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		switch raw[0] {
		case '"', '\'', '`':
			if raw[len(raw)-1] == raw[0] {
				return raw[1 : len(raw)-1]
			}
		}
	}
	return raw
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
