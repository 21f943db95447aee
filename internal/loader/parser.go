package loader

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

// ParseSource parses one TypeScript file and returns its class, interface,
// type alias and enum declarations in source order.
func (s *Service) ParseSource(ctx context.Context, path string, content []byte) (*FileInfo, error) {
	tree, err := parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	fp := &fileParser{path: path, src: content}
	fp.statements(root, "")

	return &FileInfo{
		Path:         path,
		Declarations: fp.decls,
		HasErrors:    root.HasError(),
	}, nil
}

// ParseTypeExpr parses a standalone type expression such as
// "Promise<ResultList<User>>".
func ParseTypeExpr(ctx context.Context, expr string) (*domain.TypeNode, error) {
	content := []byte("type __Root = " + expr + ";")
	tree, err := parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("invalid type expression %q", expr)
	}

	fp := &fileParser{src: content}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "type_alias_declaration" {
			continue
		}
		if value := child.ChildByFieldName("value"); value != nil {
			return fp.typeNode(value), nil
		}
	}
	return nil, fmt.Errorf("invalid type expression %q", expr)
}

func parse(ctx context.Context, content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	return parser.ParseCtx(ctx, nil, content)
}

// fileParser extracts declarations from one syntax tree.
type fileParser struct {
	path  string
	src   []byte
	decls []*domain.Declaration
}

func (p *fileParser) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(p.src)
}

// statements walks a program or namespace body.
func (p *fileParser) statements(node *sitter.Node, namespace string) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "export_statement":
			p.exportStatement(child, namespace)
		case "class_declaration", "abstract_class_declaration", "interface_declaration",
			"type_alias_declaration", "enum_declaration":
			p.declaration(child, namespace, nil)
		case "internal_module", "module":
			p.namespace(child, namespace)
		case "expression_statement", "ambient_declaration":
			p.statements(child, namespace)
		}
	}
}

func (p *fileParser) exportStatement(node *sitter.Node, namespace string) {
	var decorators []domain.Annotation
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "decorator":
			if a, ok := p.decorator(child); ok {
				decorators = append(decorators, a)
			}
		case "class_declaration", "abstract_class_declaration", "interface_declaration",
			"type_alias_declaration", "enum_declaration":
			p.declaration(child, namespace, decorators)
		case "internal_module", "module":
			p.namespace(child, namespace)
		case "ambient_declaration":
			p.statements(child, namespace)
		}
	}
}

func (p *fileParser) namespace(node *sitter.Node, parent string) {
	name := p.text(node.ChildByFieldName("name"))
	body := node.ChildByFieldName("body")
	if name == "" || body == nil {
		return
	}
	if parent != "" {
		name = parent + "." + name
	}
	p.statements(body, name)
}

func (p *fileParser) declaration(node *sitter.Node, namespace string, decorators []domain.Annotation) {
	decl := &domain.Declaration{
		Name:      p.text(node.ChildByFieldName("name")),
		Namespace: namespace,
		File:      p.path,
	}
	if decl.Name == "" {
		return
	}

	decl.Doc, decl.Annotations = p.docComment(node)
	decl.Annotations = append(decl.Annotations, decorators...)
	decl.Annotations = append(decl.Annotations, p.decorators(node)...)
	decl.TypeParams = p.typeParams(node.ChildByFieldName("type_parameters"))

	switch node.Type() {
	case "class_declaration", "abstract_class_declaration":
		decl.Kind = domain.ClassDecl
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child.Type() == "class_heritage" {
				decl.Heritage = p.classHeritage(child)
			}
		}
		decl.Members = p.classMembers(node.ChildByFieldName("body"))
	case "interface_declaration":
		decl.Kind = domain.InterfaceDecl
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child.Type() == "extends_type_clause" {
				decl.Heritage = append(decl.Heritage, p.typeList(child)...)
			}
		}
		decl.Members = p.objectMembers(node.ChildByFieldName("body"))
	case "type_alias_declaration":
		decl.Kind = domain.TypeAliasDecl
		decl.Type = p.typeNode(node.ChildByFieldName("value"))
	case "enum_declaration":
		decl.Kind = domain.EnumDecl
		decl.EnumMembers = p.enumMembers(node.ChildByFieldName("body"))
	default:
		return
	}

	p.decls = append(p.decls, decl)
}

func (p *fileParser) typeParams(node *sitter.Node) []domain.TypeParam {
	if node == nil {
		return nil
	}
	var params []domain.TypeParam
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "type_parameter" {
			continue
		}
		param := domain.TypeParam{Name: p.text(child.ChildByFieldName("name"))}
		if def := child.ChildByFieldName("value"); def != nil {
			param.Default = p.typeNode(firstNamed(def))
		}
		params = append(params, param)
	}
	return params
}

// classHeritage reads extends and implements clauses. Extends clauses hold
// expressions followed by optional type arguments.
func (p *fileParser) classHeritage(node *sitter.Node) []*domain.TypeNode {
	var heritage []*domain.TypeNode
	for i := 0; i < int(node.NamedChildCount()); i++ {
		clause := node.NamedChild(i)
		switch clause.Type() {
		case "extends_clause":
			var last *domain.TypeNode
			for j := 0; j < int(clause.NamedChildCount()); j++ {
				child := clause.NamedChild(j)
				switch child.Type() {
				case "identifier", "member_expression", "nested_identifier":
					last = domain.Ref(p.text(child))
					heritage = append(heritage, last)
				case "type_arguments":
					if last != nil {
						last.Args = p.typeList(child)
						last.Syntax = "generic_type"
					}
				case "type_identifier", "nested_type_identifier", "generic_type":
					last = p.typeNode(child)
					heritage = append(heritage, last)
				}
			}
		case "implements_clause":
			heritage = append(heritage, p.typeList(clause)...)
		}
	}
	return heritage
}

func (p *fileParser) typeList(node *sitter.Node) []*domain.TypeNode {
	var types []*domain.TypeNode
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		types = append(types, p.typeNode(child))
	}
	return types
}

func (p *fileParser) classMembers(body *sitter.Node) []*domain.Member {
	if body == nil {
		return nil
	}

	var (
		members []*domain.Member
		pending []domain.Annotation
	)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)

		var member *domain.Member
		switch child.Type() {
		case "decorator":
			// some grammar versions hang member decorators off the class body
			if a, ok := p.decorator(child); ok {
				pending = append(pending, a)
			}
			continue
		case "public_field_definition", "property_signature":
			member = p.property(child)
		case "method_definition":
			if p.text(child.ChildByFieldName("name")) == "constructor" {
				members = append(members, p.constructorParams(child.ChildByFieldName("parameters"))...)
				pending = nil
				continue
			}
			member = p.method(child)
		case "method_signature", "abstract_method_signature":
			member = p.method(child)
		case "index_signature":
			member = p.indexSignature(child)
		default:
			continue
		}

		member.Annotations = append(member.Annotations, pending...)
		pending = nil
		members = append(members, member)
	}
	return members
}

func (p *fileParser) objectMembers(body *sitter.Node) []*domain.Member {
	if body == nil {
		return nil
	}

	var members []*domain.Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "property_signature":
			members = append(members, p.property(child))
		case "method_signature":
			members = append(members, p.method(child))
		case "index_signature":
			members = append(members, p.indexSignature(child))
		}
	}
	return members
}

func (p *fileParser) property(node *sitter.Node) *domain.Member {
	m := &domain.Member{Kind: domain.PropertyMember, Name: p.memberName(node.ChildByFieldName("name"))}
	m.Doc, m.Annotations = p.docComment(node)
	m.Annotations = append(m.Annotations, p.decorators(node)...)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "?":
			m.Optional = true
		case "static":
			m.Static = true
		case "accessibility_modifier":
			m.Accessibility = p.text(child)
		}
	}
	if len(m.Name) > 0 && m.Name[0] == '#' {
		m.Accessibility = "private"
	}

	m.Type = p.annotatedType(node.ChildByFieldName("type"), m)
	return m
}

func (p *fileParser) method(node *sitter.Node) *domain.Member {
	m := &domain.Member{Kind: domain.MethodMember, Name: p.memberName(node.ChildByFieldName("name"))}
	m.Doc, m.Annotations = p.docComment(node)
	return m
}

func (p *fileParser) constructorParams(params *sitter.Node) []*domain.Member {
	if params == nil {
		return nil
	}

	var members []*domain.Member
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		if param.Type() != "required_parameter" && param.Type() != "optional_parameter" {
			continue
		}

		m := &domain.Member{
			Kind:     domain.ConstructorParamMember,
			Name:     p.text(param.ChildByFieldName("pattern")),
			Optional: param.Type() == "optional_parameter",
		}
		m.Doc, m.Annotations = p.docComment(param)
		m.Annotations = append(m.Annotations, p.decorators(param)...)
		for j := 0; j < int(param.NamedChildCount()); j++ {
			if child := param.NamedChild(j); child.Type() == "accessibility_modifier" {
				m.Accessibility = p.text(child)
			}
		}
		m.Type = p.annotatedType(param.ChildByFieldName("type"), m)
		members = append(members, m)
	}
	return members
}

func (p *fileParser) indexSignature(node *sitter.Node) *domain.Member {
	m := &domain.Member{Kind: domain.IndexSignatureMember, Name: p.text(node.ChildByFieldName("name"))}
	m.Doc, m.Annotations = p.docComment(node)

	if key := node.ChildByFieldName("index_type"); key != nil {
		m.IndexKey = p.typeNode(key)
	} else {
		m.IndexKey = domain.Unsupported("mapped_type_clause")
	}
	m.Type = p.annotatedType(node.ChildByFieldName("type"), m)
	return m
}

func (p *fileParser) memberName(node *sitter.Node) string {
	name := p.text(node)
	if node != nil && node.Type() == "string" {
		return unquote(name)
	}
	return name
}

func (p *fileParser) enumMembers(body *sitter.Node) []domain.EnumMember {
	if body == nil {
		return nil
	}

	var members []domain.EnumMember
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "property_identifier", "string":
			members = append(members, domain.EnumMember{Name: p.memberName(child)})
		case "enum_assignment":
			member := domain.EnumMember{Name: p.memberName(child.ChildByFieldName("name"))}
			if value := child.ChildByFieldName("value"); value != nil {
				member.Value = p.literal(value)
			}
			members = append(members, member)
		}
	}
	return members
}

// annotatedType reads the type of a ": T" annotation and attaches site to it.
func (p *fileParser) annotatedType(annotation *sitter.Node, site domain.Site) *domain.TypeNode {
	typ := p.typeNode(firstNamed(annotation))
	if typ != nil {
		typ.Site = site
	}
	return typ
}

func firstNamed(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}
