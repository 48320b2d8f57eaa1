//go:build cgo

package javaparser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"javadox/internal/errors"
	"javadox/internal/javadoc"
	"javadox/internal/model"
	"javadox/internal/slogutil"
)

// Parser turns Java source into model entities. It is safe for
// concurrent use; each call borrows its own tree-sitter parser.
type Parser struct {
	logger *slog.Logger
	pool   sync.Pool
}

// NewParser creates a parser for the tree-sitter Java grammar.
func NewParser(logger *slog.Logger) *Parser {
	p := &Parser{logger: slogutil.OrDiscard(logger)}
	p.pool.New = func() any {
		sp := sitter.NewParser()
		sp.SetLanguage(java.GetLanguage())
		return sp
	}
	return p
}

// IsAvailable returns true when the tree-sitter parser is compiled in.
func IsAvailable() bool {
	return true
}

// ParseSource parses src, attributed to path, into a Source. Syntax errors
// in the tree are tolerated: whatever declarations tree-sitter recovered
// are kept and a warning is logged.
func (p *Parser) ParseSource(ctx context.Context, path string, src []byte) (*model.Source, error) {
	sp := p.pool.Get().(*sitter.Parser)
	defer p.pool.Put(sp)

	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.New(errors.ParseFailed, fmt.Sprintf("cannot parse %s", path), err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, errors.New(errors.ParseFailed, fmt.Sprintf("cannot parse %s", path), nil)
	}
	if root.HasError() {
		p.logger.Warn("Source contains syntax errors", "path", path)
	}

	b := &builder{src: src}
	source := model.NewSource(path)

	var imports []string
	var classes []*model.Class
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			source.SetPackageName(b.declarationName(child, "package"))
		case "import_declaration":
			imports = append(imports, b.declarationName(child, "import"))
		default:
			if cls := b.typeDeclaration(child); cls != nil {
				classes = append(classes, cls)
			}
		}
	}
	source.SetImports(imports)
	source.SetClasses(classes)

	p.logger.Debug("Parsed source",
		"path", path,
		"package", source.PackageName(),
		"classes", len(source.AllClasses()),
	)
	return source, nil
}

type builder struct {
	src []byte
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.src)
}

// declarationName returns the text of a package or import declaration
// without its keyword and semicolon, whitespace collapsed.
func (b *builder) declarationName(n *sitter.Node, keyword string) string {
	s := strings.TrimSpace(b.text(n))
	s = strings.TrimPrefix(s, keyword)
	s = strings.TrimSuffix(s, ";")
	return strings.Join(strings.Fields(s), " ")
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// typeDeclaration builds a class, interface or enum, or returns nil for
// any other node.
func (b *builder) typeDeclaration(n *sitter.Node) *model.Class {
	var kind model.ClassKind
	switch n.Type() {
	case "class_declaration":
		kind = model.KindClass
	case "interface_declaration":
		kind = model.KindInterface
	case "enum_declaration":
		kind = model.KindEnum
	default:
		return nil
	}

	cls := model.NewClass(b.text(n.ChildByFieldName("name")))
	cls.SetKind(kind)
	b.populate(&cls.Entity, n)

	if sc := n.ChildByFieldName("superclass"); sc != nil && sc.NamedChildCount() > 0 {
		cls.SetSuperClass(b.text(sc.NamedChild(0)))
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "super_interfaces":
			cls.SetImplements(b.typeList(child))
		case "extends_interfaces":
			// interface extension is recorded as implemented types
			cls.SetImplements(b.typeList(child))
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return cls
	}

	var (
		fields    []*model.Field
		methods   []*model.Method
		nested    []*model.Class
		constants []string
	)
	collect := func(member *sitter.Node) {
		switch member.Type() {
		case "field_declaration", "constant_declaration":
			fields = append(fields, b.fields(member)...)
		case "method_declaration", "constructor_declaration":
			methods = append(methods, b.method(member))
		case "enum_constant":
			constants = append(constants, b.text(member.ChildByFieldName("name")))
		default:
			if inner := b.typeDeclaration(member); inner != nil {
				nested = append(nested, inner)
			}
		}
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() == "enum_body_declarations" {
			for j := 0; j < int(member.NamedChildCount()); j++ {
				collect(member.NamedChild(j))
			}
			continue
		}
		collect(member)
	}

	cls.SetEnumConstants(constants)
	cls.SetFields(fields)
	cls.SetMethods(methods)
	cls.SetNestedClasses(nested)
	return cls
}

func (b *builder) typeList(n *sitter.Node) []string {
	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "type_list" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				out = append(out, b.text(child.NamedChild(j)))
			}
			continue
		}
		out = append(out, b.text(child))
	}
	return out
}

// populate sets line, modifiers and documentation shared by every
// declaration.
func (b *builder) populate(e *model.Entity, n *sitter.Node) {
	e.SetLine(line(n))
	e.SetModifiers(b.modifiers(n))
	if doc := b.docComment(n); doc != nil {
		javadoc.Apply(e, b.text(doc), line(doc))
	}
}

// modifiers collects keyword modifiers in source order. Annotations are
// skipped.
func (b *builder) modifiers(n *sitter.Node) []string {
	var mods *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "modifiers" {
			mods = child
			break
		}
	}
	if mods == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(mods.ChildCount()); i++ {
		child := mods.Child(i)
		if child.IsNamed() {
			continue
		}
		out = append(out, b.text(child))
	}
	return out
}

// docComment returns the /** */ block directly preceding n, or nil.
func (b *builder) docComment(n *sitter.Node) *sitter.Node {
	prev := n.PrevNamedSibling()
	if prev == nil {
		return nil
	}
	switch prev.Type() {
	case "block_comment", "comment":
		if javadoc.IsDocComment(b.text(prev)) {
			return prev
		}
	}
	return nil
}

// fields returns one Field per declarator; all of them share the
// declaration's type, modifiers and documentation.
func (b *builder) fields(n *sitter.Node) []*model.Field {
	typ := b.text(n.ChildByFieldName("type"))
	var out []*model.Field
	for i := 0; i < int(n.NamedChildCount()); i++ {
		decl := n.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		fieldType := typ
		if dims := decl.ChildByFieldName("dimensions"); dims != nil {
			fieldType += b.text(dims)
		}
		f := model.NewField(fieldType, b.text(decl.ChildByFieldName("name")))
		b.populate(&f.Entity, n)
		if value := decl.ChildByFieldName("value"); value != nil {
			f.SetInitializer(b.text(value))
		}
		out = append(out, f)
	}
	return out
}

func (b *builder) method(n *sitter.Node) *model.Method {
	name := b.text(n.ChildByFieldName("name"))
	var m *model.Method
	if n.Type() == "method_declaration" {
		returnType := b.text(n.ChildByFieldName("type"))
		if dims := n.ChildByFieldName("dimensions"); dims != nil {
			returnType += b.text(dims)
		}
		m = model.NewMethod(returnType, name)
	} else {
		m = model.NewConstructor(name)
	}
	b.populate(&m.Entity, n)

	if params := n.ChildByFieldName("parameters"); params != nil {
		m.SetParameters(b.parameters(params))
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "throws" {
			continue
		}
		var exceptions []string
		for j := 0; j < int(child.NamedChildCount()); j++ {
			exceptions = append(exceptions, b.text(child.NamedChild(j)))
		}
		m.SetExceptions(exceptions)
	}

	if body := n.ChildByFieldName("body"); body != nil {
		m.SetBody(b.blockInner(body))
	}
	return m
}

// blockInner returns the text between the braces of a block.
func (b *builder) blockInner(n *sitter.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if end-start < 2 {
		return ""
	}
	return string(b.src[start+1 : end-1])
}

func (b *builder) parameters(n *sitter.Node) []*model.Parameter {
	var out []*model.Parameter
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "formal_parameter":
			typ := b.text(child.ChildByFieldName("type"))
			if dims := child.ChildByFieldName("dimensions"); dims != nil {
				typ += b.text(dims)
			}
			p := model.NewParameter(typ, b.text(child.ChildByFieldName("name")), false)
			p.SetLine(line(child))
			p.SetModifiers(b.modifiers(child))
			out = append(out, p)
		case "spread_parameter":
			out = append(out, b.spreadParameter(child))
		}
	}
	return out
}

// spreadParameter handles `T... name`, whose grammar node carries no
// field names.
func (b *builder) spreadParameter(n *sitter.Node) *model.Parameter {
	var typ, name string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "modifiers":
		case "variable_declarator":
			name = b.text(child.ChildByFieldName("name"))
		default:
			if typ == "" {
				typ = b.text(child)
			}
		}
	}
	p := model.NewParameter(typ, name, true)
	p.SetLine(line(n))
	p.SetModifiers(b.modifiers(n))
	return p
}
