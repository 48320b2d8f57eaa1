package model

import (
	"strings"
	"weak"
)

// Method is a method or constructor declaration.
type Method struct {
	Entity

	name        string
	returnType  string
	constructor bool
	params      []*Parameter
	exceptions  []string
	body        string
	hasBody     bool
}

// NewMethod creates a method returning the given raw type text.
func NewMethod(returnType, name string) *Method {
	return &Method{returnType: returnType, name: name}
}

// NewConstructor creates a constructor declaration.
func NewConstructor(name string) *Method {
	return &Method{name: name, constructor: true}
}

func (m *Method) Name() string        { return m.name }
func (m *Method) ReturnType() string  { return m.returnType }
func (m *Method) IsConstructor() bool { return m.constructor }

// Parameters returns the formal parameters in order.
func (m *Method) Parameters() []*Parameter {
	if m.params == nil {
		return []*Parameter{}
	}
	return m.params
}

// SetParameters replaces the parameters and points each one back at m.
func (m *Method) SetParameters(params []*Parameter) {
	for _, p := range params {
		p.setParentMethod(m)
	}
	m.params = params
}

// Exceptions returns the types of the throws clause.
func (m *Method) Exceptions() []string      { return nonNil(m.exceptions) }
func (m *Method) SetExceptions(ex []string) { m.exceptions = ex }

// Body returns the text between the braces of the method body.
func (m *Method) Body() string { return m.body }

// HasBody reports whether the declaration has a block body, as opposed to
// an abstract, native or interface declaration.
func (m *Method) HasBody() bool { return m.hasBody }

// SetBody records the text between the braces of the method body.
func (m *Method) SetBody(body string) {
	m.body = body
	m.hasBody = true
}

// DeclarationSignature renders the declaration header. Accessibility
// modifiers always precede the others.
func (m *Method) DeclarationSignature(withModifiers bool) string {
	buf := &stringSink{}
	if withModifiers {
		m.WriteAccessibilityModifiers(buf)
		m.WriteNonAccessibilityModifiers(buf)
	}
	m.writeSignature(buf)
	return buf.String()
}

// CallSignature renders `name(type name, ...)`.
func (m *Method) CallSignature() string {
	buf := &stringSink{}
	buf.WriteString(m.name)
	m.writeParameters(buf)
	return buf.String()
}

func (m *Method) writeSignature(sink Sink) {
	if !m.constructor {
		sink.WriteString(m.returnType)
		_ = sink.WriteByte(' ')
	}
	sink.WriteString(m.name)
	m.writeParameters(sink)
	if len(m.exceptions) > 0 {
		sink.WriteString(" throws ")
		sink.WriteString(strings.Join(m.exceptions, ", "))
	}
}

func (m *Method) writeParameters(sink Sink) {
	_ = sink.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sink.WriteString(", ")
		}
		p.writeDeclaration(sink)
	}
	_ = sink.WriteByte(')')
}

// WriteCodeBlock writes the documentation block, the signature and, when
// present, the dedented body.
func (m *Method) WriteCodeBlock(sink CodeSink) {
	m.CommentHeader(sink)
	m.WriteAccessibilityModifiers(sink)
	m.WriteNonAccessibilityModifiers(sink)
	m.writeSignature(sink)

	if !m.hasBody {
		_ = sink.WriteByte(';')
		sink.Newline()
		return
	}

	sink.WriteString(" {")
	sink.Newline()
	sink.Indent()
	for _, line := range dedent(m.body) {
		if line != "" {
			sink.WriteString(line)
		}
		sink.Newline()
	}
	sink.Deindent()
	_ = sink.WriteByte('}')
	sink.Newline()
}

// dedent splits body into lines, drops leading and trailing blank lines and
// removes the indentation common to all non-blank lines.
func dedent(body string) []string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out[i] = strings.TrimRight(line[common:], " \t")
	}
	return out
}

// Parameter is a formal parameter of a method.
type Parameter struct {
	Entity

	name    string
	typ     string
	varArgs bool

	parentMethod weak.Pointer[Method]
}

// NewParameter creates a parameter of the given raw type text.
func NewParameter(typ, name string, varArgs bool) *Parameter {
	return &Parameter{typ: typ, name: name, varArgs: varArgs}
}

func (p *Parameter) Name() string    { return p.name }
func (p *Parameter) Type() string    { return p.typ }
func (p *Parameter) IsVarArgs() bool { return p.varArgs }

func (p *Parameter) setParentMethod(m *Method) {
	p.parentMethod = weak.Make(m)
}

// ParentMethod returns the declaring method, or nil.
func (p *Parameter) ParentMethod() *Method {
	return p.parentMethod.Value()
}

// Source returns the compilation unit of the declaring method. Parameters
// without a method fall back to their own parent class.
func (p *Parameter) Source() (*Source, error) {
	if m := p.ParentMethod(); m != nil {
		return m.Source()
	}
	return p.Entity.Source()
}

func (p *Parameter) String() string {
	buf := &stringSink{}
	p.writeDeclaration(buf)
	return buf.String()
}

func (p *Parameter) writeDeclaration(sink Sink) {
	p.WriteAllModifiers(sink)
	sink.WriteString(p.typ)
	if p.varArgs {
		sink.WriteString("...")
	}
	_ = sink.WriteByte(' ')
	sink.WriteString(p.name)
}

// stringSink is a Sink without indentation.
type stringSink struct {
	strings.Builder
}

func (s *stringSink) WriteString(str string) { _, _ = s.Builder.WriteString(str) }
func (s *stringSink) Newline()               { _ = s.Builder.WriteByte('\n') }
