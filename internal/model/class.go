package model

import (
	"strings"
	"weak"

	"javadox/internal/errors"
)

// ClassKind distinguishes the type declaration forms.
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindEnum      ClassKind = "enum"
)

// Class is a class, interface or enum declaration. A top-level class
// points at its Source; a nested class points at its enclosing Class.
// Neither back-reference keeps the target alive: the Source owns its
// classes and each Class owns its members.
type Class struct {
	Entity

	name          string
	kind          ClassKind
	superClass    string
	implements    []string
	enumConstants []string
	fields        []*Field
	methods       []*Method
	nested        []*Class

	parentSource weak.Pointer[Source]
	hasSource    bool
}

// NewClass creates an empty class declaration.
func NewClass(name string) *Class {
	return &Class{name: name, kind: KindClass}
}

func (c *Class) Name() string           { return c.name }
func (c *Class) Kind() ClassKind        { return c.kind }
func (c *Class) SetKind(kind ClassKind) { c.kind = kind }
func (c *Class) IsInterface() bool      { return c.kind == KindInterface }
func (c *Class) IsEnum() bool           { return c.kind == KindEnum }

// SuperClass returns the raw text of the extends clause of a class.
func (c *Class) SuperClass() string       { return c.superClass }
func (c *Class) SetSuperClass(s string)   { c.superClass = s }
func (c *Class) Implements() []string     { return nonNil(c.implements) }
func (c *Class) SetImplements(i []string) { c.implements = i }

// EnumConstants returns the constant names of an enum, in order.
func (c *Class) EnumConstants() []string      { return nonNil(c.enumConstants) }
func (c *Class) SetEnumConstants(cs []string) { c.enumConstants = cs }

// Fields returns the fields in declaration order.
func (c *Class) Fields() []*Field {
	if c.fields == nil {
		return []*Field{}
	}
	return c.fields
}

// SetFields replaces the fields and points each one back at c.
func (c *Class) SetFields(fields []*Field) {
	for _, f := range fields {
		f.SetParentClass(c)
	}
	c.fields = fields
}

// Methods returns methods and constructors in declaration order.
func (c *Class) Methods() []*Method {
	if c.methods == nil {
		return []*Method{}
	}
	return c.methods
}

// SetMethods replaces the methods and points each one back at c.
func (c *Class) SetMethods(methods []*Method) {
	for _, m := range methods {
		m.SetParentClass(c)
	}
	c.methods = methods
}

// NestedClasses returns member type declarations in declaration order.
func (c *Class) NestedClasses() []*Class {
	if c.nested == nil {
		return []*Class{}
	}
	return c.nested
}

// SetNestedClasses replaces the member types and points each one back at c.
func (c *Class) SetNestedClasses(nested []*Class) {
	for _, n := range nested {
		n.SetParentClass(c)
	}
	c.nested = nested
}

// FieldByName returns the field called name, or nil.
func (c *Class) FieldByName(name string) *Field {
	for _, f := range c.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// MethodsByName returns every method or constructor called name.
func (c *Class) MethodsByName(name string) []*Method {
	var matched []*Method
	for _, m := range c.methods {
		if m.Name() == name {
			matched = append(matched, m)
		}
	}
	return matched
}

// SetParentSource records the owning compilation unit of a top-level class.
func (c *Class) SetParentSource(src *Source) {
	c.parentSource = weak.Make(src)
	c.hasSource = src != nil
}

// ParentSource returns the owning compilation unit, or nil for nested or
// detached classes.
func (c *Class) ParentSource() *Source {
	return c.parentSource.Value()
}

// Source returns the compilation unit the class was declared in. The class
// refers to it weakly, so the caller must keep the owning Source or library
// reachable (runtime.KeepAlive) until it is done with the result.
func (c *Class) Source() (*Source, error) {
	if c.hasSource {
		src := c.parentSource.Value()
		if src == nil {
			return nil, errors.New(errors.EntityDetached, "source of class "+c.name+" has been released", nil)
		}
		return src, nil
	}
	if outer := c.ParentClass(); outer != nil {
		return outer.Source()
	}
	return nil, errors.New(errors.EntityDetached, "class "+c.name+" has no parent source", nil)
}

// PackageName returns the package of the enclosing source, or "" for the
// default package or a detached class.
func (c *Class) PackageName() string {
	src, err := c.Source()
	if err != nil {
		return ""
	}
	return src.PackageName()
}

// FullyQualifiedName returns the package-qualified name. Nested classes are
// joined to their enclosing class with a dot. The package comes from the
// weakly held Source; once the owner is collected only the simple name is
// left, so callers keep the owner reachable as for Source.
func (c *Class) FullyQualifiedName() string {
	if outer := c.ParentClass(); outer != nil {
		return outer.FullyQualifiedName() + "." + c.name
	}
	if pkg := c.PackageName(); pkg != "" {
		return pkg + "." + c.name
	}
	return c.name
}

// WriteCodeBlock writes the declaration with its documentation block and
// all members.
func (c *Class) WriteCodeBlock(sink CodeSink) {
	c.CommentHeader(sink)
	c.WriteAllModifiers(sink)
	sink.WriteString(string(c.kind))
	_ = sink.WriteByte(' ')
	sink.WriteString(c.name)

	if c.superClass != "" && c.kind == KindClass {
		sink.WriteString(" extends ")
		sink.WriteString(c.superClass)
	}
	if len(c.implements) > 0 {
		if c.kind == KindInterface {
			sink.WriteString(" extends ")
		} else {
			sink.WriteString(" implements ")
		}
		sink.WriteString(strings.Join(c.implements, ", "))
	}
	sink.WriteString(" {")
	sink.Newline()

	sink.Indent()
	wrote := false
	if len(c.enumConstants) > 0 {
		sink.WriteString(strings.Join(c.enumConstants, ", "))
		_ = sink.WriteByte(';')
		sink.Newline()
		wrote = true
	}
	separate := func() {
		if wrote {
			sink.Newline()
		}
		wrote = true
	}
	for _, f := range c.fields {
		separate()
		f.WriteCodeBlock(sink)
	}
	for _, m := range c.methods {
		separate()
		m.WriteCodeBlock(sink)
	}
	for _, n := range c.nested {
		separate()
		n.WriteCodeBlock(sink)
	}
	sink.Deindent()

	_ = sink.WriteByte('}')
	sink.Newline()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
