// Package snapshot converts the entity model to and from plain data
// records used by the exporter and the parse cache.
package snapshot

import (
	"javadox/internal/library"
	"javadox/internal/model"
)

// SchemaVersion changes whenever a snapshot field changes meaning.
const SchemaVersion = 1

// SourceSnapshot is one compilation unit.
type SourceSnapshot struct {
	Path    string          `json:"path" yaml:"path" toml:"path" msgpack:"path"`
	Package string          `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" msgpack:"package,omitempty"`
	Imports []string        `json:"imports,omitempty" yaml:"imports,omitempty" toml:"imports,omitempty" msgpack:"imports,omitempty"`
	Classes []ClassSnapshot `json:"classes,omitempty" yaml:"classes,omitempty" toml:"classes,omitempty" msgpack:"classes,omitempty"`
}

// ClassSnapshot is a class, interface or enum with its members.
type ClassSnapshot struct {
	Name          string           `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Kind          string           `json:"kind" yaml:"kind" toml:"kind" msgpack:"kind"`
	Line          int              `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty" msgpack:"line,omitempty"`
	Modifiers     []string         `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Comment       string           `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty" msgpack:"comment,omitempty"`
	Tags          []TagSnapshot    `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" msgpack:"tags,omitempty"`
	SuperClass    string           `json:"superClass,omitempty" yaml:"superClass,omitempty" toml:"superClass,omitempty" msgpack:"superClass,omitempty"`
	Implements    []string         `json:"implements,omitempty" yaml:"implements,omitempty" toml:"implements,omitempty" msgpack:"implements,omitempty"`
	EnumConstants []string         `json:"enumConstants,omitempty" yaml:"enumConstants,omitempty" toml:"enumConstants,omitempty" msgpack:"enumConstants,omitempty"`
	Fields        []FieldSnapshot  `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty" msgpack:"fields,omitempty"`
	Methods       []MethodSnapshot `json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty" msgpack:"methods,omitempty"`
	Nested        []ClassSnapshot  `json:"nested,omitempty" yaml:"nested,omitempty" toml:"nested,omitempty" msgpack:"nested,omitempty"`
}

// FieldSnapshot is one declared variable.
type FieldSnapshot struct {
	Name        string        `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Type        string        `json:"type" yaml:"type" toml:"type" msgpack:"type"`
	Initializer string        `json:"initializer,omitempty" yaml:"initializer,omitempty" toml:"initializer,omitempty" msgpack:"initializer,omitempty"`
	Line        int           `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty" msgpack:"line,omitempty"`
	Modifiers   []string      `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Comment     string        `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty" msgpack:"comment,omitempty"`
	Tags        []TagSnapshot `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" msgpack:"tags,omitempty"`
}

// MethodSnapshot is a method or constructor.
type MethodSnapshot struct {
	Name        string              `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	ReturnType  string              `json:"returnType,omitempty" yaml:"returnType,omitempty" toml:"returnType,omitempty" msgpack:"returnType,omitempty"`
	Constructor bool                `json:"constructor,omitempty" yaml:"constructor,omitempty" toml:"constructor,omitempty" msgpack:"constructor,omitempty"`
	Line        int                 `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty" msgpack:"line,omitempty"`
	Modifiers   []string            `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Comment     string              `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty" msgpack:"comment,omitempty"`
	Tags        []TagSnapshot       `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" msgpack:"tags,omitempty"`
	Parameters  []ParameterSnapshot `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty" msgpack:"parameters,omitempty"`
	Exceptions  []string            `json:"exceptions,omitempty" yaml:"exceptions,omitempty" toml:"exceptions,omitempty" msgpack:"exceptions,omitempty"`
	HasBody     bool                `json:"hasBody,omitempty" yaml:"hasBody,omitempty" toml:"hasBody,omitempty" msgpack:"hasBody,omitempty"`
	Body        string              `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty" msgpack:"body,omitempty"`
}

// ParameterSnapshot is a formal parameter.
type ParameterSnapshot struct {
	Name      string   `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Type      string   `json:"type" yaml:"type" toml:"type" msgpack:"type"`
	VarArgs   bool     `json:"varArgs,omitempty" yaml:"varArgs,omitempty" toml:"varArgs,omitempty" msgpack:"varArgs,omitempty"`
	Line      int      `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty" msgpack:"line,omitempty"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
}

// TagSnapshot is a doc tag.
type TagSnapshot struct {
	Name  string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty" msgpack:"value,omitempty"`
	Line  int    `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty" msgpack:"line,omitempty"`
}

// FromLibrary snapshots every source of lib in registration order.
func FromLibrary(lib library.ClassLibrary) []*SourceSnapshot {
	sources := lib.Sources()
	out := make([]*SourceSnapshot, 0, len(sources))
	for _, src := range sources {
		out = append(out, FromSource(src))
	}
	return out
}

// FromSource snapshots src and everything it owns.
func FromSource(src *model.Source) *SourceSnapshot {
	s := &SourceSnapshot{
		Path:    src.Path(),
		Package: src.PackageName(),
		Imports: emptyToNil(src.Imports()),
	}
	for _, c := range src.Classes() {
		s.Classes = append(s.Classes, fromClass(c))
	}
	return s
}

func fromClass(c *model.Class) ClassSnapshot {
	s := ClassSnapshot{
		Name:          c.Name(),
		Kind:          string(c.Kind()),
		Line:          c.Line(),
		Modifiers:     emptyToNil(c.Modifiers()),
		Comment:       c.Comment(),
		Tags:          fromTags(c.Tags()),
		SuperClass:    c.SuperClass(),
		Implements:    emptyToNil(c.Implements()),
		EnumConstants: emptyToNil(c.EnumConstants()),
	}
	for _, f := range c.Fields() {
		s.Fields = append(s.Fields, FieldSnapshot{
			Name:        f.Name(),
			Type:        f.Type(),
			Initializer: f.Initializer(),
			Line:        f.Line(),
			Modifiers:   emptyToNil(f.Modifiers()),
			Comment:     f.Comment(),
			Tags:        fromTags(f.Tags()),
		})
	}
	for _, m := range c.Methods() {
		s.Methods = append(s.Methods, fromMethod(m))
	}
	for _, n := range c.NestedClasses() {
		s.Nested = append(s.Nested, fromClass(n))
	}
	return s
}

func fromMethod(m *model.Method) MethodSnapshot {
	s := MethodSnapshot{
		Name:        m.Name(),
		Constructor: m.IsConstructor(),
		Line:        m.Line(),
		Modifiers:   emptyToNil(m.Modifiers()),
		Comment:     m.Comment(),
		Tags:        fromTags(m.Tags()),
		Exceptions:  emptyToNil(m.Exceptions()),
		HasBody:     m.HasBody(),
		Body:        m.Body(),
	}
	if !m.IsConstructor() {
		s.ReturnType = m.ReturnType()
	}
	for _, p := range m.Parameters() {
		s.Parameters = append(s.Parameters, ParameterSnapshot{
			Name:      p.Name(),
			Type:      p.Type(),
			VarArgs:   p.IsVarArgs(),
			Line:      p.Line(),
			Modifiers: emptyToNil(p.Modifiers()),
		})
	}
	return s
}

func fromTags(tags []*model.DocletTag) []TagSnapshot {
	if len(tags) == 0 {
		return nil
	}
	out := make([]TagSnapshot, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagSnapshot{Name: t.Name(), Value: t.Value(), Line: t.Line()})
	}
	return out
}

func emptyToNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
