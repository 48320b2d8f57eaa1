package model

// Field is one declared variable of a class. A declaration such as
// `int a, b;` yields two fields sharing modifiers and doc comment.
type Field struct {
	Entity

	name        string
	typ         string
	initializer string
}

// NewField creates a field of the given raw type text.
func NewField(typ, name string) *Field {
	return &Field{typ: typ, name: name}
}

func (f *Field) Name() string { return f.name }

// Type returns the declared type as written in source.
func (f *Field) Type() string { return f.typ }

// Initializer returns the initializer expression text, or "".
func (f *Field) Initializer() string        { return f.initializer }
func (f *Field) SetInitializer(expr string) { f.initializer = expr }

// WriteCodeBlock writes the documentation block and declaration.
func (f *Field) WriteCodeBlock(sink Sink) {
	f.CommentHeader(sink)
	f.WriteAllModifiers(sink)
	sink.WriteString(f.typ)
	_ = sink.WriteByte(' ')
	sink.WriteString(f.name)
	if f.initializer != "" {
		sink.WriteString(" = ")
		sink.WriteString(f.initializer)
	}
	_ = sink.WriteByte(';')
	sink.Newline()
}
