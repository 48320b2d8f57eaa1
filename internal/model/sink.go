package model

import "strings"

// Sink is the append-only text target of the renderers. Indentation is the
// sink's concern.
type Sink interface {
	WriteString(s string)
	WriteByte(b byte) error
	Newline()
}

// CodeSink is a Sink that also tracks nesting, used by code block writers.
type CodeSink interface {
	Sink
	Indent()
	Deindent()
}

// CommentHeader writes the documentation block for the entity. Nothing is
// written when both the comment and the tag list are empty.
func (e *Entity) CommentHeader(sink Sink) {
	if e.comment == "" && len(e.tags) == 0 {
		return
	}

	sink.WriteString("/**")
	sink.Newline()

	if e.comment != "" {
		sink.WriteString(" * ")
		sink.WriteString(strings.ReplaceAll(e.comment, "\n", "\n * "))
		sink.Newline()
	}

	if len(e.tags) > 0 {
		// blank separator only between prose and tags
		if e.comment != "" {
			sink.WriteString(" *")
			sink.Newline()
		}
		for _, tag := range e.tags {
			sink.WriteString(" * @")
			sink.WriteString(tag.Name())
			if tag.Value() != "" {
				_ = sink.WriteByte(' ')
				sink.WriteString(tag.Value())
			}
			sink.Newline()
		}
	}

	sink.WriteString(" */")
	sink.Newline()
}
