// Package textbuf provides the append-only text sinks used when
// regenerating source from the entity model.
package textbuf

import "strings"

// Options controls indentation of an IndentBuffer.
type Options struct {
	IndentWidth int  // spaces per level when UseTabs is false
	UseTabs     bool // indent with one tab per level
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// IndentBuffer accumulates text and applies the current indentation at the
// start of every line. Indentation is written lazily, so blank lines stay
// empty.
type IndentBuffer struct {
	buf         strings.Builder
	unit        string
	depth       int
	atLineStart bool
}

// New creates an IndentBuffer indenting with four spaces per level.
func New() *IndentBuffer {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an IndentBuffer with the given indentation.
func NewWithOptions(opt Options) *IndentBuffer {
	opt = opt.withDefaults()
	unit := strings.Repeat(" ", opt.IndentWidth)
	if opt.UseTabs {
		unit = "\t"
	}
	return &IndentBuffer{unit: unit, atLineStart: true}
}

func (b *IndentBuffer) writeIndent() {
	if !b.atLineStart {
		return
	}
	for range b.depth {
		b.buf.WriteString(b.unit)
	}
	b.atLineStart = false
}

// WriteString appends s. Line breaks inside s start new lines, which are
// indented like lines started with Newline.
func (b *IndentBuffer) WriteString(s string) {
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		if i > 0 {
			b.writeIndent()
			b.buf.WriteString(s[:i])
		}
		b.Newline()
		s = s[i+1:]
	}
	if s == "" {
		return
	}
	b.writeIndent()
	b.buf.WriteString(s)
}

// WriteByte appends a single character.
func (b *IndentBuffer) WriteByte(c byte) error {
	if c == '\n' {
		b.Newline()
		return nil
	}
	b.writeIndent()
	return b.buf.WriteByte(c)
}

// Newline ends the current line.
func (b *IndentBuffer) Newline() {
	b.buf.WriteByte('\n')
	b.atLineStart = true
}

// Indent increases the indentation level.
func (b *IndentBuffer) Indent() {
	b.depth++
}

// Deindent decreases the indentation level.
func (b *IndentBuffer) Deindent() {
	if b.depth > 0 {
		b.depth--
	}
}

// Depth returns the current indentation level.
func (b *IndentBuffer) Depth() int {
	return b.depth
}

// Len returns the number of bytes written so far.
func (b *IndentBuffer) Len() int {
	return b.buf.Len()
}

// Reset discards all text and indentation.
func (b *IndentBuffer) Reset() {
	b.buf.Reset()
	b.depth = 0
	b.atLineStart = true
}

// String returns the accumulated text.
func (b *IndentBuffer) String() string {
	return b.buf.String()
}
