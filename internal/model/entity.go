// Package model holds the in-memory entity model of parsed Java sources:
// the attribute base shared by every declaration, the declaration kinds
// built on it, and the renderers that turn them back into source text.
//
// Entities are populated once through bulk setters and treated as
// read-only afterwards. Reads are safe for concurrent use; mutation
// concurrent with reads is not.
package model

import (
	"weak"

	"javadox/internal/errors"
	"javadox/internal/textbuf"
)

// Entity is the attribute base embedded by every declarable element:
// modifiers, documentation comment, doc tags and the back-reference to
// the enclosing class.
type Entity struct {
	modifiers []string
	comment   string
	tags      []*DocletTag
	line      int

	// parentClass never keeps the enclosing class alive.
	parentClass weak.Pointer[Class]
	hasParent   bool
}

// Modifiers returns the live modifier list in declaration order.
func (e *Entity) Modifiers() []string {
	if e.modifiers == nil {
		return []string{}
	}
	return e.modifiers
}

// SetModifiers replaces the whole modifier list.
func (e *Entity) SetModifiers(modifiers []string) {
	if modifiers == nil {
		modifiers = []string{}
	}
	e.modifiers = modifiers
}

// Comment returns the prose body of the documentation comment.
func (e *Entity) Comment() string {
	return e.comment
}

// SetComment replaces the documentation comment body.
func (e *Entity) SetComment(comment string) {
	e.comment = comment
}

// Tags returns the live doc tag list in declaration order.
func (e *Entity) Tags() []*DocletTag {
	if e.tags == nil {
		return []*DocletTag{}
	}
	return e.tags
}

// SetTags replaces the whole doc tag list.
func (e *Entity) SetTags(tags []*DocletTag) {
	if tags == nil {
		tags = []*DocletTag{}
	}
	e.tags = tags
}

// Line returns the 1-based line of the declaration, or 0 when unknown.
func (e *Entity) Line() int {
	return e.line
}

// SetLine records the declaration line.
func (e *Entity) SetLine(line int) {
	e.line = line
}

// TagsByName returns every tag called name, in original order.
func (e *Entity) TagsByName(name string) []*DocletTag {
	matched := []*DocletTag{}
	for _, tag := range e.tags {
		if tag.Name() == name {
			matched = append(matched, tag)
		}
	}
	return matched
}

// TagByName returns the first tag called name, or nil. Later tags with the
// same name are only visible through TagsByName.
func (e *Entity) TagByName(name string) *DocletTag {
	for _, tag := range e.tags {
		if tag.Name() == name {
			return tag
		}
	}
	return nil
}

// NamedParameter resolves paramName on the first tag called tagName.
// A missing tag or parameter reports false.
func (e *Entity) NamedParameter(tagName, paramName string) (string, bool) {
	tag := e.TagByName(tagName)
	if tag == nil {
		return "", false
	}
	return tag.NamedParameter(paramName)
}

// SetParentClass records the enclosing class without taking ownership of it.
func (e *Entity) SetParentClass(parent *Class) {
	e.parentClass = weak.Make(parent)
	e.hasParent = parent != nil
}

// ParentClass returns the enclosing class, or nil when unset or released.
func (e *Entity) ParentClass() *Class {
	return e.parentClass.Value()
}

// Source returns the compilation unit of the enclosing class. Parent links
// are weak: the owning Source or library must stay reachable while the
// entity is in use, otherwise ENTITY_DETACHED is returned.
func (e *Entity) Source() (*Source, error) {
	parent := e.parentClass.Value()
	if parent == nil {
		if e.hasParent {
			return nil, errors.New(errors.EntityDetached, "parent class has been released", nil)
		}
		return nil, errors.New(errors.EntityDetached, "entity has no parent class", nil)
	}
	return parent.Source()
}

// CommentBlock renders the documentation block into a string.
func (e *Entity) CommentBlock() string {
	buf := textbuf.New()
	e.CommentHeader(buf)
	return buf.String()
}
