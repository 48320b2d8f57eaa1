package model

import "slices"

// Recognized modifier keywords.
const (
	ModPublic       = "public"
	ModProtected    = "protected"
	ModPrivate      = "private"
	ModAbstract     = "abstract"
	ModStatic       = "static"
	ModFinal        = "final"
	ModSynchronized = "synchronized"
	ModTransient    = "transient"
	ModVolatile     = "volatile"
	ModNative       = "native"
	ModStrictfp     = "strictfp"
)

var accessibilityModifiers = map[string]struct{}{
	ModPublic:    {},
	ModProtected: {},
	ModPrivate:   {},
}

// IsAccessibilityModifier reports whether m is public, protected or private.
func IsAccessibilityModifier(m string) bool {
	_, ok := accessibilityModifiers[m]
	return ok
}

func (e *Entity) hasModifier(m string) bool {
	return slices.Contains(e.modifiers, m)
}

func (e *Entity) IsPublic() bool       { return e.hasModifier(ModPublic) }
func (e *Entity) IsProtected() bool    { return e.hasModifier(ModProtected) }
func (e *Entity) IsPrivate() bool      { return e.hasModifier(ModPrivate) }
func (e *Entity) IsAbstract() bool     { return e.hasModifier(ModAbstract) }
func (e *Entity) IsStatic() bool       { return e.hasModifier(ModStatic) }
func (e *Entity) IsFinal() bool        { return e.hasModifier(ModFinal) }
func (e *Entity) IsSynchronized() bool { return e.hasModifier(ModSynchronized) }
func (e *Entity) IsTransient() bool    { return e.hasModifier(ModTransient) }
func (e *Entity) IsVolatile() bool     { return e.hasModifier(ModVolatile) }
func (e *Entity) IsNative() bool       { return e.hasModifier(ModNative) }
func (e *Entity) IsStrictfp() bool     { return e.hasModifier(ModStrictfp) }

// WriteAccessibilityModifiers writes the accessibility modifiers in stored
// order, each followed by a space.
func (e *Entity) WriteAccessibilityModifiers(sink Sink) {
	for _, m := range e.modifiers {
		if IsAccessibilityModifier(m) {
			writeModifier(sink, m)
		}
	}
}

// WriteNonAccessibilityModifiers writes every other modifier in stored
// order, each followed by a space.
func (e *Entity) WriteNonAccessibilityModifiers(sink Sink) {
	for _, m := range e.modifiers {
		if !IsAccessibilityModifier(m) {
			writeModifier(sink, m)
		}
	}
}

// WriteAllModifiers writes every modifier in stored order, each followed by
// a space.
func (e *Entity) WriteAllModifiers(sink Sink) {
	for _, m := range e.modifiers {
		writeModifier(sink, m)
	}
}

func writeModifier(sink Sink, m string) {
	sink.WriteString(m)
	_ = sink.WriteByte(' ')
}
