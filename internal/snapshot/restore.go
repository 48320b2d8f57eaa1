package snapshot

import "javadox/internal/model"

// Restore rebuilds a fully linked Source. Back-references from classes to
// the source, from members to their class and from parameters to their
// method are set exactly as the parser sets them.
func (s *SourceSnapshot) Restore() *model.Source {
	src := model.NewSource(s.Path)
	src.SetPackageName(s.Package)
	src.SetImports(s.Imports)

	classes := make([]*model.Class, 0, len(s.Classes))
	for i := range s.Classes {
		classes = append(classes, s.Classes[i].restore())
	}
	src.SetClasses(classes)
	return src
}

func (s *ClassSnapshot) restore() *model.Class {
	c := model.NewClass(s.Name)
	if s.Kind != "" {
		c.SetKind(model.ClassKind(s.Kind))
	}
	restoreEntity(&c.Entity, s.Line, s.Modifiers, s.Comment, s.Tags)
	c.SetSuperClass(s.SuperClass)
	c.SetImplements(s.Implements)
	c.SetEnumConstants(s.EnumConstants)

	fields := make([]*model.Field, 0, len(s.Fields))
	for _, fs := range s.Fields {
		f := model.NewField(fs.Type, fs.Name)
		f.SetInitializer(fs.Initializer)
		restoreEntity(&f.Entity, fs.Line, fs.Modifiers, fs.Comment, fs.Tags)
		fields = append(fields, f)
	}
	c.SetFields(fields)

	methods := make([]*model.Method, 0, len(s.Methods))
	for i := range s.Methods {
		methods = append(methods, s.Methods[i].restore())
	}
	c.SetMethods(methods)

	nested := make([]*model.Class, 0, len(s.Nested))
	for i := range s.Nested {
		nested = append(nested, s.Nested[i].restore())
	}
	c.SetNestedClasses(nested)
	return c
}

func (s *MethodSnapshot) restore() *model.Method {
	var m *model.Method
	if s.Constructor {
		m = model.NewConstructor(s.Name)
	} else {
		m = model.NewMethod(s.ReturnType, s.Name)
	}
	restoreEntity(&m.Entity, s.Line, s.Modifiers, s.Comment, s.Tags)
	m.SetExceptions(s.Exceptions)
	if s.HasBody {
		m.SetBody(s.Body)
	}

	params := make([]*model.Parameter, 0, len(s.Parameters))
	for _, ps := range s.Parameters {
		p := model.NewParameter(ps.Type, ps.Name, ps.VarArgs)
		p.SetLine(ps.Line)
		p.SetModifiers(ps.Modifiers)
		params = append(params, p)
	}
	m.SetParameters(params)
	return m
}

func restoreEntity(e *model.Entity, line int, modifiers []string, comment string, tags []TagSnapshot) {
	e.SetLine(line)
	e.SetModifiers(modifiers)
	e.SetComment(comment)
	restored := make([]*model.DocletTag, 0, len(tags))
	for _, t := range tags {
		restored = append(restored, model.NewDocletTagAt(t.Name, t.Value, t.Line))
	}
	e.SetTags(restored)
}
