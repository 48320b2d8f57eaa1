package model

// Source is one parsed compilation unit. It owns its top-level classes.
type Source struct {
	path        string
	packageName string
	imports     []string
	classes     []*Class
}

// NewSource creates an empty compilation unit for the file at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the file path the source was parsed from.
func (s *Source) Path() string { return s.path }

// PackageName returns the declared package, or "" for the default package.
func (s *Source) PackageName() string       { return s.packageName }
func (s *Source) SetPackageName(pkg string) { s.packageName = pkg }

// Imports returns the import declarations as written, without `import`
// and the trailing semicolon.
func (s *Source) Imports() []string           { return nonNil(s.imports) }
func (s *Source) SetImports(imports []string) { s.imports = imports }

// Classes returns the top-level classes in declaration order.
func (s *Source) Classes() []*Class {
	if s.classes == nil {
		return []*Class{}
	}
	return s.classes
}

// SetClasses replaces the top-level classes and points each one back at s.
func (s *Source) SetClasses(classes []*Class) {
	for _, c := range classes {
		c.SetParentSource(s)
	}
	s.classes = classes
}

// AllClasses returns top-level and nested classes, depth first.
func (s *Source) AllClasses() []*Class {
	var all []*Class
	var walk func([]*Class)
	walk = func(classes []*Class) {
		for _, c := range classes {
			all = append(all, c)
			walk(c.nested)
		}
	}
	walk(s.classes)
	return all
}

// WriteCodeBlock writes the package clause, imports and every class.
func (s *Source) WriteCodeBlock(sink CodeSink) {
	wrote := false
	if s.packageName != "" {
		sink.WriteString("package ")
		sink.WriteString(s.packageName)
		_ = sink.WriteByte(';')
		sink.Newline()
		wrote = true
	}
	if len(s.imports) > 0 {
		if wrote {
			sink.Newline()
		}
		for _, imp := range s.imports {
			sink.WriteString("import ")
			sink.WriteString(imp)
			_ = sink.WriteByte(';')
			sink.Newline()
		}
		wrote = true
	}
	for _, c := range s.classes {
		if wrote {
			sink.Newline()
		}
		c.WriteCodeBlock(sink)
		wrote = true
	}
}

// Package groups the classes registered under one package name.
type Package struct {
	name    string
	classes []*Class
}

// NewPackage creates a package holding the given classes.
func NewPackage(name string, classes []*Class) *Package {
	return &Package{name: name, classes: classes}
}

func (p *Package) Name() string { return p.name }

// Classes returns the classes of the package in registration order.
func (p *Package) Classes() []*Class {
	if p.classes == nil {
		return []*Class{}
	}
	return p.classes
}

// AddClass appends c to the package during population.
func (p *Package) AddClass(c *Class) {
	p.classes = append(p.classes, c)
}
