// Package library resolves fully qualified names to parsed classes,
// packages and sources.
package library

import (
	"log/slog"
	"sync"

	"javadox/internal/errors"
	"javadox/internal/model"
	"javadox/internal/slogutil"
)

// ClassLibrary is the read side of the registry. Lookups are pure and safe
// for concurrent use once population has completed.
type ClassLibrary interface {
	// JavaClass returns the class registered under the fully qualified
	// name, or nil.
	JavaClass(name string) *model.Class
	// Classes returns every registered class in registration order.
	Classes() []*model.Class
	// Sources returns every registered compilation unit.
	Sources() []*model.Source
	// HasJavaClass reports whether JavaClass(name) would return a class.
	HasJavaClass(name string) bool
	// JavaPackage returns the package with the given name, or nil.
	JavaPackage(name string) *model.Package
	// Packages returns every package in registration order.
	Packages() []*model.Package
}

// SourceLibrary is the in-memory ClassLibrary populated from parsed
// sources. It owns the sources, and through them every entity.
type SourceLibrary struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	sealed   bool
	sources  []*model.Source
	classes  []*model.Class
	byName   map[string]*model.Class
	packages []*model.Package
	byPkg    map[string]*model.Package
}

var _ ClassLibrary = (*SourceLibrary)(nil)

// NewSourceLibrary creates an empty library. A nil logger discards output.
func NewSourceLibrary(logger *slog.Logger) *SourceLibrary {
	return &SourceLibrary{
		logger: slogutil.OrDiscard(logger),
		byName: make(map[string]*model.Class),
		byPkg:  make(map[string]*model.Package),
	}
}

// AddSource registers a fully populated source with all of its classes,
// nested ones included. A class name that is already registered keeps its
// first registration.
func (l *SourceLibrary) AddSource(src *model.Source) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sealed {
		return errors.New(errors.LibrarySealed, "cannot add "+src.Path()+" to a sealed library", nil)
	}

	l.sources = append(l.sources, src)
	pkg := l.packageLocked(src.PackageName())

	for _, cls := range src.AllClasses() {
		name := cls.FullyQualifiedName()
		if prev, exists := l.byName[name]; exists {
			prevPath := ""
			if prevSrc, err := prev.Source(); err == nil {
				prevPath = prevSrc.Path()
			}
			l.logger.Warn("Duplicate class ignored",
				"class", name,
				"source", src.Path(),
				"firstSource", prevPath,
			)
			continue
		}
		l.byName[name] = cls
		l.classes = append(l.classes, cls)
		pkg.AddClass(cls)
	}

	l.logger.Debug("Registered source",
		"path", src.Path(),
		"package", src.PackageName(),
		"classes", len(src.AllClasses()),
	)
	return nil
}

func (l *SourceLibrary) packageLocked(name string) *model.Package {
	if pkg, ok := l.byPkg[name]; ok {
		return pkg
	}
	pkg := model.NewPackage(name, nil)
	l.byPkg[name] = pkg
	l.packages = append(l.packages, pkg)
	return pkg
}

// Seal ends population. Further AddSource calls fail with LIBRARY_SEALED.
func (l *SourceLibrary) Seal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sealed = true
}

// Sealed reports whether Seal has been called.
func (l *SourceLibrary) Sealed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sealed
}

func (l *SourceLibrary) JavaClass(name string) *model.Class {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byName[name]
}

func (l *SourceLibrary) HasJavaClass(name string) bool {
	return l.JavaClass(name) != nil
}

func (l *SourceLibrary) Classes() []*model.Class {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*model.Class, len(l.classes))
	copy(out, l.classes)
	return out
}

func (l *SourceLibrary) Sources() []*model.Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*model.Source, len(l.sources))
	copy(out, l.sources)
	return out
}

func (l *SourceLibrary) JavaPackage(name string) *model.Package {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byPkg[name]
}

func (l *SourceLibrary) Packages() []*model.Package {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*model.Package, len(l.packages))
	copy(out, l.packages)
	return out
}

// LookupClass is JavaClass returning CLASS_NOT_FOUND instead of nil.
func LookupClass(lib ClassLibrary, name string) (*model.Class, error) {
	cls := lib.JavaClass(name)
	if cls == nil {
		return nil, errors.New(errors.ClassNotFound, "class '"+name+"' not found", nil)
	}
	return cls, nil
}

// LookupPackage is JavaPackage returning PACKAGE_NOT_FOUND instead of nil.
func LookupPackage(lib ClassLibrary, name string) (*model.Package, error) {
	pkg := lib.JavaPackage(name)
	if pkg == nil {
		return nil, errors.New(errors.PackageNotFound, "package '"+name+"' not found", nil)
	}
	return pkg, nil
}
