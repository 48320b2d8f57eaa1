package storage

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"javadox/internal/errors"
	"javadox/internal/library"
	"javadox/internal/model"
)

// Declaration kinds besides the model.ClassKind values.
const (
	KindField       = "field"
	KindMethod      = "method"
	KindConstructor = "constructor"
)

// Declaration is one indexed class, field, method or constructor.
type Declaration struct {
	ID            int64    `json:"-"`
	Kind          string   `json:"kind"`
	Name          string   `json:"name"`
	QualifiedName string   `json:"qualifiedName"`
	Container     string   `json:"container,omitempty"`
	Path          string   `json:"path"`
	Line          int      `json:"line"`
	Modifiers     []string `json:"modifiers,omitempty"`
	Signature     string   `json:"signature"`
	Comment       string   `json:"comment,omitempty"`
}

// Tag is an indexed doc tag.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Line  int    `json:"line,omitempty"`
}

// TagHit pairs a tag with the declaration carrying it.
type TagHit struct {
	Declaration Declaration `json:"declaration"`
	Tag         Tag         `json:"tag"`
}

// Run describes one WriteLibrary call.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
	Sources      int       `json:"sources"`
	Classes      int       `json:"classes"`
	Declarations int       `json:"declarations"`
}

type pendingDecl struct {
	decl Declaration
	tags []*model.DocletTag
}

// WriteLibrary replaces the indexed declarations with the contents of lib
// in one transaction and records a new run.
func (db *DB) WriteLibrary(ctx context.Context, lib library.ClassLibrary) (string, error) {
	started := db.now().UTC()
	runID := uuid.NewString()

	sources := len(lib.Sources())
	classes := lib.Classes()
	var decls []pendingDecl
	for _, cls := range classes {
		decls = append(decls, classDeclarations(cls)...)
	}
	runtime.KeepAlive(lib)

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{"DELETE FROM doc_tags", "DELETE FROM declarations"} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		// finished_at is provisional until every row is written
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, started_at, finished_at, sources, classes, declarations) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, started.Format(time.RFC3339Nano), started.Format(time.RFC3339Nano),
			sources, len(classes), len(decls),
		); err != nil {
			return err
		}

		declStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO declarations (run_id, kind, name, qualified_name, container, path, line, modifiers, signature, comment)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer declStmt.Close()

		tagStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO doc_tags (declaration_id, position, name, value, line) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer tagStmt.Close()

		for _, p := range decls {
			d := p.decl
			res, err := declStmt.ExecContext(ctx, runID, d.Kind, d.Name, d.QualifiedName, d.Container,
				d.Path, d.Line, strings.Join(d.Modifiers, " "), d.Signature, d.Comment)
			if err != nil {
				return fmt.Errorf("insert %s: %w", d.QualifiedName, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for i, tag := range p.tags {
				if _, err := tagStmt.ExecContext(ctx, id, i, tag.Name(), tag.Value(), tag.Line()); err != nil {
					return fmt.Errorf("insert tag %s of %s: %w", tag.Name(), d.QualifiedName, err)
				}
			}
		}

		finished := db.now().UTC()
		_, err = tx.ExecContext(ctx, `UPDATE runs SET finished_at = ? WHERE id = ?`,
			finished.Format(time.RFC3339Nano), runID)
		return err
	})
	if err != nil {
		return "", err
	}

	db.logger.Info("Index written",
		"run", runID,
		"classes", len(classes),
		"declarations", len(decls),
		"duration", db.now().Sub(started),
	)
	return runID, nil
}

func classDeclarations(cls *model.Class) []pendingDecl {
	path := ""
	if src, err := cls.Source(); err == nil {
		path = src.Path()
	}
	fqn := cls.FullyQualifiedName()
	container := ""
	if outer := cls.ParentClass(); outer != nil {
		container = outer.FullyQualifiedName()
	}

	out := []pendingDecl{{
		decl: Declaration{
			Kind:          string(cls.Kind()),
			Name:          cls.Name(),
			QualifiedName: fqn,
			Container:     container,
			Path:          path,
			Line:          cls.Line(),
			Modifiers:     cls.Modifiers(),
			Signature:     classSignature(cls),
			Comment:       cls.Comment(),
		},
		tags: cls.Tags(),
	}}

	for _, f := range cls.Fields() {
		out = append(out, pendingDecl{
			decl: Declaration{
				Kind:          KindField,
				Name:          f.Name(),
				QualifiedName: fqn + "." + f.Name(),
				Container:     fqn,
				Path:          path,
				Line:          f.Line(),
				Modifiers:     f.Modifiers(),
				Signature:     strings.TrimSpace(strings.Join(f.Modifiers(), " ") + " " + f.Type() + " " + f.Name()),
				Comment:       f.Comment(),
			},
			tags: f.Tags(),
		})
	}

	for _, m := range cls.Methods() {
		kind := KindMethod
		if m.IsConstructor() {
			kind = KindConstructor
		}
		types := make([]string, 0, len(m.Parameters()))
		for _, p := range m.Parameters() {
			t := p.Type()
			if p.IsVarArgs() {
				t += "..."
			}
			types = append(types, t)
		}
		out = append(out, pendingDecl{
			decl: Declaration{
				Kind:          kind,
				Name:          m.Name(),
				QualifiedName: fqn + "#" + m.Name() + "(" + strings.Join(types, ", ") + ")",
				Container:     fqn,
				Path:          path,
				Line:          m.Line(),
				Modifiers:     m.Modifiers(),
				Signature:     m.DeclarationSignature(true),
				Comment:       m.Comment(),
			},
			tags: m.Tags(),
		})
	}
	return out
}

func classSignature(cls *model.Class) string {
	parts := append([]string{}, cls.Modifiers()...)
	parts = append(parts, string(cls.Kind()), cls.Name())
	return strings.Join(parts, " ")
}

const declColumns = "d.id, d.kind, d.name, d.qualified_name, d.container, d.path, d.line, d.modifiers, d.signature, d.comment"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeclaration(row rowScanner, extra ...any) (Declaration, error) {
	var d Declaration
	var modifiers string
	dest := append([]any{&d.ID, &d.Kind, &d.Name, &d.QualifiedName, &d.Container, &d.Path, &d.Line, &modifiers, &d.Signature, &d.Comment}, extra...)
	if err := row.Scan(dest...); err != nil {
		return d, err
	}
	d.Modifiers = strings.Fields(modifiers)
	return d, nil
}

// FindDeclarations returns declarations whose simple or qualified name
// contains text, ordered by qualified name.
func (db *DB) FindDeclarations(ctx context.Context, text string, limit int) ([]Declaration, error) {
	pattern := "%" + escapeLike(text) + "%"
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+declColumns+`
		FROM declarations d
		WHERE d.name LIKE ? ESCAPE '\' OR d.qualified_name LIKE ? ESCAPE '\'
		ORDER BY d.qualified_name
		LIMIT ?`, pattern, pattern, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Declaration
	for rows.Next() {
		d, err := scanDeclaration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// FindTags returns every tag with the given name, ordered by declaration
// and tag position.
func (db *DB) FindTags(ctx context.Context, tagName string, limit int) ([]TagHit, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+declColumns+`, t.name, t.value, t.line
		FROM doc_tags t
		JOIN declarations d ON d.id = t.declaration_id
		WHERE t.name = ?
		ORDER BY d.qualified_name, t.position
		LIMIT ?`, tagName, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TagHit
	for rows.Next() {
		var hit TagHit
		d, err := scanDeclaration(rows, &hit.Tag.Name, &hit.Tag.Value, &hit.Tag.Line)
		if err != nil {
			return nil, err
		}
		hit.Declaration = d
		out = append(out, hit)
	}
	return out, rows.Err()
}

// LatestRun returns the most recent run, or INDEX_MISSING when the index
// has never been written.
func (db *DB) LatestRun(ctx context.Context) (*Run, error) {
	var r Run
	var started, finished string
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, sources, classes, declarations
		FROM runs ORDER BY rowid DESC LIMIT 1`).
		Scan(&r.ID, &started, &finished, &r.Sources, &r.Classes, &r.Declarations)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.IndexMissing, "no index has been written to "+db.path, nil)
	}
	if err != nil {
		return nil, err
	}
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse run start: %w", err)
	}
	if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse run finish: %w", err)
	}
	return &r, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
