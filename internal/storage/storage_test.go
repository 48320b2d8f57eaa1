package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"javadox/internal/errors"
	"javadox/internal/library"
	"javadox/internal/model"
)

func openDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), ".javadox", "index.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleLibrary(t *testing.T) *library.SourceLibrary {
	t.Helper()

	src := model.NewSource("src/com/example/Calc.java")
	src.SetPackageName("com.example")

	calc := model.NewClass("Calc")
	calc.SetLine(8)
	calc.SetModifiers([]string{"public", "final"})
	calc.SetComment("A calculator for sums.")
	calc.SetTags([]*model.DocletTag{
		model.NewDocletTagAt("author", "jane", 5),
		model.NewDocletTagAt("since", "1.0", 6),
	})

	total := model.NewField("int", "total")
	total.SetModifiers([]string{"private"})
	total.SetLine(10)

	add := model.NewMethod("int", "add")
	add.SetModifiers([]string{"public", "static"})
	add.SetComment("Computes sum.")
	add.SetLine(20)
	add.SetTags([]*model.DocletTag{
		model.NewDocletTagAt("param", "x the first operand", 16),
		model.NewDocletTagAt("param", "y the second operand", 17),
	})
	add.SetParameters([]*model.Parameter{
		model.NewParameter("int", "x", false),
		model.NewParameter("int", "y", false),
	})

	ctor := model.NewConstructor("Calc")
	ctor.SetModifiers([]string{"public"})

	listener := model.NewClass("Listener")
	listener.SetKind(model.KindInterface)
	listener.SetTags([]*model.DocletTag{model.NewDocletTag("author", "bob")})
	fire := model.NewMethod("void", "fire")
	fire.SetParameters([]*model.Parameter{model.NewParameter("String", "args", true)})
	listener.SetMethods([]*model.Method{fire})

	calc.SetFields([]*model.Field{total})
	calc.SetMethods([]*model.Method{add, ctor})
	calc.SetNestedClasses([]*model.Class{listener})
	src.SetClasses([]*model.Class{calc})

	lib := library.NewSourceLibrary(nil)
	if err := lib.AddSource(src); err != nil {
		t.Fatal(err)
	}
	lib.Seal()
	return lib
}

func TestLatestRun_Empty(t *testing.T) {
	db := openDB(t)
	_, err := db.LatestRun(context.Background())
	if errors.CodeOf(err) != errors.IndexMissing {
		t.Fatalf("LatestRun on empty index = %v, want INDEX_MISSING", err)
	}
}

func TestWriteLibrary(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	runID, err := db.WriteLibrary(ctx, sampleLibrary(t))
	if err != nil {
		t.Fatalf("WriteLibrary: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", runID, err)
	}

	run, err := db.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	want := Run{ID: runID, Sources: 1, Classes: 2, Declarations: 6}
	if diff := cmp.Diff(want, *run, cmpIgnoreTimes()); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}
	if run.FinishedAt.Before(run.StartedAt) {
		t.Error("run finished before it started")
	}
}

func TestWriteLibrary_FinishedAfterWrites(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ticks := 0
	db.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}

	// capture the run's finished_at as each declaration lands
	for _, stmt := range []string{
		`CREATE TABLE finished_seen (value TEXT NOT NULL)`,
		`CREATE TRIGGER declarations_finished_seen AFTER INSERT ON declarations BEGIN
			INSERT INTO finished_seen SELECT finished_at FROM runs WHERE id = NEW.run_id;
		END`,
	} {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}

	if _, err := db.WriteLibrary(ctx, sampleLibrary(t)); err != nil {
		t.Fatalf("WriteLibrary: %v", err)
	}
	run, err := db.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT value FROM finished_seen`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	seen := 0
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			t.Fatal(err)
		}
		during, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			t.Fatal(err)
		}
		if !run.FinishedAt.After(during) {
			t.Errorf("FinishedAt %v not after value %v seen while writing", run.FinishedAt, during)
		}
		seen++
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	if seen != run.Declarations {
		t.Errorf("trigger fired %d times, want %d", seen, run.Declarations)
	}
}

func TestWriteLibrary_Replaces(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	lib := sampleLibrary(t)

	first, err := db.WriteLibrary(ctx, lib)
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.WriteLibrary(ctx, lib)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("run IDs should differ")
	}

	decls, err := db.FindDeclarations(ctx, "Calc", 0)
	if err != nil {
		t.Fatal(err)
	}
	// Calc, its constructor, field, method and the nested Listener (and its method) all contain "Calc".
	if len(decls) != 6 {
		t.Errorf("len(decls) = %d after rewrite, want 6", len(decls))
	}
	run, err := db.LatestRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if run.ID != second {
		t.Errorf("LatestRun().ID = %q, want %q", run.ID, second)
	}
}

func TestFindDeclarations(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	if _, err := db.WriteLibrary(ctx, sampleLibrary(t)); err != nil {
		t.Fatal(err)
	}

	decls, err := db.FindDeclarations(ctx, "add", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(decls) != 1 {
		t.Fatalf("FindDeclarations(add) = %+v", decls)
	}
	want := Declaration{
		ID:            decls[0].ID,
		Kind:          KindMethod,
		Name:          "add",
		QualifiedName: "com.example.Calc#add(int, int)",
		Container:     "com.example.Calc",
		Path:          "src/com/example/Calc.java",
		Line:          20,
		Modifiers:     []string{"public", "static"},
		Signature:     "public static int add(int x, int y)",
		Comment:       "Computes sum.",
	}
	if diff := cmp.Diff(want, decls[0]); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}

	nested, err := db.FindDeclarations(ctx, "Listener", 10)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range nested {
		names = append(names, d.QualifiedName)
	}
	wantNames := []string{"com.example.Calc.Listener", "com.example.Calc.Listener#fire(String...)"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("nested mismatch (-want +got):\n%s", diff)
	}
	if nested[0].Container != "com.example.Calc" || nested[0].Kind != "interface" {
		t.Errorf("nested class = %+v", nested[0])
	}
}

func TestFindDeclarations_EscapesWildcards(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	if _, err := db.WriteLibrary(ctx, sampleLibrary(t)); err != nil {
		t.Fatal(err)
	}

	for _, q := range []string{"%", "_", `\`} {
		decls, err := db.FindDeclarations(ctx, q, 10)
		if err != nil {
			t.Fatalf("FindDeclarations(%q): %v", q, err)
		}
		if len(decls) != 0 {
			t.Errorf("FindDeclarations(%q) matched %d rows", q, len(decls))
		}
	}
}

func TestFindTags(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	if _, err := db.WriteLibrary(ctx, sampleLibrary(t)); err != nil {
		t.Fatal(err)
	}

	hits, err := db.FindTags(ctx, "author", 10)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, h := range hits {
		got = append(got, h.Declaration.QualifiedName+"="+h.Tag.Value)
	}
	want := []string{"com.example.Calc=jane", "com.example.Calc.Listener=bob"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("author hits mismatch (-want +got):\n%s", diff)
	}

	params, err := db.FindTags(ctx, "param", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 2 || params[0].Tag.Value != "x the first operand" || params[1].Tag.Line != 17 {
		t.Errorf("param hits = %+v", params)
	}

	none, err := db.FindTags(ctx, "Author", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("tag lookup should be case-sensitive, got %d hits", len(none))
	}
}

func TestSearchDocs(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	if _, err := db.WriteLibrary(ctx, sampleLibrary(t)); err != nil {
		t.Fatal(err)
	}

	hits, err := db.SearchDocs(ctx, "calculator", 10)
	if err != nil {
		t.Fatalf("SearchDocs: %v", err)
	}
	if len(hits) != 1 || hits[0].QualifiedName != "com.example.Calc" {
		t.Errorf("SearchDocs(calculator) = %+v", hits)
	}

	if hits, err := db.SearchDocs(ctx, `sum" OR "x`, 10); err != nil || len(hits) != 0 {
		t.Errorf("operators should be literal: %v, %v", hits, err)
	}
	if hits, err := db.SearchDocs(ctx, "  ", 10); err != nil || hits != nil {
		t.Errorf("blank query = %v, %v", hits, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")

	db, err := Open(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	runID, err := db.WriteLibrary(ctx, sampleLibrary(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	run, err := db.LatestRun(ctx)
	if err != nil || run.ID != runID {
		t.Errorf("LatestRun after reopen = %v, %v", run, err)
	}
}
