//go:build cgo

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"javadox/internal/errors"
	"javadox/internal/snapshot"
	"javadox/internal/testutil"
)

func javaProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTree(t, root, testutil.JavaProject)
	return root
}

func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
}

func TestShow(t *testing.T) {
	root := javaProject(t)
	path := filepath.Join(root, "src", "com", "example", "Calc.java")

	out, _, err := executeCommand(t, "show", path, "--root", root)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"package com.example;",
		"import java.util.List;",
		" * @author jane",
		"public final class Calc {",
		"    public static int add(int x, int y) {",
		"        return x + y;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShow_UnsupportedFile(t *testing.T) {
	root := javaProject(t)

	_, _, err := executeCommand(t, "show", filepath.Join(root, "src", "notes.txt"), "--root", root)
	if errors.CodeOf(err) != errors.UnsupportedFile {
		t.Fatalf("err = %v, want UNSUPPORTED_FILE", err)
	}
}

func TestClass(t *testing.T) {
	root := javaProject(t)

	out, _, err := executeCommand(t, "class", "com.example.Calc", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("class: %v", err)
	}

	var resp ClassResponseCLI
	decodeJSON(t, out, &resp)
	if resp.Kind != "class" || resp.Name != "com.example.Calc" {
		t.Errorf("class = %s %s", resp.Kind, resp.Name)
	}
	if !strings.HasSuffix(resp.Path, filepath.Join("com", "example", "Calc.java")) {
		t.Errorf("Path = %q", resp.Path)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Signature != "private int total" {
		t.Errorf("Fields = %+v", resp.Fields)
	}
	if len(resp.Methods) != 2 || resp.Methods[0].Signature != "public static int add(int x, int y)" {
		t.Errorf("Methods = %+v", resp.Methods)
	}
	if !strings.Contains(resp.CommentBlock, " * @since 1.0") {
		t.Errorf("CommentBlock = %q", resp.CommentBlock)
	}
}

func TestClass_HumanWithCode(t *testing.T) {
	root := javaProject(t)

	out, _, err := executeCommand(t, "class", "com.example.Shape", "--root", root, "--code")
	if err != nil {
		t.Fatalf("class: %v", err)
	}
	for _, want := range []string{"enum com.example.Shape", "Methods:", "CIRCLE, SQUARE;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClass_NotFound(t *testing.T) {
	root := javaProject(t)

	_, _, err := executeCommand(t, "class", "com.example.Missing", "--root", root)
	if errors.CodeOf(err) != errors.ClassNotFound {
		t.Fatalf("err = %v, want CLASS_NOT_FOUND", err)
	}
}

func TestTags(t *testing.T) {
	root := javaProject(t)

	out, _, err := executeCommand(t, "tags", "author", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	var resp TagsResponseCLI
	decodeJSON(t, out, &resp)

	var got []string
	for _, h := range resp.Hits {
		got = append(got, h.Declaration+"="+h.Value)
	}
	want := []string{"com.example.Calc=jane", "com.example.util.Listener=bob"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("hits = %v, want %v", got, want)
	}
}

func TestTags_NamedParameter(t *testing.T) {
	root := javaProject(t)

	out, _, err := executeCommand(t, "tags", "persist", "--param", "table", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	var resp TagsResponseCLI
	decodeJSON(t, out, &resp)
	if len(resp.Hits) != 1 || resp.Hits[0].ParamValue != "shapes" || resp.Hits[0].Kind != "enum" {
		t.Errorf("hits = %+v", resp.Hits)
	}

	out, _, err = executeCommand(t, "tags", "persist", "--param", "missing", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	decodeJSON(t, out, &resp)
	if len(resp.Hits) != 0 {
		t.Errorf("hits for a missing parameter = %+v", resp.Hits)
	}
}

func TestIndexAndSearch(t *testing.T) {
	root := javaProject(t)

	out, _, err := executeCommand(t, "index", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	var idx IndexResponseCLI
	decodeJSON(t, out, &idx)
	if idx.Files != 3 || idx.Parsed != 3 || idx.Classes != 3 {
		t.Errorf("index = %+v", idx)
	}

	// second run is served from the parse cache
	out, _, err = executeCommand(t, "index", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	decodeJSON(t, out, &idx)
	if idx.CacheHits != 3 {
		t.Errorf("CacheHits = %d, want 3", idx.CacheHits)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"name", []string{"search", "add"}, "com.example.Calc#add(int, int)"},
		{"tag", []string{"search", "deprecated", "--tag"}, "com.example.Calc#plus(int)"},
		{"docs", []string{"search", "calculator", "--docs"}, "com.example.Calc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--root", root, "--format", "json")
			out, _, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			var resp SearchResponseCLI
			decodeJSON(t, out, &resp)
			if resp.Mode != tt.name {
				t.Errorf("Mode = %q, want %q", resp.Mode, tt.name)
			}
			if resp.TotalCount != 1 || resp.Results[0].QualifiedName != tt.want {
				t.Errorf("results = %+v, want %s", resp.Results, tt.want)
			}
		})
	}
}

func TestExport(t *testing.T) {
	root := javaProject(t)
	file := filepath.Join(root, "model.yaml")

	if _, _, err := executeCommand(t, "export", "--output", "yaml", "--file", file, "--root", root); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var doc snapshot.Export
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if doc.Schema != snapshot.SchemaVersion || len(doc.Sources) != 3 {
		t.Fatalf("export = schema %d, %d sources", doc.Schema, len(doc.Sources))
	}
	if got := doc.Sources[0].Classes[0].Name; got != "Calc" {
		t.Errorf("first class = %q, want Calc", got)
	}
}
