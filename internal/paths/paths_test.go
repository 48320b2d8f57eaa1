package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelative(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "src", "com", "A.java")
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("class A {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Relative(file, root)
	if err != nil {
		t.Fatalf("Relative: %v", err)
	}
	if got != "src/com/A.java" {
		t.Errorf("Relative = %q, want src/com/A.java", got)
	}

	// missing files are used as given
	got, err = Relative(filepath.Join(root, "gone", "B.java"), root)
	if err != nil {
		t.Fatalf("Relative missing: %v", err)
	}
	if got != "gone/B.java" {
		t.Errorf("Relative missing = %q", got)
	}
}

func TestRelative_Symlink(t *testing.T) {
	real := t.TempDir()
	if err := os.WriteFile(filepath.Join(real, "A.java"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Relative(filepath.Join(real, "A.java"), link)
	if err != nil {
		t.Fatalf("Relative: %v", err)
	}
	if got != "A.java" {
		t.Errorf("Relative = %q, want A.java", got)
	}
}

func TestIsWithin(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"inside", filepath.Join(root, "a", "B.java"), true},
		{"root itself", root, true},
		{"sibling", filepath.Join(filepath.Dir(root), "other"), false},
		{"dotdot prefix name", filepath.Join(root, "..foo"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithin(tt.path, root); got != tt.want {
				t.Errorf("IsWithin(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "elsewhere", "C.java")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"already relative", "src/A.java", "src/A.java"},
		{"inside", filepath.Join(root, "src", "A.java"), "src/A.java"},
		{"outside", outside, outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.path, root); got != tt.want {
				t.Errorf("Display(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
