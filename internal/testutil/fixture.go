package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files under root. Keys are slash-separated relative
// paths; parent directories are created as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// ReadFixture returns the content of testdata/<name> relative to the
// package under test.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return data
}

// JavaProject is a small multi-file source tree shared by the loader,
// watcher and command tests.
var JavaProject = map[string]string{
	"src/com/example/Calc.java": `package com.example;

import java.util.List;

/**
 * A calculator.
 *
 * @author jane
 * @since 1.0
 */
public final class Calc {
    /** Running total. */
    private int total = 0;

    /**
     * Computes sum.
     *
     * @param x the first operand
     * @param y the second operand
     * @return the sum
     */
    public static int add(int x, int y) {
        return x + y;
    }

    /**
     * @deprecated use add
     */
    protected int plus(int x) {
        return x + total;
    }
}
`,
	"src/com/example/Shape.java": `package com.example;

/**
 * A shape kind.
 *
 * @persist table="shapes" cache=true
 */
public enum Shape {
    CIRCLE, SQUARE;

    /** @return the label */
    public String label() {
        return name().toLowerCase();
    }
}
`,
	"src/com/example/util/Listener.java": `package com.example.util;

/**
 * Receives events.
 *
 * @author bob
 */
public interface Listener {
    void fire(String... args);
}
`,
	"src/.hidden/Ignored.java": `public class Ignored {}
`,
	"src/notes.txt": "not java\n",
}
