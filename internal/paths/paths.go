// Package paths turns absolute source paths into project-relative,
// slash-separated display paths.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Relative converts an absolute path to a root-relative path with forward
// slashes. When the lexical result escapes root, symlinks are resolved on
// both sides before trying again.
func Relative(path, root string) (string, error) {
	if rel, err := filepath.Rel(root, path); err == nil && !escapes(filepath.ToSlash(rel)) {
		return filepath.ToSlash(rel), nil
	}

	resolved, err := evalIfExists(path)
	if err != nil {
		return "", err
	}
	rootResolved, err := evalIfExists(root)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}

func evalIfExists(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return "", err
	}
	return resolved, nil
}

// IsWithin reports whether path lies inside root.
func IsWithin(path, root string) bool {
	rel, err := Relative(path, root)
	if err != nil {
		return false
	}
	return !escapes(rel)
}

// Display returns path relative to root when it lies inside root, and path
// unchanged otherwise.
func Display(path, root string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := Relative(path, root)
	if err != nil || escapes(rel) {
		return path
	}
	return rel
}
