// Package javaparser builds the entity model from Java source text.
package javaparser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"javadox/internal/errors"
	"javadox/internal/model"
)

// JavaExtension is the only file extension the parser accepts.
const JavaExtension = ".java"

// IsJavaFile reports whether path names a Java source file.
func IsJavaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), JavaExtension)
}

// ParseFile reads and parses a single source file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.Source, error) {
	if !IsJavaFile(path) {
		return nil, errors.New(errors.UnsupportedFile, fmt.Sprintf("%s is not a %s file", path, JavaExtension), nil)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ParseSource(ctx, path, src)
}
