//go:build !cgo

package javaparser

import (
	"context"
	"log/slog"

	"javadox/internal/errors"
	"javadox/internal/model"
)

// Parser is unavailable in builds without CGO.
type Parser struct{}

// NewParser returns a parser whose every call fails with PARSER_UNAVAILABLE.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{}
}

// ParseSource always fails in builds without CGO.
func (p *Parser) ParseSource(ctx context.Context, path string, src []byte) (*model.Source, error) {
	return nil, errors.New(errors.ParserUnavailable, "java parsing requires CGO (tree-sitter)", nil)
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
