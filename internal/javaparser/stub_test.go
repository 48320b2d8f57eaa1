//go:build !cgo

package javaparser

import (
	"context"
	"testing"

	"javadox/internal/errors"
)

func TestStubUnavailable(t *testing.T) {
	if IsAvailable() {
		t.Error("IsAvailable() = true without cgo")
	}
	_, err := NewParser(nil).ParseSource(context.Background(), "A.java", []byte("class A {}"))
	if errors.CodeOf(err) != errors.ParserUnavailable {
		t.Errorf("err = %v, want PARSER_UNAVAILABLE", err)
	}
}
