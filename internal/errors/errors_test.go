package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewDoxError(t *testing.T) {
	cause := errors.New("underlying error")
	fixes := []FixAction{{Type: RunCommand, Command: "javadox index"}}

	err := NewDoxError(IndexMissing, "index not found", cause, fixes)

	if err.Code != IndexMissing {
		t.Errorf("Code = %v, want %v", err.Code, IndexMissing)
	}
	if err.Message != "index not found" {
		t.Errorf("Message = %q, want %q", err.Message, "index not found")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestDoxError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      ParseFailed,
			message:   "cannot parse Foo.java",
			cause:     errors.New("unexpected EOF"),
			wantParts: []string{"PARSE_FAILED", "cannot parse Foo.java", "unexpected EOF"},
		},
		{
			name:      "without cause",
			code:      ClassNotFound,
			message:   "class 'a.B' not found",
			cause:     nil,
			wantParts: []string{"CLASS_NOT_FOUND", "class 'a.B' not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDoxError(tt.code, tt.message, tt.cause, nil)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestDoxError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewDoxError(InternalError, "something went wrong", cause, nil)

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}

	errNoCause := NewDoxError(EntityDetached, "no parent", nil, nil)
	if errNoCause.Unwrap() != nil {
		t.Errorf("Unwrap() on error without cause should return nil")
	}
}

func TestDoxError_Is(t *testing.T) {
	sentinel := New(EntityDetached, "detached", nil)
	wrapped := fmt.Errorf("lookup source: %w", New(EntityDetached, "field x has no parent class", nil))

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match DoxError by code through wrapping")
	}
	if errors.Is(wrapped, New(ClassNotFound, "other", nil)) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"dox error", New(LibrarySealed, "sealed", nil), LibrarySealed},
		{"wrapped", fmt.Errorf("ctx: %w", New(CacheCorrupt, "bad", nil)), CacheCorrupt},
		{"plain", errors.New("boom"), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDoxError_WithDetails(t *testing.T) {
	err := NewDoxError(ParseFailed, "bad source", nil, nil)
	details := map[string]int{"line": 12}

	result := err.WithDetails(details)

	if result != err {
		t.Error("WithDetails should return the same error for chaining")
	}
	if err.Details == nil {
		t.Error("Details should be set")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		wantNil bool
		wantLen int
	}{
		{IndexMissing, false, 1},
		{IndexLocked, false, 1},
		{CacheCorrupt, false, 1},
		{ParserUnavailable, false, 1},
		{ConfigInvalid, false, 1},
		{ClassNotFound, true, 0},
		{EntityDetached, true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			fixes := GetSuggestedFixes(tt.code)

			if tt.wantNil && fixes != nil {
				t.Errorf("GetSuggestedFixes(%v) = %v, want nil", tt.code, fixes)
			}
			if !tt.wantNil && len(fixes) != tt.wantLen {
				t.Errorf("GetSuggestedFixes(%v) len = %d, want %d", tt.code, len(fixes), tt.wantLen)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		EntityDetached,
		ClassNotFound,
		PackageNotFound,
		ParseFailed,
		ParserUnavailable,
		UnsupportedFile,
		LibrarySealed,
		CacheCorrupt,
		IndexMissing,
		IndexLocked,
		ConfigInvalid,
		InternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %v", code)
		}
		seen[code] = true

		if string(code) == "" {
			t.Error("Error code should not be empty")
		}
	}
}

func TestErrorActionsMap(t *testing.T) {
	for code, fixes := range ErrorActions {
		if len(fixes) == 0 {
			t.Errorf("ErrorActions[%v] has no fix actions", code)
		}
		for i, fix := range fixes {
			if fix.Type == "" {
				t.Errorf("ErrorActions[%v][%d].Type is empty", code, i)
			}
		}
	}
}
