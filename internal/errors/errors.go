package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// EntityDetached indicates an entity's back-reference to its enclosing
	// declaration was never set or has been released
	EntityDetached ErrorCode = "ENTITY_DETACHED"
	// ClassNotFound indicates no class is registered under the name
	ClassNotFound ErrorCode = "CLASS_NOT_FOUND"
	// PackageNotFound indicates no package is registered under the name
	PackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// ParserUnavailable indicates the binary was built without tree-sitter
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// UnsupportedFile indicates a file that is not Java source
	UnsupportedFile ErrorCode = "UNSUPPORTED_FILE"
	// LibrarySealed indicates a registration after population completed
	LibrarySealed ErrorCode = "LIBRARY_SEALED"
	// CacheCorrupt indicates an unreadable parse cache entry
	CacheCorrupt ErrorCode = "CACHE_CORRUPT"
	// IndexMissing indicates the declaration index has not been built
	IndexMissing ErrorCode = "INDEX_MISSING"
	// IndexLocked indicates another process is writing the index
	IndexLocked ErrorCode = "INDEX_LOCKED"
	// ConfigInvalid indicates a configuration file that failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// Rebuild suggests rebuilding the binary
	Rebuild FixActionType = "rebuild"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// DoxError represents a javadox error with code, message, and suggestions
type DoxError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewDoxError creates a new DoxError
func NewDoxError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *DoxError {
	return &DoxError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// New creates a DoxError carrying the predefined fixes for its code.
func New(code ErrorCode, message string, cause error) *DoxError {
	return NewDoxError(code, message, cause, GetSuggestedFixes(code))
}

// Error implements the error interface
func (e *DoxError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DoxError) Unwrap() error {
	return e.cause
}

// Is matches any DoxError with the same code, so sentinel values built
// with New can be used as errors.Is targets.
func (e *DoxError) Is(target error) bool {
	t, ok := target.(*DoxError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetails adds details to the error
func (e *DoxError) WithDetails(details interface{}) *DoxError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first DoxError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var de *DoxError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	IndexMissing: {
		{
			Type:        RunCommand,
			Command:     "javadox index",
			Safe:        true,
			Description: "Build the declaration index",
		},
	},
	IndexLocked: {
		{
			Type:        RunCommand,
			Command:     "javadox index",
			Safe:        true,
			Description: "Retry once the other javadox process has finished",
		},
	},
	CacheCorrupt: {
		{
			Type:        RunCommand,
			Command:     "javadox index --no-cache",
			Safe:        true,
			Description: "Reparse without the parse cache",
		},
	},
	ParserUnavailable: {
		{
			Type:        Rebuild,
			Command:     "CGO_ENABLED=1 go build ./cmd/javadox",
			Safe:        true,
			Description: "Rebuild with CGO enabled to get the tree-sitter parser",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "javadox config init --force",
			Safe:        false,
			Description: "Rewrite .javadox/config.json with defaults",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
