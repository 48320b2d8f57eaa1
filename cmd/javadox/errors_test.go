package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"javadox/internal/errors"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantParts []string
	}{
		{
			name:      "plain",
			err:       fmt.Errorf("boom"),
			wantParts: []string{"Error: boom"},
		},
		{
			name:      "with fix",
			err:       fmt.Errorf("search: %w", errors.New(errors.IndexMissing, "no index", nil)),
			wantParts: []string{"INDEX_MISSING", "hint: javadox index", "# Build the declaration index"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			for _, part := range tt.wantParts {
				if !strings.Contains(buf.String(), part) {
					t.Errorf("output %q missing %q", buf.String(), part)
				}
			}
		})
	}
}
