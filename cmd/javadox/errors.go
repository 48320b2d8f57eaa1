package main

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"javadox/internal/errors"
)

var errorColor = color.New(color.FgRed, color.Bold)

// usageError reports a bad flag or argument value.
func usageError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// printError writes err to w along with any suggested fixes.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorColor.Sprint("Error:"), err)

	var de *errors.DoxError
	if !stderrors.As(err, &de) {
		return
	}
	for _, fix := range de.SuggestedFixes {
		switch {
		case fix.Command != "":
			fmt.Fprintf(w, "  hint: %s", fix.Command)
		case fix.URL != "":
			fmt.Fprintf(w, "  hint: see %s", fix.URL)
		default:
			continue
		}
		if fix.Description != "" {
			fmt.Fprintf(w, "  # %s", fix.Description)
		}
		fmt.Fprintln(w)
	}
}
