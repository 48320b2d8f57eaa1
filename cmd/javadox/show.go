package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"javadox/internal/javaparser"
	"javadox/internal/paths"
)

var showCmd = &cobra.Command{
	Use:   "show <file.java>",
	Short: "Parse a Java file and print the regenerated source",
	Long: `Parse a single Java source file into the entity model and print the
declarations regenerated from it: doc comments, modifiers, signatures and
bodies, indented according to render settings.

Examples:
  javadox show src/com/example/Calc.java
  javadox show Calc.java --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// ShowResponseCLI is the response format for show
type ShowResponseCLI struct {
	Path    string   `json:"path"`
	Package string   `json:"package,omitempty"`
	Classes []string `json:"classes"`
	Code    string   `json:"code"`
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	parser := javaparser.NewParser(env.logger)
	src, err := parser.ParseFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	sink := env.newSink()
	src.WriteCodeBlock(sink)

	resp := &ShowResponseCLI{
		Path:    paths.Display(src.Path(), env.root),
		Package: src.PackageName(),
		Classes: []string{},
		Code:    sink.String(),
	}
	for _, c := range src.AllClasses() {
		resp.Classes = append(resp.Classes, c.FullyQualifiedName())
	}
	runtime.KeepAlive(src)
	return writeResponse(cmd, resp)
}
