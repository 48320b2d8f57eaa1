package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"javadox/internal/library"
	"javadox/internal/model"
	"javadox/internal/paths"
)

var tagsParam string

var tagsCmd = &cobra.Command{
	Use:   "tags <name>",
	Short: "List doc tags with the given name",
	Long: `Load every source root and list each class, field and method carrying
a doc tag with the given name (without the leading @). Tag names are case
sensitive.

With --param only tags that define the named parameter are listed, and the
parameter value is shown next to each hit.

Examples:
  javadox tags author
  javadox tags persist --param table`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().StringVar(&tagsParam, "param", "", "Only show tags defining this named parameter")
	rootCmd.AddCommand(tagsCmd)
}

// TagsResponseCLI is the response format for tags
type TagsResponseCLI struct {
	Tag   string      `json:"tag"`
	Param string      `json:"param,omitempty"`
	Hits  []TagHitCLI `json:"hits"`
}

// TagHitCLI is one tag occurrence
type TagHitCLI struct {
	Declaration string `json:"declaration"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	ParamValue  string `json:"paramValue,omitempty"`
	Path        string `json:"path,omitempty"`
	Line        int    `json:"line,omitempty"`
}

func runTags(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := env.loadLibrary(context.Background(), true)
	if err != nil {
		return err
	}
	return writeResponse(cmd, collectTags(res.Library, env.root, args[0], tagsParam))
}

// collectTags walks classes in registration order, each followed by its
// fields and methods.
func collectTags(lib library.ClassLibrary, root, name, param string) *TagsResponseCLI {
	defer runtime.KeepAlive(lib)

	resp := &TagsResponseCLI{Tag: name, Param: param, Hits: []TagHitCLI{}}

	visit := func(e *model.Entity, decl, kind, path string) {
		for _, tag := range e.TagsByName(name) {
			hit := TagHitCLI{
				Declaration: decl,
				Kind:        kind,
				Value:       tag.Value(),
				Path:        path,
				Line:        tag.Line(),
			}
			if param != "" {
				v, ok := tag.NamedParameter(param)
				if !ok {
					continue
				}
				hit.ParamValue = v
			}
			resp.Hits = append(resp.Hits, hit)
		}
	}

	for _, cls := range lib.Classes() {
		fqn := cls.FullyQualifiedName()
		var path string
		if src, err := cls.Source(); err == nil {
			path = paths.Display(src.Path(), root)
		}
		visit(&cls.Entity, fqn, string(cls.Kind()), path)
		for _, f := range cls.Fields() {
			visit(&f.Entity, fqn+"."+f.Name(), "field", path)
		}
		for _, m := range cls.Methods() {
			kind := "method"
			if m.IsConstructor() {
				kind = "constructor"
			}
			visit(&m.Entity, fqn+"#"+m.CallSignature(), kind, path)
		}
	}
	return resp
}
