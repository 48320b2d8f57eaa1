package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"javadox/internal/library"
	"javadox/internal/model"
	"javadox/internal/paths"
	"javadox/internal/textbuf"
)

var classCode bool

var classCmd = &cobra.Command{
	Use:   "class <fully.qualified.Name>",
	Short: "Describe a class from the configured source roots",
	Long: `Load every source root and describe one class: its kind, location,
documentation block and member signatures. Nested classes are addressed
as Outer.Inner.

Examples:
  javadox class com.example.Calc
  javadox class com.example.Calc --code
  javadox class com.example.Outer.Inner --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: runClass,
}

func init() {
	classCmd.Flags().BoolVar(&classCode, "code", false, "Also print the regenerated declaration")
	rootCmd.AddCommand(classCmd)
}

// ClassResponseCLI is the response format for class
type ClassResponseCLI struct {
	Name         string      `json:"name"`
	Kind         string      `json:"kind"`
	Path         string      `json:"path,omitempty"`
	Line         int         `json:"line,omitempty"`
	Modifiers    []string    `json:"modifiers"`
	SuperClass   string      `json:"superClass,omitempty"`
	Implements   []string    `json:"implements,omitempty"`
	Comment      string      `json:"comment,omitempty"`
	Tags         []TagCLI    `json:"tags"`
	CommentBlock string      `json:"commentBlock,omitempty"`
	Fields       []MemberCLI `json:"fields"`
	Methods      []MemberCLI `json:"methods"`
	Nested       []string    `json:"nested,omitempty"`
	Code         string      `json:"code,omitempty"`
}

// TagCLI is a doc tag in CLI responses
type TagCLI struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Line  int    `json:"line,omitempty"`
}

// MemberCLI is a field or method summary
type MemberCLI struct {
	Name      string   `json:"name"`
	Signature string   `json:"signature"`
	Line      int      `json:"line,omitempty"`
	Tags      []TagCLI `json:"tags,omitempty"`
}

func runClass(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := env.loadLibrary(context.Background(), true)
	if err != nil {
		return err
	}
	cls, err := library.LookupClass(res.Library, args[0])
	if err != nil {
		return err
	}

	resp := convertClass(res.Library, cls, env.root)
	if classCode {
		sink := env.newSink()
		cls.WriteCodeBlock(sink)
		resp.Code = sink.String()
	}
	runtime.KeepAlive(res.Library)
	return writeResponse(cmd, resp)
}

// convertClass summarizes cls. lib owns the source cls was declared in and
// is held until the summary is built.
func convertClass(lib library.ClassLibrary, cls *model.Class, root string) *ClassResponseCLI {
	defer runtime.KeepAlive(lib)

	resp := &ClassResponseCLI{
		Name:         cls.FullyQualifiedName(),
		Kind:         string(cls.Kind()),
		Line:         cls.Line(),
		Modifiers:    cls.Modifiers(),
		SuperClass:   cls.SuperClass(),
		Implements:   cls.Implements(),
		Comment:      cls.Comment(),
		Tags:         convertTags(cls.Tags()),
		CommentBlock: cls.CommentBlock(),
		Fields:       []MemberCLI{},
		Methods:      []MemberCLI{},
	}
	if src, err := cls.Source(); err == nil {
		resp.Path = paths.Display(src.Path(), root)
	}
	for _, f := range cls.Fields() {
		resp.Fields = append(resp.Fields, MemberCLI{
			Name:      f.Name(),
			Signature: fieldSignature(f),
			Line:      f.Line(),
			Tags:      convertTags(f.Tags()),
		})
	}
	for _, m := range cls.Methods() {
		resp.Methods = append(resp.Methods, MemberCLI{
			Name:      m.Name(),
			Signature: m.DeclarationSignature(true),
			Line:      m.Line(),
			Tags:      convertTags(m.Tags()),
		})
	}
	for _, n := range cls.NestedClasses() {
		resp.Nested = append(resp.Nested, n.FullyQualifiedName())
	}
	return resp
}

func fieldSignature(f *model.Field) string {
	buf := textbuf.New()
	f.WriteAccessibilityModifiers(buf)
	f.WriteNonAccessibilityModifiers(buf)
	buf.WriteString(f.Type())
	_ = buf.WriteByte(' ')
	buf.WriteString(f.Name())
	return buf.String()
}

func convertTags(tags []*model.DocletTag) []TagCLI {
	out := make([]TagCLI, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagCLI{Name: t.Name(), Value: t.Value(), Line: t.Line()})
	}
	return out
}
