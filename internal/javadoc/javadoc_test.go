package javadoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"javadox/internal/model"
)

type tagPair struct {
	Name, Value string
}

func pairs(tags []*model.DocletTag) []tagPair {
	out := []tagPair{}
	for _, t := range tags {
		out = append(out, tagPair{t.Name(), t.Value()})
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantComment string
		wantTags    []tagPair
	}{
		{
			name:        "single line",
			text:        "/** Returns the size. */",
			wantComment: "Returns the size.",
			wantTags:    []tagPair{},
		},
		{
			name: "conventional block",
			text: `/**
     * Loads the file.
     * <p>
     * Blocks until done.
     *
     * @param path where to read
     *        from disk
     * @return the bytes
     * @throws IOException on failure
     */`,
			wantComment: "Loads the file.\n<p>\nBlocks until done.",
			wantTags: []tagPair{
				{"param", "path where to read\n       from disk"},
				{"return", "the bytes"},
				{"throws", "IOException on failure"},
			},
		},
		{
			name:        "tags only",
			text:        "/**\n * @deprecated\n * @see Other#run()\n */",
			wantComment: "",
			wantTags:    []tagPair{{"deprecated", ""}, {"see", "Other#run()"}},
		},
		{
			name:        "inline tag is not a block tag",
			text:        "/**\n * {@link Foo} is used.\n * email me @ home\n */",
			wantComment: "{@link Foo} is used.\nemail me @ home",
			wantTags:    []tagPair{},
		},
		{
			name:        "no star margin",
			text:        "/**\n   Plain text\n   @author someone\n*/",
			wantComment: "Plain text",
			wantTags:    []tagPair{{"author", "someone"}},
		},
		{
			name:        "single line tag",
			text:        "/** @since 1.0 */",
			wantComment: "",
			wantTags:    []tagPair{{"since", "1.0"}},
		},
		{
			name:        "trailing blank tag lines dropped",
			text:        "/**\n * @return the sum\n *\n *\n */",
			wantComment: "",
			wantTags:    []tagPair{{"return", "the sum"}},
		},
		{
			name:        "empty",
			text:        "/***/",
			wantComment: "",
			wantTags:    []tagPair{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, tags := Parse(tt.text)
			if diff := cmp.Diff(tt.wantComment, comment); diff != "" {
				t.Errorf("comment mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantTags, pairs(tags)); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAtLineNumbers(t *testing.T) {
	text := "/**\n * Doc.\n *\n * @param a first\n * @param b second\n */"
	_, tags := ParseAt(text, 10)

	var lines []int
	for _, tag := range tags {
		lines = append(lines, tag.Line())
	}
	if diff := cmp.Diff([]int{13, 14}, lines); diff != "" {
		t.Errorf("tag lines mismatch (-want +got):\n%s", diff)
	}
}

func TestIsDocComment(t *testing.T) {
	tests := map[string]bool{
		"/** doc */":       true,
		"  /**\n * x\n */": true,
		"/* plain */":      false,
		"// line":          false,
		"/**/":             false,
	}
	for text, want := range tests {
		if got := IsDocComment(text); got != want {
			t.Errorf("IsDocComment(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		tags    []tagPair
	}{
		{"comment and tags", "Computes sum.", []tagPair{{"param", "x the first operand"}, {"return", "the sum"}}},
		{"comment only", "Note.", []tagPair{}},
		{"tags only", "", []tagPair{{"deprecated", ""}, {"since", "2.0"}}},
		{"multi-line comment", "First.\n\n  Indented second.", []tagPair{{"see", "A"}, {"see", "B"}}},
		{"named parameters", "Mapped.", []tagPair{{"hibernate.column", `name="id" length=10`}}},
		{"indented first line", "  Indented first line.", []tagPair{}},
		{"trailing spaces kept", "Last line.  ", []tagPair{{"since", "1.0 "}}},
		{"trailing tab in tag", "Sum.", []tagPair{{"return", "total\t"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e model.Entity
			e.SetComment(tt.comment)
			var tags []*model.DocletTag
			for _, p := range tt.tags {
				tags = append(tags, model.NewDocletTag(p.Name, p.Value))
			}
			e.SetTags(tags)

			var parsed model.Entity
			Apply(&parsed, e.CommentBlock(), 1)

			if parsed.Comment() != tt.comment {
				t.Errorf("comment = %q, want %q", parsed.Comment(), tt.comment)
			}
			if diff := cmp.Diff(tt.tags, pairs(parsed.Tags())); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
