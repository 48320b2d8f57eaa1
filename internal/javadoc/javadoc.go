// Package javadoc splits the text of a documentation comment into its prose
// body and doc tags. It is the inverse of model.Entity.CommentHeader.
package javadoc

import (
	"strings"

	"javadox/internal/model"
)

// IsDocComment reports whether text is a `/** ... */` block rather than a
// plain block or line comment.
func IsDocComment(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "/**") && strings.HasSuffix(text, "*/") && text != "/**/"
}

// Parse splits a documentation comment into comment body and tags.
func Parse(text string) (string, []*model.DocletTag) {
	return ParseAt(text, 0)
}

// ParseAt is Parse for a comment starting on startLine; tags record their
// own line numbers. A startLine of 0 leaves tag lines unknown.
func ParseAt(text string, startLine int) (string, []*model.DocletTag) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	var (
		body []string
		tags = []*model.DocletTag{}
		cur  *pendingTag
	)

	flush := func() {
		if cur == nil {
			return
		}
		tags = append(tags, cur.tag())
		cur = nil
	}

	raws := strings.Split(text, "\n")
	// whitespace touching the delimiters is not content
	raws[0] = strings.TrimLeft(raws[0], " \t")
	raws[len(raws)-1] = strings.TrimRight(raws[len(raws)-1], " \t")

	for i, raw := range raws {
		line := stripLinePrefix(raw)
		if name, value, ok := splitTagLine(strings.TrimLeft(line, " \t")); ok {
			flush()
			cur = &pendingTag{name: name, lines: []string{value}}
			if startLine > 0 {
				cur.line = startLine + i
			}
			continue
		}
		if cur != nil {
			cur.lines = append(cur.lines, line)
			continue
		}
		body = append(body, line)
	}
	flush()

	return strings.Join(trimBlankLines(body), "\n"), tags
}

// trimBlankLines drops leading and trailing whitespace-only lines and keeps
// the rest verbatim.
func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Apply parses text and replaces the comment and tags of e.
func Apply(e *model.Entity, text string, startLine int) {
	comment, tags := ParseAt(text, startLine)
	e.SetComment(comment)
	e.SetTags(tags)
}

type pendingTag struct {
	name  string
	lines []string
	line  int
}

func (p *pendingTag) tag() *model.DocletTag {
	lines := p.lines
	for len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	value := strings.Join(lines, "\n")
	return model.NewDocletTagAt(p.name, value, p.line)
}

// stripLinePrefix removes the leading whitespace, one '*' and one space of a
// continued comment line. Lines without a '*' margin lose only their leading
// whitespace.
func stripLinePrefix(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "*") {
		return trimmed
	}
	trimmed = trimmed[1:]
	if strings.HasPrefix(trimmed, " ") || strings.HasPrefix(trimmed, "\t") {
		trimmed = trimmed[1:]
	}
	return trimmed
}

// splitTagLine recognizes `@name value` at the start of a line.
func splitTagLine(line string) (name, value string, ok bool) {
	if len(line) < 2 || line[0] != '@' {
		return "", "", false
	}
	end := strings.IndexAny(line, " \t")
	if end < 0 {
		return line[1:], "", true
	}
	name = line[1:end]
	if name == "" {
		return "", "", false
	}
	return name, line[end+1:], true
}
