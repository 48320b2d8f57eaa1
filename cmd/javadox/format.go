package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	nameColor   = color.New(color.Bold)
	dimColor    = color.New(color.Faint)
	warnColor   = color.New(color.FgYellow)
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ShowResponseCLI:
		return strings.TrimRight(v.Code, "\n"), nil
	case *ClassResponseCLI:
		return formatClassHuman(v), nil
	case *TagsResponseCLI:
		return formatTagsHuman(v), nil
	case *IndexResponseCLI:
		return formatIndexHuman(v), nil
	case *SearchResponseCLI:
		return formatSearchHuman(v), nil
	case *ConfigShowResponse:
		return formatConfigHuman(v)
	case *ConfigInitResponse:
		return fmt.Sprintf("Wrote %s", v.ConfigPath), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func location(path string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}

func formatClassHuman(resp *ClassResponseCLI) string {
	var b strings.Builder

	b.WriteString(headerColor.Sprintf("%s %s", resp.Kind, resp.Name))
	b.WriteString("\n")
	b.WriteString(dimColor.Sprint(location(resp.Path, resp.Line)))
	b.WriteString("\n")
	if resp.SuperClass != "" {
		b.WriteString(fmt.Sprintf("  extends %s\n", resp.SuperClass))
	}
	if len(resp.Implements) > 0 {
		keyword := "implements"
		if resp.Kind == "interface" {
			keyword = "extends"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", keyword, strings.Join(resp.Implements, ", ")))
	}

	if resp.CommentBlock != "" {
		b.WriteString("\n")
		b.WriteString(resp.CommentBlock)
	}

	if len(resp.Fields) > 0 {
		b.WriteString("\n")
		b.WriteString(nameColor.Sprint("Fields:"))
		b.WriteString("\n")
		for _, m := range resp.Fields {
			b.WriteString(fmt.Sprintf("  %s %s\n", m.Signature, dimColor.Sprintf("(line %d)", m.Line)))
		}
	}
	if len(resp.Methods) > 0 {
		b.WriteString("\n")
		b.WriteString(nameColor.Sprint("Methods:"))
		b.WriteString("\n")
		for _, m := range resp.Methods {
			b.WriteString(fmt.Sprintf("  %s %s\n", m.Signature, dimColor.Sprintf("(line %d)", m.Line)))
		}
	}
	if resp.Code != "" {
		b.WriteString("\n")
		b.WriteString(resp.Code)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTagsHuman(resp *TagsResponseCLI) string {
	var b strings.Builder

	b.WriteString(headerColor.Sprintf("@%s", resp.Tag))
	b.WriteString(fmt.Sprintf(" (%d found)\n", len(resp.Hits)))
	for _, h := range resp.Hits {
		b.WriteString(fmt.Sprintf("  %s  %s", nameColor.Sprint(h.Declaration), h.Value))
		if resp.Param != "" {
			b.WriteString(fmt.Sprintf("  [%s=%s]", resp.Param, h.ParamValue))
		}
		b.WriteString("  ")
		b.WriteString(dimColor.Sprint(location(h.Path, h.Line)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatIndexHuman(resp *IndexResponseCLI) string {
	var b strings.Builder

	b.WriteString(headerColor.Sprint("Index updated"))
	if resp.Changes > 0 {
		b.WriteString(fmt.Sprintf(" after %d change(s)", resp.Changes))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Run:          %s\n", resp.RunID))
	b.WriteString(fmt.Sprintf("  Database:     %s\n", resp.IndexPath))
	b.WriteString(fmt.Sprintf("  Files:        %d (%d parsed, %d from cache)\n", resp.Files, resp.Parsed, resp.CacheHits))
	b.WriteString(fmt.Sprintf("  Classes:      %d\n", resp.Classes))
	b.WriteString(fmt.Sprintf("  Declarations: %d\n", resp.Declarations))
	for _, p := range resp.Oversize {
		b.WriteString(warnColor.Sprintf("  skipped (too large): %s\n", p))
	}
	for _, f := range resp.Failures {
		b.WriteString(warnColor.Sprintf("  failed: %s\n", f))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSearchHuman(resp *SearchResponseCLI) string {
	var b strings.Builder

	b.WriteString(headerColor.Sprintf("%s search: %q", resp.Mode, resp.Query))
	b.WriteString(fmt.Sprintf(" (%d found)\n", resp.TotalCount))
	for _, r := range resp.Results {
		b.WriteString(fmt.Sprintf("  %-11s %s\n", r.Kind, nameColor.Sprint(r.QualifiedName)))
		if r.TagName != "" {
			b.WriteString(fmt.Sprintf("              @%s %s\n", r.TagName, r.TagValue))
		}
		b.WriteString(fmt.Sprintf("              %s\n", dimColor.Sprint(location(r.Path, r.Line))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatConfigHuman(resp *ConfigShowResponse) (string, error) {
	data, err := json.MarshalIndent(resp.Config, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	var b strings.Builder
	b.WriteString(dimColor.Sprintf("# %s", resp.ConfigPath))
	if resp.UsedDefaults {
		b.WriteString(dimColor.Sprint(" (not found, showing defaults)"))
	}
	b.WriteString("\n")
	b.Write(data)
	return b.String(), nil
}
