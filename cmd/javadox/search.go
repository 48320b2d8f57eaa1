package main

import (
	"context"

	"github.com/spf13/cobra"

	"javadox/internal/paths"
	"javadox/internal/storage"
)

var (
	searchTag   bool
	searchDocs  bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the declaration index",
	Long: `Search the index written by "javadox index".

Search modes:
  - default: substring match on simple or qualified declaration names
  - --tag:   declarations carrying a doc tag with this exact name
  - --docs:  full-text search over names and doc comments

Examples:
  javadox search Calc
  javadox search deprecated --tag
  javadox search "first operand" --docs --limit=5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchTag, "tag", false, "Search by doc tag name")
	searchCmd.Flags().BoolVar(&searchDocs, "docs", false, "Full-text search over documentation")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")
	searchCmd.MarkFlagsMutuallyExclusive("tag", "docs")
	rootCmd.AddCommand(searchCmd)
}

// SearchResponseCLI is the response format for search
type SearchResponseCLI struct {
	Query      string            `json:"query"`
	Mode       string            `json:"mode"`
	RunID      string            `json:"runId"`
	Results    []SearchResultCLI `json:"results"`
	TotalCount int               `json:"totalCount"`
}

// SearchResultCLI is one search hit
type SearchResultCLI struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualifiedName"`
	Signature     string `json:"signature"`
	Path          string `json:"path"`
	Line          int    `json:"line"`
	TagName       string `json:"tagName,omitempty"`
	TagValue      string `json:"tagValue,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	db, err := env.openIndex(ctx)
	if err != nil {
		return err
	}
	run, err := db.LatestRun(ctx)
	if err != nil {
		return err
	}

	query := args[0]
	resp := &SearchResponseCLI{Query: query, RunID: run.ID, Results: []SearchResultCLI{}}
	switch {
	case searchTag:
		resp.Mode = "tag"
		hits, err := db.FindTags(ctx, query, searchLimit)
		if err != nil {
			return err
		}
		for _, h := range hits {
			r := convertDeclaration(h.Declaration, env.root)
			r.TagName = h.Tag.Name
			r.TagValue = h.Tag.Value
			resp.Results = append(resp.Results, r)
		}
	case searchDocs:
		resp.Mode = "docs"
		decls, err := db.SearchDocs(ctx, query, searchLimit)
		if err != nil {
			return err
		}
		for _, d := range decls {
			resp.Results = append(resp.Results, convertDeclaration(d, env.root))
		}
	default:
		resp.Mode = "name"
		decls, err := db.FindDeclarations(ctx, query, searchLimit)
		if err != nil {
			return err
		}
		for _, d := range decls {
			resp.Results = append(resp.Results, convertDeclaration(d, env.root))
		}
	}
	resp.TotalCount = len(resp.Results)
	return writeResponse(cmd, resp)
}

func convertDeclaration(d storage.Declaration, root string) SearchResultCLI {
	return SearchResultCLI{
		Kind:          d.Kind,
		Name:          d.Name,
		QualifiedName: d.QualifiedName,
		Signature:     d.Signature,
		Path:          paths.Display(d.Path, root),
		Line:          d.Line,
	}
}
