package storage

import (
	"context"
	"strings"
)

// SearchDocs runs a full-text phrase query over declaration names and doc
// comments, best matches first.
func (db *DB) SearchDocs(ctx context.Context, query string, limit int) ([]Declaration, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+declColumns+`
		FROM declarations_fts f
		JOIN declarations d ON d.id = f.rowid
		WHERE declarations_fts MATCH ?
		ORDER BY bm25(declarations_fts, 2.0, 1.0, 0.5)
		LIMIT ?`, phraseQuery(query), normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Declaration
	for rows.Next() {
		d, err := scanDeclaration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// phraseQuery quotes text as an FTS5 phrase so operators in user input are
// taken literally.
func phraseQuery(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}
