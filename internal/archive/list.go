// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// ListOptions filters List results.
type ListOptions struct {
	// Query matches a substring of the title, case-insensitively.
	Query string

	// Style keeps only articles written under this policy.
	Style string

	// Limit caps the result count. Zero uses 20; negative means no limit.
	Limit int
}

// List returns archived entries, newest first. The Article field of each
// entry is nil; use Get for the full article.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, slug, title, style, generated_by, word_count, created_at
		FROM articles WHERE 1=1`)
	if opts.Query != "" {
		qb.WriteString(` AND title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.Style != "" {
		qb.WriteString(` AND style = ?`)
		args = append(args, opts.Style)
	}
	qb.WriteString(` ORDER BY created_at DESC, rowid DESC`)

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Slug, &e.Title, &e.Style, &e.GeneratedBy, &e.WordCount, &created); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Export writes the entries matching opts to w as "yaml" or "json".
// Entries carry their metadata only, not the article bodies.
func (s *Store) Export(ctx context.Context, w io.Writer, format string, opts ListOptions) error {
	if opts.Limit == 0 {
		opts.Limit = -1
	}
	entries, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}

	var data []byte
	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(entries)
	case "json", "":
		data, err = json.MarshalIndent(entries, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
