// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists generated articles in a SQLite database so
// they can be listed, shown and exported later.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// ErrNotFound is returned by Get when no article matches.
var ErrNotFound = errors.New("article not found")

const defaultLimit = 20

// Store manages the article archive database.
type Store struct {
	db *sql.DB

	// Now stamps saved entries. Nil means time.Now.
	Now func() time.Time
}

// Entry is one archived article.
type Entry struct {
	ID          string         `json:"id" yaml:"id"`
	Slug        string         `json:"slug" yaml:"slug"`
	Title       string         `json:"title" yaml:"title"`
	Style       string         `json:"style" yaml:"style"`
	GeneratedBy string         `json:"generated_by" yaml:"generated_by"`
	WordCount   int            `json:"word_count" yaml:"word_count"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
	Article     *types.Article `json:"article,omitempty" yaml:"-"`
}

// Open opens or creates the archive database at path, creating its
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			style TEXT,
			generated_by TEXT,
			word_count INTEGER,
			created_at TEXT NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_slug ON articles(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created ON articles(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores art under a new id and returns the entry.
func (s *Store) Save(ctx context.Context, art types.Article) (Entry, error) {
	body, err := json.Marshal(art)
	if err != nil {
		return Entry{}, fmt.Errorf("marshaling article: %w", err)
	}

	e := Entry{
		ID:          uuid.NewString(),
		Slug:        art.SEO.Slug,
		Title:       art.Title,
		Style:       art.Style,
		GeneratedBy: art.GeneratedBy,
		WordCount:   art.WordCount,
		CreatedAt:   s.now().UTC(),
		Article:     &art,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO articles (id, slug, title, style, generated_by, word_count, created_at, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Slug, e.Title, e.Style, e.GeneratedBy, e.WordCount,
		e.CreatedAt.Format(time.RFC3339Nano), string(body),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting article: %w", err)
	}
	return e, nil
}

// Get returns the article with the given id. A slug is accepted too, in
// which case the most recent article with that slug is returned.
func (s *Store) Get(ctx context.Context, idOrSlug string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, style, generated_by, word_count, created_at, body
		 FROM articles WHERE id = ? OR slug = ?
		 ORDER BY (id = ?) DESC, created_at DESC LIMIT 1`,
		idOrSlug, idOrSlug, idOrSlug,
	)

	var (
		e       Entry
		created string
		body    string
	)
	err := row.Scan(&e.ID, &e.Slug, &e.Title, &e.Style, &e.GeneratedBy, &e.WordCount, &created, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, idOrSlug)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("querying article: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Entry{}, fmt.Errorf("parsing created_at: %w", err)
	}
	e.Article = new(types.Article)
	if err := json.Unmarshal([]byte(body), e.Article); err != nil {
		return Entry{}, fmt.Errorf("decoding article %s: %w", e.ID, err)
	}
	return e, nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
