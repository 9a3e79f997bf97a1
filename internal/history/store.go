// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of generated drafts.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

const defaultLimit = 20

// createdAtLayout is fixed width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger at path, creating the parent
// directory and the schema if needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
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
		`CREATE TABLE IF NOT EXISTS drafts (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			slug TEXT NOT NULL,
			path TEXT NOT NULL,
			provider TEXT,
			model TEXT,
			bytes INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_created_at ON drafts(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_slug ON drafts(slug)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts rec. A record with an existing ID replaces the old one.
func (s *Store) Record(ctx context.Context, rec types.DraftRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO drafts (id, topic, slug, path, provider, model, bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Topic, rec.Slug, rec.Path, string(rec.Provider), rec.Model, rec.Bytes,
		rec.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting draft %s: %w", rec.ID, err)
	}
	return nil
}

// List returns up to limit records, newest first. A limit of zero or less
// uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.DraftRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.query(ctx,
		`SELECT id, topic, slug, path, provider, model, bytes, created_at
		 FROM drafts ORDER BY created_at DESC, id LIMIT ?`, limit)
}

// BySlug returns every record with the given slug, newest first. More
// than one record means the same topic was drafted more than once.
func (s *Store) BySlug(ctx context.Context, slug string) ([]types.DraftRecord, error) {
	return s.query(ctx,
		`SELECT id, topic, slug, path, provider, model, bytes, created_at
		 FROM drafts WHERE slug = ? ORDER BY created_at DESC, id`, slug)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.DraftRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var records []types.DraftRecord
	for rows.Next() {
		var (
			rec       types.DraftRecord
			provider  string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Topic, &rec.Slug, &rec.Path, &provider, &rec.Model, &rec.Bytes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning draft: %w", err)
		}
		rec.Provider = types.Provider(provider)
		if rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
