// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps every fetched record in a local SQLite database so
// that results from many input files accumulate in one place and can be
// re-exported without querying PubMed again.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// Store wraps the library database.
type Store struct {
	db *sql.DB
}

// Entry is a stored record with its bookkeeping fields.
type Entry struct {
	types.Record `yaml:",inline"`

	// FetchedAt is when the record was last written.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// Source names the input file the record was last fetched for.
	Source string `json:"source" yaml:"source"`
}

// Open opens or creates the library at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
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
		`CREATE TABLE IF NOT EXISTS records (
			pmid TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			authors TEXT NOT NULL DEFAULT '',
			journal TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_year ON records(year)`,
		`CREATE INDEX IF NOT EXISTS idx_records_journal ON records(journal)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put upserts records in one transaction, keyed by PubMed ID. source names
// the input the records came from.
func (s *Store) Put(ctx context.Context, records []types.Record, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (pmid, title, authors, journal, year, source, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, journal=excluded.journal,
			year=excluded.year, source=excluded.source, fetched_at=excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, r := range records {
		if r.IsZero() {
			continue
		}
		if _, err := stmt.ExecContext(ctx, r.PubMedID, r.Title, r.Authors, r.Journal, r.Year, source, stamp); err != nil {
			return fmt.Errorf("upserting %s: %w", r.PubMedID, err)
		}
	}
	return tx.Commit()
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	// Query matches a substring of title, authors, or journal.
	Query string

	// Year matches the publication year exactly.
	Year string

	// Journal matches a substring of the journal title.
	Journal string

	// Limit caps the result count; 0 means no cap.
	Limit int
}

// List returns stored entries matching f, ordered by PubMed ID.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Query != "" {
		where = append(where, `(title LIKE ? OR authors LIKE ? OR journal LIKE ?)`)
		like := "%" + f.Query + "%"
		args = append(args, like, like, like)
	}
	if f.Year != "" {
		where = append(where, `year = ?`)
		args = append(args, f.Year)
	}
	if f.Journal != "" {
		where = append(where, `journal LIKE ?`)
		args = append(args, "%"+f.Journal+"%")
	}

	q := `SELECT pmid, title, authors, journal, year, source, fetched_at FROM records`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY CAST(pmid AS INTEGER), pmid`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			stamp string
		)
		if err := rows.Scan(&e.PubMedID, &e.Title, &e.Authors, &e.Journal, &e.Year, &e.Source, &stamp); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
			e.FetchedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Records strips bookkeeping fields from entries.
func Records(entries []Entry) []types.Record {
	out := make([]types.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out
}
