package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Timestamps are stored as UTC unix nanoseconds so both dialects sort and
// scan them the same way.
const createNotesTable = `CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL,
	properties TEXT NOT NULL DEFAULT '{}'
);`

// SQLStore keeps notes in one table of a SQLite or Postgres database.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (creating if needed) a SQLite notes database. path may
// be ":memory:".
func OpenSQLite(path string, driver SQLiteDriver) (*SQLStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
	}
	db, err := driver.open(path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s with %s: %w", path, driver, err)
	}
	// A second pooled connection would see a different :memory: database,
	// and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	return NewSQLStore(db, SQLite)
}

func OpenPostgres(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return NewSQLStore(db, Postgres)
}

// NewSQLStore takes ownership of db and makes sure the notes table exists.
func NewSQLStore(db *sql.DB, d Dialect) (*SQLStore, error) {
	s := &SQLStore{db: db, dialect: d}
	if _, err := db.Exec(createNotesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating notes table: %w", err)
	}
	return s, nil
}

// rebind rewrites ? placeholders as $1, $2... for Postgres.
func (s *SQLStore) rebind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(r rowScanner) (*Note, error) {
	var (
		n                Note
		created, updated int64
		props            string
	)
	if err := r.Scan(&n.ID, &n.Content, &created, &updated, &props); err != nil {
		return nil, err
	}
	n.CreatedAt = time.Unix(0, created).UTC()
	n.UpdatedAt = time.Unix(0, updated).UTC()
	p, err := decodeProperties(props)
	if err != nil {
		return nil, fmt.Errorf("note %s: properties: %w", n.ID, err)
	}
	n.Properties = p
	return &n, nil
}

func (s *SQLStore) GetAllNotes(ctx context.Context) ([]*Note, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content, created_at, updated_at, properties FROM notes ORDER BY updated_at DESC;")
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLStore) GetNote(ctx context.Context, id string) (*Note, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT id, content, created_at, updated_at, properties FROM notes WHERE id=?;"), id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", id, err)
	}
	return n, nil
}

func (s *SQLStore) SaveNote(ctx context.Context, n *Note) error {
	n.touch()
	return s.ImportNote(ctx, n)
}

// ImportNote upserts n keeping its timestamps.
func (s *SQLStore) ImportNote(ctx context.Context, n *Note) error {
	props, err := encodeProperties(n.Properties)
	if err != nil {
		return fmt.Errorf("note %s: properties: %w", n.ID, err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(
		"INSERT INTO notes (id, content, created_at, updated_at, properties) VALUES (?, ?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET content=excluded.content, "+
			"updated_at=excluded.updated_at, properties=excluded.properties;"),
		n.ID, n.Content, n.CreatedAt.UnixNano(), n.UpdatedAt.UnixNano(), props)
	if err != nil {
		return fmt.Errorf("saving note %s: %w", n.ID, err)
	}
	return nil
}

func (s *SQLStore) CreateNote(ctx context.Context) (*Note, error) {
	n := NewNote()
	if err := s.ImportNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *SQLStore) DeleteNote(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM notes WHERE id=?;"), id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
