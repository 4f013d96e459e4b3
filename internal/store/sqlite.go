package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"trigrams/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	record     TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLite is a Store backed by a single SQLite file. Each record is one row
// holding the full match as JSON; Update runs under an immediate transaction
// so concurrent read-modify-writes of the same record are serialized by the
// database.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (and creates if missing) the database file and applies
// the schema. WAL journaling and a busy timeout keep concurrent writers
// polite; _txlock=immediate makes every transaction take the write lock up
// front.
func OpenSQLite(dsn string, log zerolog.Logger) (*SQLite, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Str("dsn", dsn).Msg("sqlite store opened")
	return &SQLite{db: db, log: log}, nil
}

// Close releases the underlying database handle
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Create(ctx context.Context, m *domain.Match) error {
	blob, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO matches (id, name, record, updated_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.Name, string(blob), m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*domain.Match, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM matches WHERE id = ?`, id,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select match: %w", err)
	}
	return decode([]byte(blob))
}

func (s *SQLite) Update(ctx context.Context, id string, fn func(*domain.Match) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var blob string
	err = tx.QueryRowContext(ctx,
		`SELECT record FROM matches WHERE id = ?`, id,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrMatchNotFound
	}
	if err != nil {
		return fmt.Errorf("select match: %w", err)
	}

	m, err := decode([]byte(blob))
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}

	next, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE matches SET name = ?, record = ?, updated_at = ? WHERE id = ?`,
		m.Name, string(next), m.UpdatedAt.UTC().Format(time.RFC3339Nano), m.ID,
	); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]*domain.Match, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM matches ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []*domain.Match
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		m, err := decode([]byte(blob))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
