// Package store handles SQLite persistence of contact messages.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/folio/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width timestamps keep lexical and chronological order equal.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for contact messages.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Submit stores msg. It lets the store serve as the contact form sink.
func (s *Store) Submit(ctx context.Context, msg model.Message) error {
	_, err := s.InsertMessage(ctx, msg)
	return err
}

// InsertMessage stores a message and returns its id. A zero CreatedAt is set to now.
func (s *Store) InsertMessage(ctx context.Context, msg model.Message) (int64, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, body, created_at) VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(msg.Name),
		strings.TrimSpace(msg.Email),
		msg.Body,
		msg.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	return res.LastInsertId()
}

// ListMessages returns messages newest first, filtered by cfg.
func (s *Store) ListMessages(ctx context.Context, cfg model.InboxConfig) ([]model.Message, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, name, email, body, created_at
		FROM messages
		WHERE %s
		ORDER BY created_at DESC, id DESC`, strings.Join(clauses, " AND "))
	if cfg.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var createdAt string
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Body, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		msg.CreatedAt = parsed
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteMessage removes a message by id. It reports whether a row was deleted.
func (s *Store) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
