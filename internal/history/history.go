// Package history records project generations in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultLimit is the number of entries List returns when limit <= 0
const DefaultLimit = 50

// Status of a recorded generation
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Entry is one generation
type Entry struct {
	ID           string    `json:"id"`
	ProjectName  string    `json:"project_name"`
	ProjectPath  string    `json:"project_path"`
	TemplateName string    `json:"template_name"`
	Technologies []string  `json:"technologies"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is a SQLite-backed generation log
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// Open opens (creating if needed) the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history database: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS project_history (
		id TEXT PRIMARY KEY,
		project_name TEXT NOT NULL,
		project_path TEXT NOT NULL,
		template_name TEXT,
		technologies TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL,
		error TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_project_history_created ON project_history(created_at);
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records e, filling in ID and CreatedAt when unset
func (s *Store) Add(ctx context.Context, e Entry) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
	if e.Status == "" {
		e.Status = StatusSuccess
	}

	techs, err := json.Marshal(e.Technologies)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO project_history (id, project_name, project_path, template_name, technologies, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectName, e.ProjectPath, e.TemplateName, string(techs), e.Status, e.Error,
		e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("record generation: %w", err)
	}
	return &e, nil
}

// List returns the most recent entries first
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_name, project_path, COALESCE(template_name, ''), technologies, status, COALESCE(error, ''), created_at
		 FROM project_history ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			techs     string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.ProjectName, &e.ProjectPath, &e.TemplateName, &techs, &e.Status, &e.Error, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(techs), &e.Technologies); err != nil {
			return nil, fmt.Errorf("decode technologies of %s: %w", e.ID, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("decode created_at of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM project_history")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return result.RowsAffected()
}
