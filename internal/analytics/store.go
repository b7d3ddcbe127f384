package analytics

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
	"edge.bartcommute.org/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	endpoint   TEXT    NOT NULL,
	timestamp  INTEGER NOT NULL,
	user_id    TEXT    NOT NULL,
	session_id TEXT    NOT NULL,
	method     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events (timestamp);
CREATE INDEX IF NOT EXISTS idx_events_endpoint ON events (endpoint);
`

// Store is the SQLite-backed analytics sink and the data source for the
// admin query surface.
type Store struct {
	DB *sql.DB
}

// NewStore opens (or creates) the events database at path. Use ":memory:"
// for tests.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create analytics schema: %w", err)
	}
	return &Store{DB: db}, nil
}

// Append inserts one event.
func (s *Store) Append(ctx context.Context, event models.AnalyticsEvent) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO events (endpoint, timestamp, user_id, session_id, method) VALUES (?, ?, ?, ?, ?)`,
		event.Endpoint, event.Timestamp, event.UserID, event.SessionID, string(event.Method),
	)
	if err != nil {
		return fmt.Errorf("append analytics event: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
