// Package progressdb persists per-topic completion flags in a small
// SQLite database under the XDG state directory. It is a best-effort
// subsystem: open and load failures degrade to in-memory progress and
// never abort the presentation.
package progressdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iotsyslab/coursedeck/pkg/model"
)

// Store wraps the progress database. A nil *Store is valid and behaves
// as a no-op, so callers can hold one unconditionally.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the progress database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open progress database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			topic_id   TEXT PRIMARY KEY,
			completed  INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the saved progress. Rows for topics no longer in the
// course are kept in the map; the UI simply ignores unknown IDs.
func (s *Store) Load() (model.Progress, error) {
	progress := make(model.Progress)
	if s == nil || s.db == nil {
		return progress, nil
	}

	rows, err := s.db.Query(`SELECT topic_id, completed FROM progress`)
	if err != nil {
		return progress, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var completed int
		if err := rows.Scan(&id, &completed); err != nil {
			continue
		}
		progress[id] = completed != 0
	}
	if err := rows.Err(); err != nil {
		return progress, fmt.Errorf("iterating progress: %w", err)
	}
	return progress, nil
}

// SetCompleted upserts one topic's flag.
func (s *Store) SetCompleted(topicID string, completed bool) error {
	if s == nil || s.db == nil {
		return nil
	}
	done := 0
	if completed {
		done = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO progress (topic_id, completed, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(topic_id) DO UPDATE SET
			completed = excluded.completed,
			updated_at = excluded.updated_at
	`, topicID, done, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save progress for %s: %w", topicID, err)
	}
	return nil
}

// Reset clears all saved progress.
func (s *Store) Reset() error {
	if s == nil || s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM progress`); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
