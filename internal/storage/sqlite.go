// Package storage provides SQLite-based persistence for per-run frame
// statistics. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionRecord summarizes one engine run: which backend presented, how
// many frames moved through the exchange, and how they moved.
type SessionRecord struct {
	ID              int64
	Backend         string
	FramesPresented int64
	FramesAccepted  int64
	FramesRejected  int64
	TakeTimeouts    int64
	AvgTakeWaitMs   float64
	DurationSecs    float64
	CreatedAt       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			backend TEXT NOT NULL,
			frames_presented INTEGER NOT NULL DEFAULT 0,
			frames_accepted INTEGER NOT NULL DEFAULT 0,
			frames_rejected INTEGER NOT NULL DEFAULT 0,
			take_timeouts INTEGER NOT NULL DEFAULT 0,
			avg_take_wait_ms REAL NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_backend ON sessions(backend);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records the summary of one finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (backend, frames_presented, frames_accepted, frames_rejected,
		  take_timeouts, avg_take_wait_ms, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Backend, rec.FramesPresented, rec.FramesAccepted, rec.FramesRejected,
		rec.TakeTimeouts, rec.AvgTakeWaitMs, rec.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the last N runs, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, backend, frames_presented, frames_accepted, frames_rejected,
		        take_timeouts, avg_take_wait_ms, duration_secs, created_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Backend, &r.FramesPresented, &r.FramesAccepted,
			&r.FramesRejected, &r.TakeTimeouts, &r.AvgTakeWaitMs, &r.DurationSecs,
			&createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// TotalFrames returns the number of frames presented across all recorded
// runs for the given backend. Empty backend sums everything.
func (s *Store) TotalFrames(backend string) (int64, error) {
	var total sql.NullInt64
	var err error
	if backend == "" {
		err = s.db.QueryRow("SELECT SUM(frames_presented) FROM sessions").Scan(&total)
	} else {
		err = s.db.QueryRow(
			"SELECT SUM(frames_presented) FROM sessions WHERE backend = ?",
			backend,
		).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot sum frames: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}
