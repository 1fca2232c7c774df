package playback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrResumeNotFound is returned when no position was saved for a movie.
var ErrResumeNotFound = errors.New("no resume point")

// ResumePoint is where a movie was left. Duration is 0 when the transport
// did not know the movie length.
type ResumePoint struct {
	Position time.Duration
	Duration time.Duration
}

// ResumeStore persists resume points in SQLite, keyed by movie path.
type ResumeStore struct {
	db *sql.DB
}

// OpenResumeStore opens or creates the database at dbPath.
func OpenResumeStore(dbPath string) (*ResumeStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create resume directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume database: %w", err)
	}
	db.SetMaxOpenConns(1)

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS resume_points (
			path TEXT PRIMARY KEY,
			position_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT -1,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create resume table: %w", err)
	}

	return &ResumeStore{db: db}, nil
}

// Get returns the saved point for path, or ErrResumeNotFound.
func (s *ResumeStore) Get(ctx context.Context, path string) (ResumePoint, error) {
	var posMS, durMS int64
	err := s.db.QueryRowContext(ctx,
		"SELECT position_ms, duration_ms FROM resume_points WHERE path = ?",
		path,
	).Scan(&posMS, &durMS)
	if errors.Is(err, sql.ErrNoRows) {
		return ResumePoint{}, ErrResumeNotFound
	}
	if err != nil {
		return ResumePoint{}, fmt.Errorf("failed to read resume point: %w", err)
	}

	p := ResumePoint{Position: time.Duration(posMS) * time.Millisecond}
	if durMS > 0 {
		p.Duration = time.Duration(durMS) * time.Millisecond
	}
	return p, nil
}

// Save stores the point for path, replacing any previous one.
func (s *ResumeStore) Save(ctx context.Context, path string, p ResumePoint) error {
	durMS := int64(-1)
	if p.Duration > 0 {
		durMS = p.Duration.Milliseconds()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO resume_points (path, position_ms, duration_ms, updated_at)
		 VALUES (?, ?, ?, ?)`,
		path, p.Position.Milliseconds(), durMS, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save resume point: %w", err)
	}
	return nil
}

// Clear forgets the point for path.
func (s *ResumeStore) Clear(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM resume_points WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to clear resume point: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *ResumeStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
