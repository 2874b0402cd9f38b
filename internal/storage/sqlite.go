// Package storage provides SQLite-based persistence for leaderboards and run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-eggs/internal/highscore"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Store is a leaderboard backend.
var _ highscore.Backend = (*Store)(nil)

// RunRecord is one finished run, qualifying for the leaderboard or not.
type RunRecord struct {
	ID        int64
	Title     string
	Score     int
	Level     int
	Duration  time.Duration
	CreatedAt time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			title TEXT NOT NULL,
			rank INTEGER NOT NULL,
			initials TEXT NOT NULL,
			score INTEGER NOT NULL,
			PRIMARY KEY (title, rank)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_title ON runs(title);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(title, score DESC);
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

// Load returns the stored leaderboard rows of a title in rank order.
func (s *Store) Load(title string) ([]highscore.Entry, error) {
	rows, err := s.db.Query(
		`SELECT initials, score FROM leaderboard WHERE title = ? ORDER BY rank`,
		title,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []highscore.Entry
	for rows.Next() {
		var e highscore.Entry
		if err := rows.Scan(&e.Initials, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Save replaces a title's leaderboard in one transaction.
func (s *Store) Save(title string, entries []highscore.Entry) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec("DELETE FROM leaderboard WHERE title = ?", title); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	for rank, e := range entries {
		if _, err = tx.Exec(
			"INSERT INTO leaderboard (title, rank, initials, score) VALUES (?, ?, ?, ?)",
			title, rank, e.Initials, e.Score,
		); err != nil {
			return fmt.Errorf("storage: cannot save leaderboard row: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit leaderboard: %w", err)
	}
	return nil
}

// RecordRun appends a finished run to the history.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(title string, score, level int, d time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (title, score, level, duration_ms) VALUES (?, ?, ?, ?)",
		title, score, level, d.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns returns the latest runs of a title, newest first.
func (s *Store) RecentRuns(title string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, title, score, level, duration_ms, created_at
		 FROM runs
		 WHERE title = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		title, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Title, &r.Score, &r.Level, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the best run score of a title, 0 when none exist.
func (s *Store) HighScore(title string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE title = ?",
		title,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Clear deletes a title's leaderboard and run history.
func (s *Store) Clear(title string) error {
	if _, err := s.db.Exec("DELETE FROM leaderboard WHERE title = ?", title); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE title = ?", title); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a title.
type GameStats struct {
	Title      string
	RunsCount  int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	TotalTime  time.Duration
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific title.
func (s *Store) GetGameStats(title string) (*GameStats, error) {
	stats := &GameStats{Title: title}

	var totalMs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs WHERE title = ?`,
		title,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.BestLevel, &stats.AvgScore, &totalMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMs) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE title = ? ORDER BY id DESC LIMIT 1`,
		title,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
