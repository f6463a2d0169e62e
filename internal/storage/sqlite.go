// Package storage provides SQLite-based persistence for play session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Platforms a session can be recorded from.
const (
	PlatformTerminal = "terminal"
	PlatformWindow   = "window"
	PlatformSSH      = "ssh"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished run of a game.
type SessionRecord struct {
	ID         int64
	GameID     string
	Platform   string
	User       string
	Ticks      int
	Overruns   int
	ShotsFired int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Totals aggregates every recorded session of one game.
type Totals struct {
	GameID     string
	Sessions   int
	Ticks      int
	Overruns   int
	ShotsFired int64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			overruns INTEGER NOT NULL DEFAULT 0,
			shots_fired INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
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

// SaveSession records a finished run and returns its row ID.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	if rec.GameID == "" {
		return 0, errors.New("storage: session has no game id")
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, platform, username, ticks, overruns, shots_fired, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Platform, rec.User,
		rec.Ticks, rec.Overruns, rec.ShotsFired, rec.Duration.Milliseconds(),
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

// RecentSessions returns the latest sessions of a game, newest first.
// An empty gameID selects every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, platform, username, ticks, overruns, shots_fired, duration_ms, created_at
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			rec        SessionRecord
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.Platform, &rec.User,
			&rec.Ticks, &rec.Overruns, &rec.ShotsFired, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// GameTotals aggregates all sessions of a game. A game with no sessions
// yields zero totals and no error.
func (s *Store) GameTotals(gameID string) (*Totals, error) {
	totals := &Totals{GameID: gameID}

	var durationMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(overruns), 0),
		        COALESCE(SUM(shots_fired), 0), COALESCE(SUM(duration_ms), 0)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&totals.Sessions, &totals.Ticks, &totals.Overruns, &totals.ShotsFired, &durationMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session totals: %w", err)
	}
	totals.PlayTime = time.Duration(durationMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		totals.LastPlayed = parseTime(lastPlayed)
	}

	return totals, nil
}

// ClearSessions deletes all sessions of the given game.
func (s *Store) ClearSessions(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles both driver-decoded times and raw DATETIME strings.
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
