// Package store persists visitor page views and trail session summaries
// in SQLite. IP addresses arrive already hashed; raw IPs never reach it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Visit is one tracked page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Session summarises one live trail connection.
type Session struct {
	ID        string    `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Moves     int64     `json:"moves"`
	Coalesced int64     `json:"coalesced"`
	Frames    int64     `json:"frames"`
	Accepted  int64     `json:"accepted"`
	Ignored   int64     `json:"ignored"`
}

func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

type Stats struct {
	TotalVisitors    int64     `json:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week"`
	TotalSessions    int64     `json:"total_sessions"`
	TotalMoves       int64     `json:"total_moves"`
	TotalWaves       int64     `json:"total_waves"`
	RecentVisitors   []Visit   `json:"recent_visitors"`
	RecentSessions   []Session `json:"recent_sessions"`
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			visited_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_visited_at ON visitors (visited_at)`,
		`CREATE TABLE IF NOT EXISTS trail_sessions (
			id TEXT PRIMARY KEY,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			coalesced INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			accepted INTEGER NOT NULL DEFAULT 0,
			ignored INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS trail_sessions_started_at ON trail_sessions (started_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// Timestamps are stored as unix milliseconds.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms) }
