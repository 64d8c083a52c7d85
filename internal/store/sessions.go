package store

import (
	"context"
	"fmt"
	"time"
)

func (s *Store) RecordSession(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trail_sessions
			(id, hashed_ip, user_agent, started_at, ended_at, moves, coalesced, frames, accepted, ignored)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.HashedIP, sess.UserAgent, toMillis(sess.StartedAt), toMillis(sess.EndedAt),
		sess.Moves, sess.Coalesced, sess.Frames, sess.Accepted, sess.Ignored)
	if err != nil {
		return fmt.Errorf("store: record session %s: %w", sess.ID, err)
	}
	return nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), started_at, ended_at,
			moves, coalesced, frames, accepted, ignored
		FROM trail_sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started, ended int64
		err := rows.Scan(&sess.ID, &sess.HashedIP, &sess.UserAgent, &started, &ended,
			&sess.Moves, &sess.Coalesced, &sess.Frames, &sess.Accepted, &sess.Ignored)
		if err != nil {
			return nil, fmt.Errorf("store: scan session: %w", err)
		}
		sess.StartedAt = fromMillis(started)
		sess.EndedAt = fromMillis(ended)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes one session and reports whether it existed.
func (s *Store) DeleteSession(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trail_sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("store: delete session %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Stats aggregates visitor and session counts as of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	week := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{toMillis(today)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{toMillis(week)}},
		{&stats.TotalSessions, `SELECT COUNT(*) FROM trail_sessions`, nil},
		{&stats.TotalMoves, `SELECT COALESCE(SUM(moves), 0) FROM trail_sessions`, nil},
		{&stats.TotalWaves, `SELECT COALESCE(SUM(accepted), 0) FROM trail_sessions`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("store: stats: %w", err)
		}
	}

	var err error
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentSessions, err = s.RecentSessions(ctx, 20); err != nil {
		return nil, err
	}
	return stats, nil
}
