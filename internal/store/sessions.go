package store

import (
	"database/sql"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// InsertSession inserts a work session record and returns its ID.
func (db *DB) InsertSession(s *session.Session) (int64, error) {
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := db.conn.Exec(
		`INSERT INTO sessions
		(date, hour, day_of_week, preset, category, task, notes,
		 duration_minutes, completed, productivity_rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Date, s.Hour, s.DayOfWeek, string(s.Preset), s.Category, s.Task, s.Notes,
		s.DurationMinutes, s.Completed, s.ProductivityRating,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// SessionsInRange returns sessions with date between from and to inclusive,
// oldest first. Dates use the YYYY-MM-DD layout.
func (db *DB) SessionsInRange(from, to string) ([]session.Session, error) {
	rows, err := db.conn.Query(
		`SELECT date, hour, day_of_week, preset, category, task, notes,
		 duration_minutes, completed, productivity_rating, created_at
		 FROM sessions WHERE date >= ? AND date <= ?
		 ORDER BY date, hour, id`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

// AllSessions returns the full session log, oldest first.
func (db *DB) AllSessions() ([]session.Session, error) {
	rows, err := db.conn.Query(
		`SELECT date, hour, day_of_week, preset, category, task, notes,
		 duration_minutes, completed, productivity_rating, created_at
		 FROM sessions ORDER BY date, hour, id`,
	)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

// RecentSessions returns the newest n sessions, newest first.
func (db *DB) RecentSessions(n int) ([]session.Session, error) {
	rows, err := db.conn.Query(
		`SELECT date, hour, day_of_week, preset, category, task, notes,
		 duration_minutes, completed, productivity_rating, created_at
		 FROM sessions ORDER BY date DESC, hour DESC, id DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

// CountSessions returns the total number of logged sessions.
func (db *DB) CountSessions() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}

func scanSessions(rows *sql.Rows) ([]session.Session, error) {
	defer func() { _ = rows.Close() }()

	var sessions []session.Session
	for rows.Next() {
		var s session.Session
		var preset string
		var category, task, notes sql.NullString
		var rating sql.NullFloat64
		var createdAt string
		if err := rows.Scan(
			&s.Date, &s.Hour, &s.DayOfWeek, &preset, &category, &task, &notes,
			&s.DurationMinutes, &s.Completed, &rating, &createdAt,
		); err != nil {
			return nil, err
		}
		s.Preset = session.Preset(preset)
		s.Category = category.String
		s.Task = task.String
		s.Notes = notes.String
		if rating.Valid {
			s.ProductivityRating = &rating.Float64
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
