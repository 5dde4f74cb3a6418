// Package session defines the work-session record and preset model shared by
// the store, the analytics package, and the CLI.
package session

import "time"

// DateLayout is the calendar-date format used throughout the session log.
const DateLayout = "2006-01-02"

// Session is one logged work interval. Records are read-only to the
// analytics layer; ratings are stored as logged (legacy 1-5 or canonical
// 0-100) and normalized exactly once by the consumer.
type Session struct {
	// Date is the calendar date the session started (YYYY-MM-DD).
	Date string `json:"date"`

	// Hour is the local hour the session started (0-23).
	Hour int `json:"hour"`

	// DayOfWeek is 0 (Monday) through 6 (Sunday).
	DayOfWeek int `json:"day_of_week"`

	// Preset is the work-mode preset used for the session.
	Preset Preset `json:"preset"`

	// Category is a free-form label such as "Coding" or "Learning".
	Category string `json:"category"`

	// Task is an optional short description of what was worked on.
	Task string `json:"task,omitempty"`

	// Notes is optional free text attached by the user.
	Notes string `json:"notes,omitempty"`

	// DurationMinutes is the logged session length.
	DurationMinutes int `json:"duration_minutes"`

	// Completed reports whether the session ran to completion.
	Completed bool `json:"completed"`

	// ProductivityRating is the user's self-reported rating, nil when the
	// session was not rated. Values in [1,5] are legacy scale; values above
	// 5 are already on the canonical 0-100 scale.
	ProductivityRating *float64 `json:"productivity_rating,omitempty"`

	// CreatedAt is the full timestamp the record was written, used only as
	// a fallback source for Date.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Day returns the session's calendar date. When the Date field is missing or
// unparseable it falls back to CreatedAt; ok is false when neither source
// yields a date.
func (s Session) Day() (time.Time, bool) {
	if s.Date != "" {
		if d, err := time.Parse(DateLayout, s.Date); err == nil {
			return d, true
		}
	}
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt.Truncate(24 * time.Hour), true
	}
	return time.Time{}, false
}

// DateString returns the YYYY-MM-DD date for the session, resolving the
// CreatedAt fallback. Empty when no date source is present.
func (s Session) DateString() string {
	if s.Date != "" {
		if _, err := time.Parse(DateLayout, s.Date); err == nil {
			return s.Date
		}
	}
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt.Format(DateLayout)
	}
	return ""
}

// Rated reports whether the session carries a productivity rating.
func (s Session) Rated() bool {
	return s.ProductivityRating != nil
}

// Rating returns the session's productivity rating on the canonical 0-100
// scale. ok is false for unrated sessions.
func (s Session) Rating() (float64, bool) {
	if s.ProductivityRating == nil {
		return 0, false
	}
	return NormalizeRating(*s.ProductivityRating), true
}

// NormalizeRating maps a raw rating value to the canonical 0-100 scale.
// Values in [1,5] are legacy and multiply by 20; everything else passes
// through. Callers must normalize exactly once: applying this twice to a
// legacy value double-scales it.
func NormalizeRating(v float64) float64 {
	if v >= 1 && v <= 5 {
		return v * 20
	}
	return v
}

// DayNames are English weekday names indexed by DayOfWeek (0 = Monday).
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the English weekday name for a 0-6 day index, clamping
// out-of-range values.
func DayName(day int) string {
	if day < 0 {
		day = 0
	}
	if day > 6 {
		day = 6
	}
	return DayNames[day]
}

// Weekday converts a time.Weekday (Sunday = 0) to the session log's
// Monday-first 0-6 index.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
