package store

import (
	"testing"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndAllSessions(t *testing.T) {
	db := openTestDB(t)

	rating := 80.0
	s := session.Session{
		Date:               "2026-08-31",
		Hour:               9,
		DayOfWeek:          0,
		Preset:             session.PresetDeepWork,
		Category:           "Coding",
		Task:               "refactor store",
		Notes:              "focused",
		DurationMinutes:    52,
		Completed:          true,
		ProductivityRating: &rating,
		CreatedAt:          time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}

	id, err := db.InsertSession(&s)
	if err != nil {
		t.Fatalf("InsertSession: %v", err)
	}
	if id != 1 {
		t.Errorf("first insert id = %d, want 1", id)
	}

	got, err := db.AllSessions()
	if err != nil {
		t.Fatalf("AllSessions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 session, got %d", len(got))
	}

	round := got[0]
	if round.Date != s.Date || round.Hour != s.Hour || round.Preset != s.Preset {
		t.Errorf("roundtrip mismatch: %+v", round)
	}
	if round.Task != "refactor store" || round.Notes != "focused" {
		t.Errorf("text fields mismatch: %+v", round)
	}
	if round.ProductivityRating == nil || *round.ProductivityRating != 80 {
		t.Errorf("rating = %v, want 80", round.ProductivityRating)
	}
	if !round.Completed {
		t.Error("completed flag lost")
	}
	if !round.CreatedAt.Equal(s.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", round.CreatedAt, s.CreatedAt)
	}
}

func TestInsertSession_NullRating(t *testing.T) {
	db := openTestDB(t)

	s := session.Session{Date: "2026-08-31", Hour: 9, Preset: session.PresetQuickTasks}
	if _, err := db.InsertSession(&s); err != nil {
		t.Fatalf("InsertSession: %v", err)
	}

	got, err := db.AllSessions()
	if err != nil {
		t.Fatalf("AllSessions: %v", err)
	}
	if got[0].ProductivityRating != nil {
		t.Errorf("unrated session came back with rating %v", *got[0].ProductivityRating)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("insert should default created_at to now")
	}
}

func TestSessionsInRange_Inclusive(t *testing.T) {
	db := openTestDB(t)

	for _, date := range []string{"2026-08-28", "2026-08-29", "2026-08-30", "2026-08-31"} {
		s := session.Session{Date: date, Hour: 9, Preset: session.PresetDeepWork}
		if _, err := db.InsertSession(&s); err != nil {
			t.Fatalf("InsertSession: %v", err)
		}
	}

	got, err := db.SessionsInRange("2026-08-29", "2026-08-30")
	if err != nil {
		t.Fatalf("SessionsInRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].Date != "2026-08-29" || got[1].Date != "2026-08-30" {
		t.Errorf("range order = %s, %s", got[0].Date, got[1].Date)
	}
}

func TestRecentSessions_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	fixtures := []struct {
		date string
		hour int
	}{
		{"2026-08-30", 9},
		{"2026-08-31", 9},
		{"2026-08-31", 14},
	}
	for _, f := range fixtures {
		s := session.Session{Date: f.date, Hour: f.hour, Preset: session.PresetDeepWork}
		if _, err := db.InsertSession(&s); err != nil {
			t.Fatalf("InsertSession: %v", err)
		}
	}

	got, err := db.RecentSessions(2)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].Hour != 14 || got[1].Hour != 9 {
		t.Errorf("order = hour %d, hour %d, want 14 then 9", got[0].Hour, got[1].Hour)
	}
	if got[0].Date != "2026-08-31" {
		t.Errorf("newest date = %s, want 2026-08-31", got[0].Date)
	}
}

func TestCountSessions(t *testing.T) {
	db := openTestDB(t)

	if count, err := db.CountSessions(); err != nil || count != 0 {
		t.Fatalf("CountSessions on empty db = %d, %v", count, err)
	}

	for i := 0; i < 3; i++ {
		s := session.Session{Date: "2026-08-31", Hour: 9 + i, Preset: session.PresetDeepWork}
		if _, err := db.InsertSession(&s); err != nil {
			t.Fatalf("InsertSession: %v", err)
		}
	}

	count, err := db.CountSessions()
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if count != 3 {
		t.Errorf("CountSessions = %d, want 3", count)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
