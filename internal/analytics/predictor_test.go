package analytics

import (
	"testing"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

func TestPredictToday_NoData(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	pred := NewSessionPredictor(nil).PredictToday(now)

	if pred.PredictedSessions != defaultSessionsPerDay {
		t.Errorf("PredictedSessions = %d, want %d", pred.PredictedSessions, defaultSessionsPerDay)
	}
	if pred.PredictedProductivity != neutralProductivity {
		t.Errorf("PredictedProductivity = %v, want %v", pred.PredictedProductivity, neutralProductivity)
	}
	if pred.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", pred.Confidence)
	}
	if pred.RemainingSessions != defaultSessionsPerDay {
		t.Errorf("RemainingSessions = %d, want %d", pred.RemainingSessions, defaultSessionsPerDay)
	}
}

func TestPredictToday_MondayAverage(t *testing.T) {
	// 2026-08-17 and 2026-08-24 are Mondays: 4 and 6 sessions average to 5.
	var sessions []session.Session
	for i := 0; i < 4; i++ {
		sessions = append(sessions, mkSession("2026-08-17", 9+i, 0, session.PresetDeepWork, "Coding", 80))
	}
	for i := 0; i < 6; i++ {
		sessions = append(sessions, mkSession("2026-08-24", 9+i, 0, session.PresetDeepWork, "Coding", 60))
	}

	now := time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC) // also a Monday
	pred := NewSessionPredictor(sessions).PredictToday(now)

	if pred.PredictedSessions != 5 {
		t.Errorf("PredictedSessions = %d, want 5", pred.PredictedSessions)
	}
	if pred.CompletedSessions != 0 {
		t.Errorf("CompletedSessions = %d, want 0", pred.CompletedSessions)
	}
	if pred.PredictedProductivity != 68 {
		t.Errorf("PredictedProductivity = %v, want 68 (mean of Monday ratings)", pred.PredictedProductivity)
	}
}

func TestPredictWeek(t *testing.T) {
	sessions := []session.Session{
		mkSession("2026-08-24", 9, 0, session.PresetDeepWork, "Coding", 80),
		mkSession("2026-08-24", 11, 0, session.PresetDeepWork, "Coding", 80),
	}

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	week := NewSessionPredictor(sessions).PredictWeek(today)

	if len(week.Predictions) != 7 {
		t.Fatalf("expected 7 day predictions, got %d", len(week.Predictions))
	}
	if week.Predictions[0].DayName != "Monday" {
		t.Errorf("first day = %q, want Monday", week.Predictions[0].DayName)
	}
	if week.Predictions[0].Date != "2026-08-31" {
		t.Errorf("first date = %q, want 2026-08-31", week.Predictions[0].Date)
	}
	if week.TotalPredictedSessions <= 0 {
		t.Errorf("TotalPredictedSessions = %d, want positive", week.TotalPredictedSessions)
	}
}

func TestSampleConfidence(t *testing.T) {
	tests := []struct {
		total int
		want  float64
	}{
		{0, 0.3},
		{9, 0.3},
		{10, 0.5},
		{29, 0.5},
		{30, 0.7},
		{99, 0.7},
		{100, 0.85},
	}

	for _, tc := range tests {
		if got := sampleConfidence(tc.total); got != tc.want {
			t.Errorf("sampleConfidence(%d) = %v, want %v", tc.total, got, tc.want)
		}
	}
}

func TestTrends_InsufficientData(t *testing.T) {
	sessions := []session.Session{
		mkSession("2026-08-30", 9, 6, session.PresetDeepWork, "Coding", 80),
	}

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	report := NewSessionPredictor(sessions).Trends(today, 30)

	if report.ProductivityTrend != "insufficient_data" {
		t.Errorf("ProductivityTrend = %q, want insufficient_data", report.ProductivityTrend)
	}
	if report.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", report.TotalSessions)
	}
}

func TestTrends_Improving(t *testing.T) {
	sessions := []session.Session{
		mkSession("2026-08-10", 9, 0, session.PresetDeepWork, "Coding", 50),
		mkSession("2026-08-11", 9, 1, session.PresetDeepWork, "Coding", 50),
		mkSession("2026-08-12", 9, 2, session.PresetDeepWork, "Coding", 50),
		mkSession("2026-08-27", 9, 3, session.PresetDeepWork, "Coding", 80),
		mkSession("2026-08-28", 9, 4, session.PresetDeepWork, "Coding", 80),
		mkSession("2026-08-29", 9, 5, session.PresetDeepWork, "Coding", 80),
	}

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	report := NewSessionPredictor(sessions).Trends(today, 30)

	if report.ProductivityTrend != "improving" {
		t.Errorf("ProductivityTrend = %q, want improving", report.ProductivityTrend)
	}
	if report.AvgProductivity != 65 {
		t.Errorf("AvgProductivity = %v, want 65", report.AvgProductivity)
	}
}

func TestEnergyForecast(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{9, "high"},
		{12, "low"},
		{13, "low"},
		{14, "moderate"},
		{16, "declining"},
		{7, "moderate"},
	}

	for _, tc := range tests {
		if got := energyForecast(tc.hour).Level; got != tc.want {
			t.Errorf("energyForecast(%d).Level = %q, want %q", tc.hour, got, tc.want)
		}
	}
}
