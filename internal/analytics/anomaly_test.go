package analytics

import (
	"fmt"
	"testing"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

func TestAnomalyDetect_InsufficientData(t *testing.T) {
	sessions := []session.Session{
		mkDated("2026-08-29", 9, 75),
		mkDated("2026-08-30", 9, 75),
	}

	report := NewAnomalyDetector(sessions, testToday).Detect()

	if report.OverallStatus != "insufficient_data" {
		t.Errorf("OverallStatus = %q, want insufficient_data", report.OverallStatus)
	}
	if report.Message != fmt.Sprintf("Potrebuji alespon %d dni dat pro analyzu", minAnomalyDays) {
		t.Errorf("Message = %q", report.Message)
	}
	if report.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", report.Confidence)
	}
	if report.UniqueDays != 2 {
		t.Errorf("UniqueDays = %d, want 2", report.UniqueDays)
	}
}

func TestAnomalyDetect_Healthy(t *testing.T) {
	// Fourteen identical days: same hours, same rating, same category.
	var sessions []session.Session
	for day := 17; day <= 30; day++ {
		for _, hour := range []int{9, 11, 14} {
			sessions = append(sessions, mkDated(dateAug(day), hour, 75))
		}
	}

	report := NewAnomalyDetector(sessions, testToday).Detect()

	if report.OverallStatus != "healthy" {
		t.Fatalf("OverallStatus = %q, want healthy (anomalies: %v)", report.OverallStatus, report.Anomalies)
	}
	if report.AnomaliesDetected != 0 {
		t.Errorf("AnomaliesDetected = %d, want 0", report.AnomaliesDetected)
	}
	if len(report.ProactiveTips) != 1 || report.ProactiveTips[0].Type != "positive" {
		t.Errorf("ProactiveTips = %v, want one positive tip", report.ProactiveTips)
	}

	if report.BaselineSummary == nil {
		t.Fatal("expected baseline summary")
	}
	if report.BaselineSummary.AvgProductivity != 75 {
		t.Errorf("baseline AvgProductivity = %v, want 75", report.BaselineSummary.AvgProductivity)
	}
	if report.BaselineSummary.TopCategory != "Coding" {
		t.Errorf("baseline TopCategory = %q, want Coding", report.BaselineSummary.TopCategory)
	}
	// Today has no session yet, so the streak counts back from yesterday.
	if report.BaselineSummary.CurrentStreak != 14 {
		t.Errorf("CurrentStreak = %d, want 14", report.BaselineSummary.CurrentStreak)
	}

	if report.Patterns == nil || report.Patterns.ProductivityTrend != "stable" {
		t.Errorf("Patterns = %+v, want stable trend", report.Patterns)
	}
	if report.Patterns.WorkIntensity != "normal" {
		t.Errorf("WorkIntensity = %q, want normal", report.Patterns.WorkIntensity)
	}
	if report.Confidence <= 0 || report.Confidence > 0.9 {
		t.Errorf("Confidence = %v, want within (0, 0.9]", report.Confidence)
	}
}

func TestAnomalyDetect_ProductivityDrop(t *testing.T) {
	var sessions []session.Session
	for day := 17; day <= 27; day++ {
		sessions = append(sessions, mkDated(dateAug(day), 9, 82), mkDated(dateAug(day), 11, 82))
	}
	// Last three days collapse.
	for _, date := range []string{"2026-08-29", "2026-08-30"} {
		sessions = append(sessions, mkDated(date, 9, 45), mkDated(date, 11, 45))
	}

	report := NewAnomalyDetector(sessions, testToday).Detect()

	var drop *Anomaly
	for i := range report.Anomalies {
		if report.Anomalies[i].Type == "productivity_drop" {
			drop = &report.Anomalies[i]
		}
	}
	if drop == nil {
		t.Fatalf("expected a productivity_drop anomaly, got %v", report.Anomalies)
	}
	if drop.ZScore == nil || *drop.ZScore >= -zLow {
		t.Errorf("ZScore = %v, want below -%v", drop.ZScore, zLow)
	}
	if drop.CurrentValue == nil || *drop.CurrentValue != 45 {
		t.Errorf("CurrentValue = %v, want 45", drop.CurrentValue)
	}
	if drop.Recommendation == "" || drop.Icon == "" {
		t.Error("anomaly should carry a recommendation and icon")
	}
	if report.OverallStatus == "healthy" {
		t.Errorf("OverallStatus = %q, want degraded", report.OverallStatus)
	}
	if len(report.ProactiveTips) == 0 || len(report.ProactiveTips) > 3 {
		t.Errorf("ProactiveTips = %v, want 1-3 entries", report.ProactiveTips)
	}
}

func TestStreakBreak(t *testing.T) {
	// Ten-day streak, then a 3-day gap ending two days ago.
	var sessions []session.Session
	for day := 16; day <= 25; day++ {
		sessions = append(sessions, mkDated(dateAug(day), 9, 75))
	}
	sessions = append(sessions, mkDated("2026-08-29", 9, 75), mkDated("2026-08-30", 9, 75))

	d := NewAnomalyDetector(sessions, testToday)
	a := d.streakBreak()

	if a == nil {
		t.Fatal("expected a streak_break anomaly")
	}
	if a.StreakDays != 10 {
		t.Errorf("StreakDays = %d, want 10", a.StreakDays)
	}
	if a.GapDays != 3 {
		t.Errorf("GapDays = %d, want 3 (the actual gap length)", a.GapDays)
	}
	if a.Severity != "medium" {
		t.Errorf("Severity = %q, want medium for a 10-day streak", a.Severity)
	}
	if a.Evidence.GapStart != "2026-08-26" {
		t.Errorf("GapStart = %q, want 2026-08-26", a.Evidence.GapStart)
	}
}

func TestSeverityFromZ(t *testing.T) {
	tests := []struct {
		z    float64
		want string
	}{
		{0.5, ""},
		{1.5, "low"},
		{-1.8, "low"},
		{2.0, "medium"},
		{2.5, "high"},
		{-3.2, "critical"},
	}

	for _, tc := range tests {
		if got := severityFromZ(tc.z); got != tc.want {
			t.Errorf("severityFromZ(%v) = %q, want %q", tc.z, got, tc.want)
		}
	}
}

func TestHourIQR_Empty(t *testing.T) {
	got := hourIQR(nil)
	if got.Q1 != 8 || got.Q3 != 18 || got.Min != 6 || got.Max != 22 || got.Median != 13 {
		t.Errorf("hourIQR(nil) = %+v, want the fixed default window", got)
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		severities []string
		want       string
	}{
		{nil, "healthy"},
		{[]string{"low"}, "info"},
		{[]string{"low", "medium"}, "warning"},
		{[]string{"medium", "high"}, "alert"},
		{[]string{"high", "critical"}, "critical"},
	}

	for _, tc := range tests {
		anomalies := make([]Anomaly, len(tc.severities))
		for i, s := range tc.severities {
			anomalies[i] = Anomaly{Severity: s}
		}
		if got := overallStatus(anomalies); got != tc.want {
			t.Errorf("overallStatus(%v) = %q, want %q", tc.severities, got, tc.want)
		}
	}
}
