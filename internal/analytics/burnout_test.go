package analytics

import (
	"testing"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// mkDated builds a rated session deriving the day of week from the date.
func mkDated(date string, hour int, rating float64) session.Session {
	d, _ := time.Parse(session.DateLayout, date)
	return mkSession(date, hour, session.Weekday(d), session.PresetDeepWork, "Coding", rating)
}

func TestBurnout_InsufficientData(t *testing.T) {
	sessions := []session.Session{
		mkDated("2026-08-28", 9, 75),
		mkDated("2026-08-29", 9, 75),
	}

	result := NewBurnoutPredictor(sessions, testToday).Assess()

	if result.RiskLevel != "unknown" {
		t.Errorf("RiskLevel = %q, want unknown", result.RiskLevel)
	}
	if result.RiskScore != 0 {
		t.Errorf("RiskScore = %d, want 0", result.RiskScore)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if result.Message == "" {
		t.Error("insufficient-data assessment should carry a message")
	}
}

func TestBurnout_HealthyRhythm(t *testing.T) {
	// Two morning weekday sessions a day, flat ratings, short streak.
	var sessions []session.Session
	for _, date := range []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"} {
		sessions = append(sessions, mkDated(date, 9, 75), mkDated(date, 11, 75))
	}

	result := NewBurnoutPredictor(sessions, testToday).Assess()

	if result.RiskLevel != "low" {
		t.Errorf("RiskLevel = %q, want low", result.RiskLevel)
	}
	if result.RiskScore != 0 {
		t.Errorf("RiskScore = %d, want 0 for a stable rhythm", result.RiskScore)
	}
	if len(result.RiskFactors) != 0 {
		t.Errorf("expected no risk factors, got %v", result.RiskFactors)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0] != "Pokračujte v dobrém pracovním rytmu!" {
		t.Errorf("Recommendations = %v", result.Recommendations)
	}
}

func TestBurnout_HighRisk(t *testing.T) {
	var sessions []session.Session
	// Older week: one strong morning session per day.
	for day := 17; day <= 23; day++ {
		sessions = append(sessions, mkDated(dateAug(day), 9, 90))
	}
	// Recent week: four late-night sessions per day with weak ratings, no rest
	// day, weekends included.
	for day := 24; day <= 30; day++ {
		for i := 0; i < 4; i++ {
			sessions = append(sessions, mkDated(dateAug(day), 22, 50))
		}
	}

	result := NewBurnoutPredictor(sessions, testToday).Assess()

	if result.RiskScore <= 50 {
		t.Errorf("RiskScore = %d, want > 50", result.RiskScore)
	}
	if result.RiskLevel != "high" && result.RiskLevel != "critical" {
		t.Errorf("RiskLevel = %q, want high or critical", result.RiskLevel)
	}

	if len(result.RiskFactors) == 0 {
		t.Fatal("expected risk factors")
	}
	for i := 1; i < len(result.RiskFactors); i++ {
		if result.RiskFactors[i].Score > result.RiskFactors[i-1].Score {
			t.Error("risk factors must be sorted by score descending")
		}
	}

	byKey := make(map[string]RiskFactor)
	for _, f := range result.RiskFactors {
		byKey[f.Factor] = f
	}
	if f, ok := byKey["declining_productivity"]; !ok || f.Severity != "high" {
		t.Errorf("declining_productivity = %+v, want high severity", f)
	}
	if f, ok := byKey["night_sessions"]; !ok || f.Severity != "high" {
		t.Errorf("night_sessions = %+v, want high severity", f)
	}

	if len(result.Recommendations) == 0 || len(result.Recommendations) > 3 {
		t.Fatalf("Recommendations = %v, want 1-3 entries", result.Recommendations)
	}
	// The top factor's lead suggestion comes first.
	if result.Recommendations[0] != burnoutRecommendations[result.RiskFactors[0].Factor][0] {
		t.Errorf("first recommendation %q does not match top factor %s",
			result.Recommendations[0], result.RiskFactors[0].Factor)
	}
}

func TestBurnout_ScoreMonotonicInNightShare(t *testing.T) {
	// Ten weekday dates, two sessions a day, flat ratings. Moving sessions
	// from 10:00 to 22:00 changes only the night-work driver, so the total
	// score must never decrease as the night share grows, and must stay
	// within [0, 100] at every step.
	dates := []int{17, 18, 19, 20, 21, 24, 25, 26, 27, 28}

	prev := -1
	for night := 0; night <= 20; night++ {
		var sessions []session.Session
		for i := 0; i < 20; i++ {
			hour := 10
			if i < night {
				hour = 22
			}
			sessions = append(sessions, mkDated(dateAug(dates[i/2]), hour, 75))
		}

		result := NewBurnoutPredictor(sessions, testToday).Assess()

		if result.RiskScore < 0 || result.RiskScore > 100 {
			t.Fatalf("night=%d: RiskScore = %d, want within [0,100]", night, result.RiskScore)
		}
		if result.RiskScore < prev {
			t.Fatalf("night=%d: RiskScore = %d dropped below %d with more night work",
				night, result.RiskScore, prev)
		}
		prev = result.RiskScore
	}

	if prev == 0 {
		t.Error("all-night dataset should score above 0")
	}
}

func TestRiskLevel_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{25, "low"},
		{26, "medium"},
		{50, "medium"},
		{51, "high"},
		{75, "high"},
		{76, "critical"},
		{100, "critical"},
	}

	for _, tc := range tests {
		if got := riskLevel(tc.score); got != tc.want {
			t.Errorf("riskLevel(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestContinuousDays_Streak(t *testing.T) {
	var sessions []session.Session
	for day := 19; day <= 30; day++ { // 12 consecutive days
		sessions = append(sessions, mkDated(dateAug(day), 9, 75))
	}

	p := NewBurnoutPredictor(sessions, testToday)
	f := p.continuousDays()

	if f.value != 12 {
		t.Errorf("streak value = %v, want 12", f.value)
	}
	if f.score != 7 || f.severity != "medium" {
		t.Errorf("factor = %+v, want score 7 medium", f)
	}
}

func dateAug(day int) string {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC).Format(session.DateLayout)
}
