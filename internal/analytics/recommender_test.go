package analytics

import (
	"testing"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

func TestRecommend_NoData(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 15, 0, 0, time.UTC)
	rec := NewPresetRecommender(nil).Recommend(now, "")

	if rec.RecommendedPreset != session.PresetDeepWork {
		t.Errorf("expected time-of-day default deep_work at 9:00, got %s", rec.RecommendedPreset)
	}
	if rec.Confidence != 0.3 {
		t.Errorf("expected confidence 0.3 on no data, got %v", rec.Confidence)
	}
	if rec.CurrentTime != "09:15" {
		t.Errorf("CurrentTime = %q, want 09:15", rec.CurrentTime)
	}
	if rec.AllScores != nil {
		t.Errorf("no-data path should not carry scores, got %v", rec.AllScores)
	}
}

func TestRecommend_HourHistoryWins(t *testing.T) {
	sessions := []session.Session{
		mkSession("2026-08-25", 9, 1, session.PresetDeepWork, "Coding", 100),
		mkSession("2026-08-26", 9, 2, session.PresetDeepWork, "Coding", 100),
		mkSession("2026-08-27", 9, 3, session.PresetLearning, "Coding", 40),
	}

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	rec := NewPresetRecommender(sessions).Recommend(now, "")

	if rec.RecommendedPreset != session.PresetDeepWork {
		t.Errorf("expected deep_work, got %s", rec.RecommendedPreset)
	}
	// Perfect ratings in both the hour and overall tiers score 5.0/5.
	if got := rec.AllScores[session.PresetDeepWork]; got != 5.0 {
		t.Errorf("deep_work score = %v, want 5.0", got)
	}
	if rec.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", rec.Confidence)
	}
	// Presets without history score neutral.
	if got := rec.AllScores[session.PresetFlowMode]; got != 3.0 {
		t.Errorf("flow_mode score = %v, want neutral 3.0", got)
	}
	if rec.Alternative == rec.RecommendedPreset {
		t.Error("alternative must differ from the recommendation")
	}
}

func TestRecommend_CategoryTier(t *testing.T) {
	sessions := []session.Session{
		mkSession("2026-08-25", 14, 1, session.PresetLearning, "Learning", 100),
		mkSession("2026-08-26", 14, 2, session.PresetLearning, "Learning", 100),
		mkSession("2026-08-27", 14, 3, session.PresetDeepWork, "Coding", 60),
	}

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	rec := NewPresetRecommender(sessions).Recommend(now, "Learning")

	if rec.RecommendedPreset != session.PresetLearning {
		t.Errorf("expected learning for the Learning category, got %s", rec.RecommendedPreset)
	}
}

func TestPresetStats(t *testing.T) {
	sessions := []session.Session{
		mkSession("2026-08-25", 9, 1, session.PresetDeepWork, "Coding", 80),
		mkSession("2026-08-26", 15, 2, session.PresetDeepWork, "Writing", 100),
	}

	stats := NewPresetRecommender(sessions).Stats()

	dw, ok := stats[session.PresetDeepWork]
	if !ok {
		t.Fatal("expected deep_work stats")
	}
	if dw.AvgRating != 90 || dw.SessionCount != 2 {
		t.Errorf("deep_work stats = %+v, want avg 90 count 2", dw)
	}
	if dw.BestHour == nil || *dw.BestHour != 15 {
		t.Errorf("BestHour = %v, want 15", dw.BestHour)
	}
	if dw.BestCategory != "Writing" {
		t.Errorf("BestCategory = %q, want Writing", dw.BestCategory)
	}
	if _, ok := stats[session.PresetFlowMode]; ok {
		t.Error("presets without history should not appear in stats")
	}
}
