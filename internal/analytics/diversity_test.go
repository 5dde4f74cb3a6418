package analytics

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// mkNoted builds a session with a category and free-text notes.
func mkNoted(date string, hour int, category, notes string) session.Session {
	s := mkDated(date, hour, 75)
	s.Category = category
	s.Notes = notes
	return s
}

func TestDiversity_NoData(t *testing.T) {
	d := NewDiversityDetector(nil)
	report := d.Detect(nil, testToday, 2, 0.70)

	if report.Reasoning != "Insufficient data for analysis (need sessions from last 2 days)" {
		t.Errorf("Reasoning = %q", report.Reasoning)
	}
	if report.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", report.Confidence)
	}
	want := []string{"Job Hunting", "Skill Building", "Learning"}
	if len(report.RecommendedAlternatives) != 3 {
		t.Fatalf("RecommendedAlternatives = %v, want 3 entries", report.RecommendedAlternatives)
	}
	for i, cat := range want {
		if report.RecommendedAlternatives[i] != cat {
			t.Errorf("alternative[%d] = %q, want %q", i, report.RecommendedAlternatives[i], cat)
		}
	}
}

func TestDiversity_CategoryOverload(t *testing.T) {
	sessions := []session.Session{
		mkNoted("2026-08-30", 9, "Coding", ""),
		mkNoted("2026-08-30", 10, "Learning", ""),
		mkNoted("2026-08-30", 11, "Coding", ""),
		mkNoted("2026-08-31", 9, "Coding", ""),
		mkNoted("2026-08-31", 11, "Coding", ""),
	}

	d := NewDiversityDetector(nil)
	report := d.Detect(sessions, testToday, 2, 0.70)

	if len(report.AvoidCategories) != 1 || report.AvoidCategories[0] != "Coding" {
		t.Fatalf("AvoidCategories = %v, want [Coding]", report.AvoidCategories)
	}
	if report.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", report.Confidence)
	}
	if !strings.Contains(report.Reasoning, "Detekován category burnout") {
		t.Errorf("Reasoning = %q", report.Reasoning)
	}
	if !strings.Contains(report.OverloadReason, "4/5 sessions na Coding (80%)") {
		t.Errorf("OverloadReason = %q", report.OverloadReason)
	}
	// Coding is excluded from alternatives.
	for _, alt := range report.RecommendedAlternatives {
		if alt == "Coding" {
			t.Error("alternatives must not include the overloaded category")
		}
	}
	if report.CategoryDistribution["Coding"] != 4 {
		t.Errorf("CategoryDistribution = %v", report.CategoryDistribution)
	}
}

func TestDiversity_ConsecutiveRepeats(t *testing.T) {
	sessions := []session.Session{
		mkNoted("2026-08-30", 9, "Coding", ""),
		mkNoted("2026-08-30", 10, "Coding", ""),
		mkNoted("2026-08-30", 11, "Coding", ""),
		mkNoted("2026-08-31", 9, "Learning", ""),
		mkNoted("2026-08-31", 10, "Database", ""),
		mkNoted("2026-08-31", 11, "Job Hunting", ""),
		mkNoted("2026-08-31", 12, "Skill Building", ""),
	}

	d := NewDiversityDetector(nil)
	report := d.Detect(sessions, testToday, 2, 0.70)

	if len(report.AvoidCategories) != 1 || report.AvoidCategories[0] != "Coding" {
		t.Fatalf("AvoidCategories = %v, want [Coding]", report.AvoidCategories)
	}
	if !strings.Contains(report.Reasoning, "Consecutive repeats: Coding 3x v řadě") {
		t.Errorf("Reasoning = %q", report.Reasoning)
	}
}

func TestDiversity_TopicBurnout(t *testing.T) {
	sessions := []session.Session{
		mkNoted("2026-08-30", 9, "Coding", "Working on react app"),
		mkNoted("2026-08-30", 10, "Learning", "more react debugging"),
		mkNoted("2026-08-31", 9, "Coding", "react tests"),
		mkNoted("2026-08-31", 10, "Learning", ""),
	}

	d := NewDiversityDetector(nil)
	report := d.Detect(sessions, testToday, 2, 0.70)

	if !strings.Contains(report.Reasoning, "Topic burnout: 'react' se opakuje") {
		t.Errorf("Reasoning = %q", report.Reasoning)
	}
	if report.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", report.Confidence)
	}
}

func TestDiversity_NoOverload(t *testing.T) {
	sessions := []session.Session{
		mkNoted("2026-08-30", 9, "Coding", ""),
		mkNoted("2026-08-30", 10, "Learning", ""),
		mkNoted("2026-08-31", 9, "Database", ""),
		mkNoted("2026-08-31", 10, "Coding", ""),
	}

	d := NewDiversityDetector(nil)
	report := d.Detect(sessions, testToday, 2, 0.70)

	if report.Reasoning != "No category burnout detected" {
		t.Errorf("Reasoning = %q", report.Reasoning)
	}
	if report.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", report.Confidence)
	}
	if len(report.AvoidCategories) != 0 {
		t.Errorf("AvoidCategories = %v, want empty", report.AvoidCategories)
	}
	if report.TotalSessionsAnalyzed != 4 {
		t.Errorf("TotalSessionsAnalyzed = %d, want 4", report.TotalSessionsAnalyzed)
	}
}

func TestDiversity_AlternativesRespectConfiguredCategories(t *testing.T) {
	d := NewDiversityDetector([]string{"Coding", "Learning"})
	got := d.alternatives([]string{"Coding"})

	if len(got) != 1 || got[0] != "Learning" {
		t.Errorf("alternatives = %v, want [Learning]", got)
	}
}

func TestDetectTopicBurnout_StopWordsFiltered(t *testing.T) {
	sessions := []session.Session{
		mkNoted("2026-08-30", 9, "Coding", "the the the and and and"),
	}
	if got := detectTopicBurnout(sessions); got != nil {
		t.Errorf("stop words alone should not trigger topic burnout, got %+v", got)
	}
}
