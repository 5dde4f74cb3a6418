package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	bar := ScoreBar(80, 10)
	if !strings.Contains(bar, "80/100") {
		t.Errorf("ScoreBar(80) = %q, want score suffix", bar)
	}
	if got := strings.Count(bar, "█"); got != 8 {
		t.Errorf("ScoreBar(80, 10) has %d filled cells, want 8", got)
	}
	if got := strings.Count(bar, "░"); got != 2 {
		t.Errorf("ScoreBar(80, 10) has %d empty cells, want 2", got)
	}

	full := ScoreBar(150, 10)
	if strings.Count(full, "█") != 10 {
		t.Errorf("overflow score should clamp to a full bar: %q", full)
	}
	empty := ScoreBar(-5, 10)
	if strings.Count(empty, "█") != 0 {
		t.Errorf("negative score should clamp to an empty bar: %q", empty)
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := TrendArrow(0, true); got != "─" {
		t.Errorf("TrendArrow(0) = %q, want dash", got)
	}
	if got := TrendArrow(2.5, true); got != "▲ +2.5" {
		t.Errorf("TrendArrow(2.5) = %q", got)
	}
	if got := TrendArrow(-1.5, true); got != "▼ -1.5" {
		t.Errorf("TrendArrow(-1.5) = %q", got)
	}
}

func TestRiskBadge(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		level string
		want  string
	}{
		{"low", "LOW"},
		{"medium", "MEDIUM"},
		{"high", "HIGH"},
		{"critical", "CRITICAL"},
		{"unknown", "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := RiskBadge(tc.level); got != tc.want {
			t.Errorf("RiskBadge(%q) = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestHeatCell(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := HeatCell(0, 0); got != "·" {
		t.Errorf("empty cell = %q, want muted dot", got)
	}

	tests := []struct {
		rating float64
		want   string
	}{
		{85, "█"},
		{70, "▓"},
		{55, "▒"},
		{30, "░"},
	}
	for _, tc := range tests {
		if got := HeatCell(tc.rating, 3); got != tc.want {
			t.Errorf("HeatCell(%v) = %q, want %q", tc.rating, got, tc.want)
		}
	}
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	s := Section("Burnout Risk")
	if !strings.Contains(s, "Burnout Risk") || !strings.Contains(s, "─") {
		t.Errorf("Section = %q", s)
	}
}
