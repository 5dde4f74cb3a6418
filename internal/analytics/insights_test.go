package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

func TestGatherInsights(t *testing.T) {
	var sessions []session.Session
	for day := 17; day <= 30; day++ {
		sessions = append(sessions,
			mkDated(dateAug(day), 9, 80),
			mkDated(dateAug(day), 11, 75),
		)
	}

	insights, err := GatherInsights(context.Background(), sessions, InsightsParams{
		Now:        testToday,
		Categories: []string{"Coding", "Learning"},
	})
	require.NoError(t, err)

	// Every analyzer sees the same snapshot.
	assert.Equal(t, 28, insights.Productivity.TotalSessionsAnalyzed)
	assert.NotEmpty(t, insights.Recommendation.RecommendedPreset)
	assert.Len(t, insights.Week.Predictions, 7)
	assert.Equal(t, "2026-08-31", insights.Today.Date)
	assert.NotEqual(t, "unknown", insights.Burnout.RiskLevel)
	assert.NotEqual(t, "insufficient_data", insights.Anomalies.OverallStatus)
	assert.Equal(t, 4, insights.Focus.Summary.RecommendedSessions)
	assert.Equal(t, testToday, insights.GeneratedAt)
}

func TestGatherInsights_EmptySnapshot(t *testing.T) {
	insights, err := GatherInsights(context.Background(), nil, InsightsParams{Now: testToday})
	require.NoError(t, err)

	assert.Equal(t, "unknown", insights.Burnout.RiskLevel)
	assert.Equal(t, "insufficient_data", insights.Anomalies.OverallStatus)
	assert.Equal(t, 0.3, insights.Recommendation.Confidence)
}

func TestGatherInsights_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GatherInsights(ctx, nil, InsightsParams{Now: testToday})
	assert.ErrorIs(t, err, context.Canceled)
}
