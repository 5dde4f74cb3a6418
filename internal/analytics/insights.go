package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// Insights bundles the output of every analyzer over one session snapshot.
type Insights struct {
	Productivity   ProductivityAnalysis `json:"productivity"`
	Recommendation PresetRecommendation `json:"recommendation"`
	Today          TodayPrediction      `json:"today"`
	Week           WeekPrediction       `json:"week"`
	Focus          FocusAnalysis        `json:"focus"`
	Burnout        BurnoutAssessment    `json:"burnout"`
	Anomalies      AnomalyReport        `json:"anomalies"`
	Diversity      DiversityReport      `json:"diversity"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// InsightsParams carries the shared inputs of the aggregate run. A zero
// WorkStart/WorkEnd pair keeps the default scheduling window.
type InsightsParams struct {
	Now        time.Time
	Category   string
	Categories []string
	WorkStart  int
	WorkEnd    int
}

// GatherInsights runs all analyzers concurrently over the same snapshot.
// Each analyzer is pure, so the only cancellation point is the context check
// between scheduling and collection.
func GatherInsights(ctx context.Context, sessions []session.Session, params InsightsParams) (Insights, error) {
	now := params.Now
	day := session.Weekday(now)

	var insights Insights
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		insights.Productivity = NewProductivityAnalyzer(sessions).Analyze(now)
		return nil
	})
	g.Go(func() error {
		insights.Recommendation = NewPresetRecommender(sessions).Recommend(now, params.Category)
		return nil
	})
	g.Go(func() error {
		predictor := NewSessionPredictor(sessions)
		insights.Today = predictor.PredictToday(now)
		insights.Week = predictor.PredictWeek(now)
		return nil
	})
	g.Go(func() error {
		insights.Focus = NewFocusOptimizerWindow(sessions, params.WorkStart, params.WorkEnd).Analyze(now, day, 4)
		return nil
	})
	g.Go(func() error {
		insights.Burnout = NewBurnoutPredictor(sessions, now).Assess()
		return nil
	})
	g.Go(func() error {
		insights.Anomalies = NewAnomalyDetector(sessions, now).Detect()
		return nil
	})
	g.Go(func() error {
		insights.Diversity = NewDiversityDetector(params.Categories).
			Detect(sessions, now, DefaultDiversityDays, DefaultDiversityThreshold)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Insights{}, err
	}
	if err := ctx.Err(); err != nil {
		return Insights{}, err
	}

	insights.GeneratedAt = now
	return insights, nil
}
