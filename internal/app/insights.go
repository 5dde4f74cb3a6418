package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/cache"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

// insightsCache memoizes the aggregate report per process so repeated
// renders (text then JSON in scripts) reuse one computation.
var insightsCache = cache.New(nil)

var insightsCategory string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "All analyzers in one report",
	Long: `Run every analyzer concurrently over the session log and print a
combined report: productivity, preset recommendation, predictions, focus
schedule, burnout risk, anomalies, and category diversity.

Examples:
  focuswatch insights
  focuswatch insights --category Coding --json`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().StringVar(&insightsCategory, "category", "", "Category to scope the preset recommendation to")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	now := nowFunc()
	key := cache.Key("insights", map[string]string{
		"date":     now.Format("2006-01-02T15"),
		"category": insightsCategory,
	})

	var insights analytics.Insights
	if cached, ok := insightsCache.Get(key); ok {
		insights = cached.(analytics.Insights)
	} else {
		insights, err = analytics.GatherInsights(cmd.Context(), sessions, analytics.InsightsParams{
			Now:        now,
			Category:   insightsCategory,
			Categories: cfg.Categories,
			WorkStart:  cfg.WorkHours.Start,
			WorkEnd:    cfg.WorkHours.End,
		})
		if err != nil {
			return fmt.Errorf("gathering insights: %w", err)
		}
		insightsCache.Set("insights", key, insights)
	}

	if flagJSON {
		return printJSON(insights)
	}

	fmt.Println(output.Section("Insights"))
	fmt.Printf(" Sessions:   %d rated\n", insights.Productivity.TotalSessionsAnalyzed)
	fmt.Printf(" Trend:      %s\n", trendLabel(insights.Productivity.Trend))
	if insights.Productivity.BestDay != "" {
		fmt.Printf(" Best day:   %s\n", insights.Productivity.BestDay)
	}
	if len(insights.Productivity.BestHours) > 0 {
		fmt.Printf(" Best hours: %s\n", hourList(insights.Productivity.BestHours))
	}

	rec := insights.Recommendation
	fmt.Println(output.Section("Next Session"))
	fmt.Printf(" Preset:     %s (%s)\n", output.StyleBold.Render(rec.RecommendedPreset.DisplayName()), confidencePercent(rec.Confidence))
	fmt.Printf(" Reason:     %s\n", rec.Reason)
	fmt.Printf(" Today:      %d of %d sessions done, productivity %s\n",
		insights.Today.CompletedSessions, insights.Today.PredictedSessions,
		output.ScoreBar(insights.Today.PredictedProductivity, 12))
	fmt.Printf(" Best range: %s\n", insights.Focus.Summary.BestTimeRange)

	fmt.Println(output.Section("Health"))
	fmt.Printf(" Burnout:    %s (%d/100)\n", output.RiskBadge(insights.Burnout.RiskLevel), insights.Burnout.RiskScore)
	fmt.Printf(" Anomalies:  %s (%d detected)\n", statusLabel(insights.Anomalies.OverallStatus), insights.Anomalies.AnomaliesDetected)
	if len(insights.Diversity.AvoidCategories) > 0 {
		fmt.Printf(" Diversity:  rotate away from %s\n", output.StyleWarning.Render(insights.Diversity.AvoidCategories[0]))
	} else {
		fmt.Printf(" Diversity:  %s\n", output.StyleSuccess.Render("balanced"))
	}

	return nil
}
