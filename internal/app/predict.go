package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var (
	predictWeek   bool
	predictTrends bool
	predictDays   int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Session count and productivity forecast",
	Long: `Predict the remaining sessions and productivity for today, or the
next seven days with --week. With --trends, compare the halves of a recent
window instead.

Examples:
  focuswatch predict
  focuswatch predict --week
  focuswatch predict --trends --days 30`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().BoolVar(&predictWeek, "week", false, "Forecast the next 7 days")
	predictCmd.Flags().BoolVar(&predictTrends, "trends", false, "Report session and productivity trends")
	predictCmd.Flags().IntVar(&predictDays, "days", 30, "Trend window in days (with --trends)")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	predictor := analytics.NewSessionPredictor(sessions)
	now := nowFunc()

	if predictTrends {
		trends := predictor.Trends(now, predictDays)
		if flagJSON {
			return printJSON(trends)
		}
		fmt.Println(output.Section(fmt.Sprintf("Trends (last %d days)", predictDays)))
		fmt.Printf(" Sessions:         %d\n", trends.TotalSessions)
		fmt.Printf(" Avg productivity: %.1f\n", trends.AvgProductivity)
		fmt.Printf(" Session trend:    %s\n", trends.SessionTrend)
		fmt.Printf(" Productivity:     %s\n", trends.ProductivityTrend)
		return nil
	}

	if predictWeek {
		week := predictor.PredictWeek(now)
		if flagJSON {
			return printJSON(week)
		}
		fmt.Println(output.Section("Week Forecast"))
		t := output.NewTable("Date", "Day", "Sessions", "Productivity").AlignRight(2, 3)
		for _, day := range week.Predictions {
			t.AddRow(day.Date, day.DayName,
				fmt.Sprintf("%d", day.PredictedSessions),
				fmt.Sprintf("%.1f", day.PredictedProductivity))
		}
		fmt.Print(t.Render())
		fmt.Printf("\n Total sessions: %d  Avg productivity: %.1f\n",
			week.TotalPredictedSessions, week.AvgPredictedProductivity)
		return nil
	}

	today := predictor.PredictToday(now)
	if flagJSON {
		return printJSON(today)
	}

	fmt.Println(output.Section(fmt.Sprintf("Today (%s)", today.Date)))
	fmt.Printf(" Completed:    %d sessions\n", today.CompletedSessions)
	fmt.Printf(" Predicted:    %d sessions (%d remaining)\n", today.PredictedSessions, today.RemainingSessions)
	fmt.Printf(" Productivity: %s\n", output.ScoreBar(today.PredictedProductivity, 20))
	fmt.Printf(" Energy:       %s - %s\n", today.EnergyForecast.Level, today.EnergyForecast.Message)
	fmt.Printf(" Confidence:   %s\n", confidencePercent(today.Confidence))

	if len(today.RecommendedSchedule) > 0 {
		fmt.Println(output.Section("Recommended Schedule"))
		t := output.NewTable("Time", "Preset", "Priority")
		for _, slot := range today.RecommendedSchedule {
			t.AddRow(fmt.Sprintf("%02d:00", slot.Hour), slot.RecommendedPreset.DisplayName(), slot.Priority)
		}
		fmt.Print(t.Render())
	}

	return nil
}
