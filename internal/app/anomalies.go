package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Behavior anomaly report",
	Long: `Compare recent behavior against a 14-day baseline and flag unusual
patterns: productivity drops, unusual hours, category shifts, broken streaks,
overwork spikes, and quality declines.

Examples:
  focuswatch anomalies
  focuswatch anomalies --json`,
	RunE: runAnomalies,
}

func init() {
	rootCmd.AddCommand(anomaliesCmd)
}

func runAnomalies(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	report := analytics.NewAnomalyDetector(sessions, nowFunc()).Detect()

	if flagJSON {
		return printJSON(report)
	}

	fmt.Println(output.Section("Anomaly Report"))
	fmt.Printf(" Status:     %s\n", statusLabel(report.OverallStatus))
	fmt.Printf(" Detected:   %d\n", report.AnomaliesDetected)
	fmt.Printf(" Confidence: %s (%d sessions, %d days)\n",
		confidencePercent(report.Confidence), report.TotalSessionsAnalyzed, report.UniqueDays)
	if report.Message != "" {
		fmt.Printf(" %s\n", output.StyleMuted.Render(report.Message))
	}

	for _, a := range report.Anomalies {
		fmt.Printf("\n %s %s  %s\n", a.Icon, output.StyleBold.Render(a.Name), output.SeverityBadge(a.Severity))
		fmt.Printf("   %s\n", a.Description)
		fmt.Printf("   %s\n", output.StyleMuted.Render(a.Recommendation))
	}

	if len(report.ProactiveTips) > 0 {
		fmt.Println(output.Section("Tips"))
		for _, tip := range report.ProactiveTips {
			fmt.Printf(" %s %s\n", tip.Icon, tip.Message)
		}
	}

	if b := report.BaselineSummary; b != nil {
		fmt.Println(output.Section("Baseline"))
		fmt.Printf(" Avg productivity: %.1f\n", b.AvgProductivity)
		fmt.Printf(" Typical hours:    %02d:00 - %02d:00\n", b.TypicalHours.Start, b.TypicalHours.End)
		if b.TopCategory != "" {
			fmt.Printf(" Top category:     %s\n", b.TopCategory)
		}
		fmt.Printf(" Sessions per day: %.1f\n", b.AvgSessionsPerDay)
		fmt.Printf(" Current streak:   %d days\n", b.CurrentStreak)
	}

	if p := report.Patterns; p != nil {
		fmt.Println(output.Section("Patterns"))
		fmt.Printf(" Productivity trend:  %s\n", p.ProductivityTrend)
		fmt.Printf(" Work intensity:      %s\n", p.WorkIntensity)
		fmt.Printf(" Schedule regularity: %s\n", p.ScheduleRegularity)
	}

	return nil
}

func statusLabel(status string) string {
	switch status {
	case "healthy":
		return output.StyleSuccess.Render("healthy")
	case "info":
		return output.StyleMuted.Render("info")
	case "warning":
		return output.StyleWarning.Render("warning")
	case "alert", "critical":
		return output.StyleError.Render(status)
	default:
		return status
	}
}
