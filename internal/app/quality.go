package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var (
	qualityHour          int
	qualityDay           int
	qualityPreset        string
	qualityCategory      string
	qualitySessionsToday int
	qualityMinutesSince  int
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Next-session quality prediction",
	Long: `Predict the productivity of the next session from six weighted
factors: hour of day, day of week, preset, category, fatigue from sessions
already done today, and recovery since the last session.

Defaults describe a first session right now; override any factor via flags.

Examples:
  focuswatch quality
  focuswatch quality --preset deep_work --category Coding
  focuswatch quality --sessions-today 3 --minutes-since-last 10`,
	RunE: runQuality,
}

func init() {
	qualityCmd.Flags().IntVar(&qualityHour, "hour", -1, "Hour of day 0-23 (default now)")
	qualityCmd.Flags().IntVar(&qualityDay, "day", -1, "Day of week 0=Monday .. 6=Sunday (default today)")
	qualityCmd.Flags().StringVar(&qualityPreset, "preset", string(session.PresetDeepWork), "Preset (deep_work, learning, quick_tasks, flow_mode)")
	qualityCmd.Flags().StringVar(&qualityCategory, "category", "", "Work category")
	qualityCmd.Flags().IntVar(&qualitySessionsToday, "sessions-today", 0, "Sessions already completed today")
	qualityCmd.Flags().IntVar(&qualityMinutesSince, "minutes-since-last", -1, "Minutes since the last session (omit for first session)")
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	preset := session.Preset(qualityPreset)
	if !preset.Valid() {
		return fmt.Errorf("unknown preset %q; valid presets: deep_work, learning, quick_tasks, flow_mode", qualityPreset)
	}

	now := nowFunc()
	in := analytics.QualityInput{
		Hour:          qualityHour,
		Day:           qualityDay,
		Preset:        preset,
		Category:      qualityCategory,
		SessionsToday: qualitySessionsToday,
	}
	if in.Hour < 0 || in.Hour > 23 {
		in.Hour = now.Hour()
	}
	if in.Day < 0 || in.Day > 6 {
		in.Day = session.Weekday(now)
	}
	if qualityMinutesSince >= 0 {
		in.MinutesSinceLast = &qualityMinutesSince
	}

	prediction := analytics.NewQualityPredictor(sessions).Predict(in)

	if flagJSON {
		return printJSON(prediction)
	}

	fmt.Println(output.Section("Session Quality Prediction"))
	fmt.Printf(" Context:      %s %02d:00, %s", prediction.Context.DayName, prediction.Context.Hour, prediction.Context.PresetName)
	if prediction.Context.Category != "" {
		fmt.Printf(" (%s)", prediction.Context.Category)
	}
	fmt.Println()
	fmt.Printf(" Predicted:    %s\n", output.ScoreBar(prediction.PredictedProductivity, 20))
	fmt.Printf(" Confidence:   %s\n", confidencePercent(prediction.Confidence))
	fmt.Printf(" Based on:     %d completed sessions\n", prediction.TotalSessionsAnalyzed)

	fmt.Println(output.Section("Factors"))
	t := output.NewTable("Factor", "Score", "Weight", "Confidence").AlignRight(1, 2, 3)
	for _, name := range []string{"hour", "day", "preset", "category", "fatigue", "recovery"} {
		f := prediction.FactorScores[name]
		t.AddRow(name, fmt.Sprintf("%.1f", f.Score), fmt.Sprintf("%.2f", f.Weight), fmt.Sprintf("%.2f", f.Confidence))
	}
	fmt.Print(t.Render())

	for _, f := range prediction.Factors {
		marker := output.StyleSuccess.Render("+")
		if f.Type == "negative" {
			marker = output.StyleError.Render("-")
		}
		fmt.Printf(" %s %s: %s\n", marker, output.StyleBold.Render(f.Name), f.Description)
	}

	rec := prediction.Recommendation
	fmt.Printf("\n %s %s\n", rec.Icon, output.StyleBold.Render(rec.Message))
	if rec.Action != "" {
		fmt.Printf("   %s\n", rec.Action)
	}

	return nil
}
