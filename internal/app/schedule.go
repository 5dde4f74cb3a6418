package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var (
	scheduleDay      int
	scheduleSessions int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Optimal session schedule for a day",
	Long: `Build a gap-constrained schedule from the highest-scoring hours of a
day, with peak hours, hours to avoid, and a per-slot preset.

Day numbering is Monday=0 through Sunday=6; the default is today.

Examples:
  focuswatch schedule
  focuswatch schedule --day 5 --sessions 6
  focuswatch schedule --json`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().IntVar(&scheduleDay, "day", -1, "Day of week (0=Monday .. 6=Sunday, default today)")
	scheduleCmd.Flags().IntVar(&scheduleSessions, "sessions", 4, "Number of sessions to plan")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
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
	day := scheduleDay
	if day < 0 || day > 6 {
		day = session.Weekday(now)
	}

	optimizer := analytics.NewFocusOptimizerWindow(sessions, cfg.WorkHours.Start, cfg.WorkHours.End)
	analysis := optimizer.Analyze(now, day, scheduleSessions)

	if flagJSON {
		return printJSON(analysis)
	}

	fmt.Println(output.Section(fmt.Sprintf("Focus Schedule - %s", analysis.DayOfWeekEN)))
	fmt.Printf(" %s\n", output.StyleMuted.Render(analysis.RecommendationBasis))
	fmt.Printf(" Best range: %s  Confidence: %s\n",
		output.StyleBold.Render(analysis.Summary.BestTimeRange),
		confidencePercent(analysis.Confidence))

	if len(analysis.OptimalSchedule.Sessions) > 0 {
		fmt.Println(output.Section("Plan"))
		t := output.NewTable("Slot", "Time", "Preset", "Work", "Break", "Expected").AlignRight(0, 3, 4, 5)
		for _, s := range analysis.OptimalSchedule.Sessions {
			t.AddRow(
				fmt.Sprintf("%d", s.Slot),
				s.Time,
				s.PresetName,
				fmt.Sprintf("%dm", s.WorkMinutes),
				fmt.Sprintf("%dm", s.BreakMinutes),
				fmt.Sprintf("%.0f", s.ExpectedProductivity),
			)
		}
		fmt.Print(t.Render())
		fmt.Printf("\n Total: %dm work + %dm break = %dm  Avg expected: %.1f\n",
			analysis.OptimalSchedule.TotalWorkMinutes,
			analysis.OptimalSchedule.TotalBreakMinutes,
			analysis.OptimalSchedule.TotalTimeMinutes,
			analysis.OptimalSchedule.AvgExpectedProductivity)
	}

	if len(analysis.PeakHours) > 0 {
		fmt.Println(output.Section("Peak Hours"))
		t := output.NewTable("Time", "Expected", "Preset", "Rating", "Sessions").AlignRight(1, 3, 4)
		for _, h := range analysis.PeakHours {
			t.AddRow(h.Time, fmt.Sprintf("%.0f", h.ExpectedProductivity), h.PresetName,
				ratingLabel(h.PresetRating), fmt.Sprintf("%d", h.SessionCount))
		}
		fmt.Print(t.Render())
	}

	if len(analysis.AvoidHours) > 0 {
		fmt.Println(output.Section("Hours To Avoid"))
		t := output.NewTable("Time", "Expected", "Reason").AlignRight(1)
		for _, h := range analysis.AvoidHours {
			t.AddRow(h.Time, fmt.Sprintf("%.0f", h.ExpectedProductivity), h.Reason)
		}
		fmt.Print(t.Render())
	}

	return nil
}
