package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var (
	logPreset    string
	logCategory  string
	logTask      string
	logNotes     string
	logDuration  int
	logCompleted bool
	logRating    float64
	logDate      string
	logHour      int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a work session",
	Long: `Log a work session to the focuswatch database. Ratings may use the
canonical 0-100 scale or the legacy 1-5 scale; values at or below 5 are
treated as legacy and normalized during analysis.

Examples:
  focuswatch log --preset deep_work --category Coding --rating 85
  focuswatch log --preset quick_tasks --duration 25 --completed=false
  focuswatch log --preset learning --task "SQL window functions" --rating 4`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logPreset, "preset", string(session.PresetDeepWork), "Preset (deep_work, learning, quick_tasks, flow_mode)")
	logCmd.Flags().StringVar(&logCategory, "category", "", "Work category")
	logCmd.Flags().StringVar(&logTask, "task", "", "Task description")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Free-form notes")
	logCmd.Flags().IntVar(&logDuration, "duration", 0, "Duration in minutes (default: preset work length)")
	logCmd.Flags().BoolVar(&logCompleted, "completed", true, "Whether the session was completed")
	logCmd.Flags().Float64Var(&logRating, "rating", -1, "Productivity rating (0-100, or legacy 1-5)")
	logCmd.Flags().StringVar(&logDate, "date", "", "Session date YYYY-MM-DD (default today)")
	logCmd.Flags().IntVar(&logHour, "hour", -1, "Hour of day 0-23 (default now)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	preset := session.Preset(logPreset)
	if !preset.Valid() {
		return fmt.Errorf("unknown preset %q; valid presets: deep_work, learning, quick_tasks, flow_mode", logPreset)
	}

	if logCategory != "" && len(cfg.Categories) > 0 {
		known := false
		for _, c := range cfg.Categories {
			if c == logCategory {
				known = true
				break
			}
		}
		if !known && flagVerbose {
			fmt.Printf("note: category %q is not in config (%s)\n",
				logCategory, strings.Join(cfg.Categories, ", "))
		}
	}

	now := nowFunc()
	date := logDate
	if date == "" {
		date = now.Format(session.DateLayout)
	} else if _, err := time.Parse(session.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", logDate)
	}
	hour := logHour
	if hour < 0 || hour > 23 {
		hour = now.Hour()
	}
	duration := logDuration
	if duration <= 0 {
		duration = preset.Info().WorkMinutes
	}

	day, _ := time.Parse(session.DateLayout, date)
	s := session.Session{
		Date:            date,
		Hour:            hour,
		DayOfWeek:       session.Weekday(day),
		Preset:          preset,
		Category:        logCategory,
		Task:            logTask,
		Notes:           logNotes,
		DurationMinutes: duration,
		Completed:       logCompleted,
		CreatedAt:       now.UTC(),
	}
	if logRating >= 0 {
		if logRating > 100 {
			return fmt.Errorf("rating %.1f out of range: expected 0-100 (or legacy 1-5)", logRating)
		}
		rating := logRating
		s.ProductivityRating = &rating
	}

	id, err := db.InsertSession(&s)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	// New data invalidates memoized reports.
	insightsCache.InvalidateAll()

	fmt.Printf("Logged session #%d: %s at %02d:00 on %s", id, preset.DisplayName(), hour, date)
	if logCategory != "" {
		fmt.Printf(" (%s)", logCategory)
	}
	if s.ProductivityRating != nil {
		fmt.Printf(" rated %s", output.StyleBold.Render(fmt.Sprintf("%.0f", *s.ProductivityRating)))
	}
	fmt.Println()
	return nil
}
