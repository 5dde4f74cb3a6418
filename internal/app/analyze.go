package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Productivity patterns by hour, day, category, preset",
	Long: `Analyze the session log and report mean productivity grouped by hour
of day, day of week, category, and preset, plus best/worst hours and the
week-over-week trend.

Examples:
  focuswatch analyze
  focuswatch analyze --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	analysis := analytics.NewProductivityAnalyzer(sessions).Analyze(nowFunc())

	if flagJSON {
		return printJSON(analysis)
	}

	fmt.Println(output.Section("Productivity Analysis"))
	fmt.Printf(" Sessions analyzed: %s\n", output.StyleBold.Render(fmt.Sprintf("%d", analysis.TotalSessionsAnalyzed)))
	fmt.Printf(" Trend:             %s\n", trendLabel(analysis.Trend))
	if analysis.BestDay != "" {
		fmt.Printf(" Best day:          %s\n", output.StyleSuccess.Render(analysis.BestDay))
	}
	if len(analysis.BestHours) > 0 {
		fmt.Printf(" Best hours:        %s\n", hourList(analysis.BestHours))
	}
	if len(analysis.WorstHours) > 0 {
		fmt.Printf(" Worst hours:       %s\n", hourList(analysis.WorstHours))
	}

	if len(analysis.ByDay) > 0 {
		fmt.Println(output.Section("By Day"))
		t := output.NewTable("Day", "Avg Rating").AlignRight(1)
		for _, day := range session.DayNames {
			if avg, ok := analysis.ByDay[day]; ok {
				t.AddRow(day, fmt.Sprintf("%.1f", avg))
			}
		}
		fmt.Print(t.Render())
	}

	if len(analysis.ByCategory) > 0 {
		fmt.Println(output.Section("By Category"))
		t := output.NewTable("Category", "Avg Rating", "Sessions").AlignRight(1, 2)
		for _, cat := range sortedKeys(analysis.ByCategory) {
			stats := analysis.ByCategory[cat]
			t.AddRow(cat, fmt.Sprintf("%.1f", stats.AvgRating), fmt.Sprintf("%d", stats.SessionCount))
		}
		fmt.Print(t.Render())
	}

	if len(analysis.ByPreset) > 0 {
		fmt.Println(output.Section("By Preset"))
		t := output.NewTable("Preset", "Avg Rating", "Sessions").AlignRight(1, 2)
		for _, p := range session.AllPresets {
			if stats, ok := analysis.ByPreset[p]; ok {
				t.AddRow(p.DisplayName(), fmt.Sprintf("%.1f", stats.AvgRating), fmt.Sprintf("%d", stats.SessionCount))
			}
		}
		fmt.Print(t.Render())
	}

	return nil
}

func trendLabel(trend string) string {
	switch trend {
	case analytics.TrendUp:
		return output.StyleSuccess.Render("▲ up")
	case analytics.TrendDown:
		return output.StyleError.Render("▼ down")
	default:
		return output.StyleMuted.Render("─ stable")
	}
}

func hourList(hours []int) string {
	s := ""
	for i, h := range hours {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%02d:00", h)
	}
	return s
}

func sortedKeys(m map[string]analytics.GroupStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
