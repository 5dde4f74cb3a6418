package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var recommendCategory string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Preset recommendation for the current context",
	Long: `Recommend a work preset for the current hour, optionally scoped to a
category. Scores blend hour-specific, category-specific, and overall preset
history.

Examples:
  focuswatch recommend
  focuswatch recommend --category Coding
  focuswatch recommend --json`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendCategory, "category", "", "Category to scope the recommendation to")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	recommender := analytics.NewPresetRecommender(sessions)
	rec := recommender.Recommend(nowFunc(), recommendCategory)

	if flagJSON {
		return printJSON(rec)
	}

	info := rec.RecommendedPreset.Info()
	fmt.Println(output.Section("Preset Recommendation"))
	fmt.Printf(" Recommended: %s (%d min work / %d min break)\n",
		output.StyleBold.Render(rec.RecommendedPreset.DisplayName()),
		info.WorkMinutes, info.BreakMinutes)
	fmt.Printf(" Reason:      %s\n", rec.Reason)
	fmt.Printf(" Confidence:  %s\n", confidencePercent(rec.Confidence))
	if rec.Alternative != "" {
		fmt.Printf(" Alternative: %s\n", rec.Alternative.DisplayName())
	}

	if len(rec.AllScores) > 0 {
		fmt.Println(output.Section("Scores"))
		t := output.NewTable("Preset", "Score").AlignRight(1)
		for _, p := range session.AllPresets {
			if score, ok := rec.AllScores[p]; ok {
				t.AddRow(p.DisplayName(), fmt.Sprintf("%.2f", score))
			}
		}
		fmt.Print(t.Render())
	}

	if flagVerbose {
		stats := recommender.Stats()
		if len(stats) > 0 {
			fmt.Println(output.Section("Preset History"))
			t := output.NewTable("Preset", "Avg Rating", "Sessions", "Best Hour", "Best Category").AlignRight(1, 2)
			for _, p := range session.AllPresets {
				s, ok := stats[p]
				if !ok {
					continue
				}
				bestHour := "-"
				if s.BestHour != nil {
					bestHour = fmt.Sprintf("%02d:00", *s.BestHour)
				}
				t.AddRow(p.DisplayName(), fmt.Sprintf("%.1f", s.AvgRating),
					fmt.Sprintf("%d", s.SessionCount), bestHour, s.BestCategory)
			}
			fmt.Print(t.Render())
		}
	}

	return nil
}
