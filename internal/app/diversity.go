package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var (
	diversityDays      int
	diversityThreshold float64
)

var diversityCmd = &cobra.Command{
	Use:   "diversity",
	Short: "Category overload detection",
	Long: `Detect over-concentration on a single category or topic in the
recent session log, and suggest alternative categories to rotate to.

Examples:
  focuswatch diversity
  focuswatch diversity --days 3 --threshold 0.6`,
	RunE: runDiversity,
}

func init() {
	diversityCmd.Flags().IntVar(&diversityDays, "days", 0, "Lookback window in days (default from config)")
	diversityCmd.Flags().Float64Var(&diversityThreshold, "threshold", 0, "Concentration threshold 0-1 (default from config)")
	rootCmd.AddCommand(diversityCmd)
}

func runDiversity(cmd *cobra.Command, args []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	days := diversityDays
	if days <= 0 {
		days = cfg.Diversity.Days
	}
	threshold := diversityThreshold
	if threshold <= 0 {
		threshold = cfg.Diversity.Threshold
	}

	report := analytics.NewDiversityDetector(cfg.Categories).Detect(sessions, nowFunc(), days, threshold)

	if flagJSON {
		return printJSON(report)
	}

	fmt.Println(output.Section("Category Diversity"))
	fmt.Printf(" Window:   last %d days (%d sessions)\n", report.AnalysisDays, report.TotalSessionsAnalyzed)
	fmt.Printf(" Reason:   %s\n", report.Reasoning)

	if len(report.AvoidCategories) > 0 {
		fmt.Printf(" Avoid:    %s\n", output.StyleError.Render(strings.Join(report.AvoidCategories, ", ")))
	}
	if len(report.RecommendedAlternatives) > 0 {
		fmt.Printf(" Try:      %s\n", output.StyleSuccess.Render(strings.Join(report.RecommendedAlternatives, ", ")))
	}

	if len(report.CategoryDistribution) > 0 {
		fmt.Println(output.Section("Distribution"))
		t := output.NewTable("Category", "Sessions").AlignRight(1)
		cats := make([]string, 0, len(report.CategoryDistribution))
		for c := range report.CategoryDistribution {
			cats = append(cats, c)
		}
		sort.Slice(cats, func(i, j int) bool {
			if report.CategoryDistribution[cats[i]] != report.CategoryDistribution[cats[j]] {
				return report.CategoryDistribution[cats[i]] > report.CategoryDistribution[cats[j]]
			}
			return cats[i] < cats[j]
		})
		for _, c := range cats {
			t.AddRow(c, fmt.Sprintf("%d", report.CategoryDistribution[c]))
		}
		fmt.Print(t.Render())
	}

	return nil
}
