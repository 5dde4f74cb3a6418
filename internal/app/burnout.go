package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var burnoutCmd = &cobra.Command{
	Use:   "burnout",
	Short: "Burnout risk assessment",
	Long: `Score burnout risk 0-100 over the last 14 days from six factors:
declining productivity, overwork, night sessions, weekend work, productivity
variability, and continuous work days.

Examples:
  focuswatch burnout
  focuswatch burnout --json`,
	RunE: runBurnout,
}

func init() {
	rootCmd.AddCommand(burnoutCmd)
}

func runBurnout(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	assessment := analytics.NewBurnoutPredictor(sessions, nowFunc()).Assess()

	if flagJSON {
		return printJSON(assessment)
	}

	fmt.Println(output.Section("Burnout Risk"))
	fmt.Printf(" Risk:       %s  %s\n",
		output.ScoreBar(float64(assessment.RiskScore), 20),
		output.RiskBadge(assessment.RiskLevel))
	fmt.Printf(" Period:     %s (%d sessions)\n", assessment.AnalyzedPeriod, assessment.TotalSessionsAnalyzed)
	fmt.Printf(" Confidence: %s\n", confidencePercent(assessment.Confidence))
	if assessment.Message != "" {
		fmt.Printf(" %s\n", output.StyleMuted.Render(assessment.Message))
	}

	if len(assessment.RiskFactors) > 0 {
		fmt.Println(output.Section("Risk Factors"))
		t := output.NewTable("Factor", "Severity", "Score", "Detail").AlignRight(2)
		for _, f := range assessment.RiskFactors {
			t.AddRow(f.Name, output.SeverityBadge(f.Severity), fmt.Sprintf("%d", f.Score), f.Message)
		}
		fmt.Print(t.Render())
	}

	if len(assessment.Recommendations) > 0 {
		fmt.Println(output.Section("Recommendations"))
		for _, rec := range assessment.Recommendations {
			fmt.Printf(" • %s\n", rec)
		}
	}

	return nil
}
