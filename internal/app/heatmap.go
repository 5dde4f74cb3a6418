package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analytics"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Day-of-week by hour productivity heatmap",
	Long: `Render a 7x24 grid of mean productivity per weekday and hour.
Cell intensity follows the mean rating; empty cells show a dot.

Examples:
  focuswatch heatmap
  focuswatch heatmap --json`,
	RunE: runHeatmap,
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := loadSessions(db)
	if err != nil {
		return err
	}

	heatmap := analytics.NewProductivityAnalyzer(sessions).HourlyHeatmap()

	if flagJSON {
		return printJSON(heatmap)
	}

	fmt.Println(output.Section("Productivity Heatmap"))

	// Hour axis header, one column per hour.
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", 11))
	for h := 0; h < 24; h++ {
		if h%3 == 0 {
			header.WriteString(fmt.Sprintf("%-3d", h))
		}
	}
	fmt.Println(" " + output.StyleMuted.Render(header.String()))

	for _, day := range session.DayNames {
		row := heatmap[day]
		var cells strings.Builder
		for h := 0; h < 24; h++ {
			cell := row[h]
			cells.WriteString(output.HeatCell(cell.AvgRating, cell.Sessions))
		}
		fmt.Printf(" %-10s %s\n", day, cells.String())
	}

	fmt.Println()
	fmt.Printf(" %s %s low  %s mid  %s high\n",
		output.StyleMuted.Render("legend:"),
		output.StyleError.Render("░"),
		output.StyleWarning.Render("▓"),
		output.StyleSuccess.Render("█"))
	return nil
}
