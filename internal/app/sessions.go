package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent sessions",
	Long: `List the most recent sessions in the log, newest first.

Examples:
  focuswatch sessions
  focuswatch sessions --limit 50 --json`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sessions, err := db.RecentSessions(sessionsLimit)
	if err != nil {
		return fmt.Errorf("reading sessions: %w", err)
	}

	if flagJSON {
		if sessions == nil {
			sessions = []session.Session{}
		}
		return printJSON(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions logged yet. Use 'focuswatch log' to record one.")
		return nil
	}

	total, err := db.CountSessions()
	if err != nil {
		return fmt.Errorf("counting sessions: %w", err)
	}

	fmt.Println(output.Section(fmt.Sprintf("Sessions (%d of %d)", len(sessions), total)))
	t := output.NewTable("Date", "Time", "Preset", "Category", "Task", "Min", "Done", "Rating").AlignRight(5, 7)
	for _, s := range sessions {
		done := "✓"
		if !s.Completed {
			done = "✗"
		}
		rating := "-"
		if r, ok := s.Rating(); ok {
			rating = fmt.Sprintf("%.0f", r)
		}
		t.AddRow(
			s.Date,
			fmt.Sprintf("%02d:00", s.Hour),
			s.Preset.DisplayName(),
			s.Category,
			s.Task,
			fmt.Sprintf("%d", s.DurationMinutes),
			done,
			rating,
		)
	}
	fmt.Print(t.Render())
	return nil
}
