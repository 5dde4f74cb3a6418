package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import sessions from a JSON log",
	Long: `Import sessions from a JSON array or JSON-lines file into the
focuswatch database. Reads stdin when no file is given. Malformed lines are
skipped.

Examples:
  focuswatch import sessions.json
  cat sessions.jsonl | focuswatch import`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	sessions, err := session.ParseLog(r)
	if err != nil {
		return fmt.Errorf("parsing session log: %w", err)
	}

	imported := 0
	for i := range sessions {
		if _, err := db.InsertSession(&sessions[i]); err != nil {
			return fmt.Errorf("inserting session %d: %w", i+1, err)
		}
		imported++
	}

	insightsCache.InvalidateAll()

	fmt.Printf("Imported %d sessions\n", imported)
	return nil
}
