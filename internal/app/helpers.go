package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/config"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/session"
	"github.com/blackwell-systems/focuswatch/internal/store"
)

// setup loads config, applies output preferences, and opens the database.
// The caller owns the returned DB.
func setup() (*config.Config, *store.DB, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.AutoDetect()

	db, err := store.Open(config.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return cfg, db, nil
}

// loadSessions reads the full session log from the store.
func loadSessions(db *store.DB) ([]session.Session, error) {
	sessions, err := db.AllSessions()
	if err != nil {
		return nil, fmt.Errorf("reading sessions: %w", err)
	}
	return sessions, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ratingLabel formats an optional average for table cells.
func ratingLabel(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

// confidencePercent formats a 0-1 confidence as a percentage.
func confidencePercent(c float64) string {
	return fmt.Sprintf("%.0f%%", c*100)
}

// nowFunc supplies the current time; tests may override it.
var nowFunc = time.Now
