// Package app contains the Cobra command tree for focuswatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "focuswatch",
	Short: "Work session analytics and focus optimization",
	Long: `focuswatch analyzes a log of timed work sessions. It computes
productivity patterns by hour, day, category, and preset, recommends work
presets, predicts session counts and quality, builds focus schedules, and
watches for burnout risk and behavior anomalies.

Run 'focuswatch' with no arguments to see the available reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("focuswatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  log        Record a work session")
		fmt.Println("  import     Import sessions from a JSON log")
		fmt.Println("  sessions   List recent sessions")
		fmt.Println("  analyze    Productivity patterns by hour, day, category, preset")
		fmt.Println("  heatmap    Day-of-week by hour productivity heatmap")
		fmt.Println("  recommend  Preset recommendation for the current context")
		fmt.Println("  predict    Session count and productivity forecast")
		fmt.Println("  schedule   Optimal session schedule for a day")
		fmt.Println("  quality    Next-session quality prediction")
		fmt.Println("  burnout    Burnout risk assessment")
		fmt.Println("  anomalies  Behavior anomaly report")
		fmt.Println("  diversity  Category overload detection")
		fmt.Println("  insights   All analyzers in one report")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/focuswatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
