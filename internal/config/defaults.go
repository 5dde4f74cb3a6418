// Package config provides configuration loading and defaults for focuswatch.
package config

// DefaultConfigDir is the default location for focuswatch configuration.
const DefaultConfigDir = "~/.config/focuswatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "focuswatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultCategories are the work categories offered when logging a session.
var DefaultCategories = []string{
	"Job Hunting",
	"Skill Building",
	"Learning",
	"Coding",
	"Database",
}

// DefaultWorkHours holds the default working-hours window.
var DefaultWorkHours = WorkHours{
	Start: 6,
	End:   22,
}

// DefaultDiversity holds the default overload detection settings.
var DefaultDiversity = Diversity{
	Days:      2,
	Threshold: 0.70,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
