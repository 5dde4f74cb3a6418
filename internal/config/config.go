package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level focuswatch configuration.
type Config struct {
	Categories []string  `mapstructure:"categories"`
	WorkHours  WorkHours `mapstructure:"work_hours"`
	Diversity  Diversity `mapstructure:"diversity"`
	Output     Output    `mapstructure:"output"`
}

// WorkHours bounds the hours considered for scheduling.
type WorkHours struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// Diversity defines the category overload detection settings.
type Diversity struct {
	Days      int     `mapstructure:"days"`
	Threshold float64 `mapstructure:"threshold"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("categories", DefaultCategories)
	v.SetDefault("work_hours.start", DefaultWorkHours.Start)
	v.SetDefault("work_hours.end", DefaultWorkHours.End)
	v.SetDefault("diversity.days", DefaultDiversity.Days)
	v.SetDefault("diversity.threshold", DefaultDiversity.Threshold)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
