package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/workhome-schedule/internal/calendar"
	"github.com/username/workhome-schedule/internal/schedule"
	"github.com/username/workhome-schedule/pkg/dateutil"
)

// EnvPrefix prefixes environment overrides, e.g. WORKHOME_CALENDAR_SOURCE
const EnvPrefix = "WORKHOME"

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig represents the holiday calendar source
type CalendarConfig struct {
	Source         string `mapstructure:"source"`          // file path or http(s) URL
	FallbackSource string `mapstructure:"fallback_source"` // used when source cannot be opened
	DateFormat     string `mapstructure:"date_format"`     // Go time layout
	Header         bool   `mapstructure:"header"`
	Encoding       string `mapstructure:"encoding"`
	Timeout        string `mapstructure:"timeout"`
}

// ScheduleConfig represents the rotation defaults
type ScheduleConfig struct {
	StartStatus string `mapstructure:"start_status"` // "home" or "office"
	WorkingDays int    `mapstructure:"working_days"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.source", "calendar.csv")
	v.SetDefault("calendar.fallback_source", "")
	v.SetDefault("calendar.date_format", dateutil.DefaultLayout)
	v.SetDefault("calendar.header", true)
	v.SetDefault("calendar.encoding", calendar.DefaultEncoding)
	v.SetDefault("calendar.timeout", "10s")
	v.SetDefault("schedule.start_status", "")
	v.SetDefault("schedule.working_days", 1)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file.
// Without an explicit path a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workhome")
		v.AddConfigPath("/etc/workhome")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration.
// The start status may be empty here; it can still come from the command line.
func (c *Config) Validate() error {
	if c.Calendar.Source == "" {
		return fmt.Errorf("calendar.source is required")
	}
	if c.Calendar.DateFormat == "" {
		return fmt.Errorf("calendar.date_format is required")
	}
	if err := calendar.ValidateEncoding(c.Calendar.Encoding); err != nil {
		return fmt.Errorf("calendar.encoding: %w", err)
	}
	if c.Calendar.Timeout != "" {
		if _, err := time.ParseDuration(c.Calendar.Timeout); err != nil {
			return fmt.Errorf("calendar.timeout must be a duration, got '%s'", c.Calendar.Timeout)
		}
	}

	if c.Schedule.StartStatus != "" {
		if _, err := schedule.ParseStatus(c.Schedule.StartStatus); err != nil {
			return fmt.Errorf("schedule.start_status: %w", err)
		}
	}
	if c.Schedule.WorkingDays <= 0 {
		return fmt.Errorf("schedule.working_days must be positive")
	}

	return nil
}

// GetTimeout returns the calendar download timeout
func (c *CalendarConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// GetLevel returns the log level, defaulting to info
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.Source = os.ExpandEnv(c.Calendar.Source)
	c.Calendar.FallbackSource = os.ExpandEnv(c.Calendar.FallbackSource)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
