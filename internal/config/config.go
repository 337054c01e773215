// Package config loads taskbook settings from defaults, an optional YAML file
// and TASKBOOK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "TASKBOOK"

// Config is the resolved runtime configuration.
type Config struct {
	Data      Data
	Logger    Logger
	Reminders Reminders
	Query     Query
	// File is the config file that was read, or "" when none was found.
	File string
}

type Data struct {
	Backend    string
	File       string
	SQLitePath string
}

type Logger struct {
	Level  string
	Format string
	Output string
}

type Reminders struct {
	NotifyHour           int
	DesktopNotifications bool
	SchedulerBuffer      int
}

type Query struct {
	UpcomingDays int
}

// StorePath is the file backing the configured storage backend.
func (d Data) StorePath() string {
	if d.Backend == "sqlite" {
		return d.SQLitePath
	}
	return d.File
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return decode(v)
}

// Load reads configuration. An explicit configPath must exist; otherwise
// taskbook.yaml is looked up in $HOME/.taskbook and the working directory and
// silently skipped if absent.
func Load(configPath string) (*Config, error) {
	return load(viper.New(), configPath)
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("taskbook")
		v.SetConfigType("yaml")
		if home := homeDir(); home != "" {
			v.AddConfigPath(filepath.Join(home, ".taskbook"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := decode(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) *Config {
	return &Config{
		Data:      getDataConfig(v),
		Logger:    getLoggerConfig(v),
		Reminders: getRemindersConfig(v),
		Query:     getQueryConfig(v),
		File:      v.ConfigFileUsed(),
	}
}

func setDefaults(v *viper.Viper) {
	base := filepath.Join(homeDir(), ".taskbook")
	v.SetDefault("data.backend", "json")
	v.SetDefault("data.file", filepath.Join(base, "tasks.json"))
	v.SetDefault("data.sqlite_path", filepath.Join(base, "tasks.db"))
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("reminders.notify_hour", 9)
	v.SetDefault("reminders.desktop_notifications", false)
	v.SetDefault("reminders.scheduler_buffer", 64)
	v.SetDefault("query.upcoming_days", 7)
}

func getDataConfig(v *viper.Viper) Data {
	return Data{
		Backend:    strings.ToLower(strings.TrimSpace(v.GetString("data.backend"))),
		File:       expandHome(v.GetString("data.file")),
		SQLitePath: expandHome(v.GetString("data.sqlite_path")),
	}
}

func getLoggerConfig(v *viper.Viper) Logger {
	return Logger{
		Level:  v.GetString("logger.level"),
		Format: v.GetString("logger.format"),
		Output: v.GetString("logger.output"),
	}
}

func getRemindersConfig(v *viper.Viper) Reminders {
	return Reminders{
		NotifyHour:           v.GetInt("reminders.notify_hour"),
		DesktopNotifications: v.GetBool("reminders.desktop_notifications"),
		SchedulerBuffer:      v.GetInt("reminders.scheduler_buffer"),
	}
}

func getQueryConfig(v *viper.Viper) Query {
	return Query{UpcomingDays: v.GetInt("query.upcoming_days")}
}

func (c *Config) validate() error {
	switch c.Data.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("config: unsupported data.backend %q", c.Data.Backend)
	}
	if c.Reminders.NotifyHour < 0 || c.Reminders.NotifyHour > 23 {
		return fmt.Errorf("config: reminders.notify_hour must be 0-23, got %d", c.Reminders.NotifyHour)
	}
	if c.Reminders.SchedulerBuffer <= 0 {
		c.Reminders.SchedulerBuffer = 64
	}
	if c.Query.UpcomingDays <= 0 {
		c.Query.UpcomingDays = 7
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
