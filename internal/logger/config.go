package logger

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
	FileCompress   bool   `yaml:"file_compress"`
}

// fileConfig mirrors Config with pointers so unset keys keep their defaults.
type fileConfig struct {
	Logging struct {
		Level          string `yaml:"level"`
		ConsoleEnabled *bool  `yaml:"console_enabled"`
		ConsoleFormat  string `yaml:"console_format"`
		FileEnabled    *bool  `yaml:"file_enabled"`
		FilePath       string `yaml:"file_path"`
		FileFormat     string `yaml:"file_format"`
		FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
		FileMaxBackups int    `yaml:"file_max_backups"`
		FileMaxAgeDays int    `yaml:"file_max_age_days"`
		FileCompress   *bool  `yaml:"file_compress"`
	} `yaml:"logging"`
}

// DefaultConfig logs INFO and above as text to the console.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FilePath:       "logs/undercroft.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig reads the logging section of a YAML file and applies
// UNDERCROFT_LOG_* environment overrides. A missing or unreadable file
// leaves the defaults in place.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err == nil {
				config.merge(fc)
			}
		}
	}

	applyEnv(&config)
	return config, nil
}

func (c *Config) merge(fc fileConfig) {
	l := fc.Logging
	if l.Level != "" {
		c.Level = l.Level
	}
	if l.ConsoleEnabled != nil {
		c.ConsoleEnabled = *l.ConsoleEnabled
	}
	if l.ConsoleFormat != "" {
		c.ConsoleFormat = l.ConsoleFormat
	}
	if l.FileEnabled != nil {
		c.FileEnabled = *l.FileEnabled
	}
	if l.FilePath != "" {
		c.FilePath = l.FilePath
	}
	if l.FileFormat != "" {
		c.FileFormat = l.FileFormat
	}
	if l.FileMaxSizeMB > 0 {
		c.FileMaxSizeMB = l.FileMaxSizeMB
	}
	if l.FileMaxBackups > 0 {
		c.FileMaxBackups = l.FileMaxBackups
	}
	if l.FileMaxAgeDays > 0 {
		c.FileMaxAgeDays = l.FileMaxAgeDays
	}
	if l.FileCompress != nil {
		c.FileCompress = *l.FileCompress
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("UNDERCROFT_LOG_LEVEL"); v != "" {
		c.Level = v
	}
	if v := os.Getenv("UNDERCROFT_LOG_FORMAT"); v != "" {
		c.ConsoleFormat = v
	}
	if v := os.Getenv("UNDERCROFT_LOG_FILE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.FileEnabled = enabled
		}
	}
	if v := os.Getenv("UNDERCROFT_LOG_FILE_PATH"); v != "" {
		c.FilePath = v
	}
}
