// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default values.
const (
	DefaultTheme     = "classic"
	DefaultColor     = "auto"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	appDirName = "tasklist"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// DataDir is the profile directory the task snapshot is stored in.
	DataDir string `toml:"data_dir" yaml:"data_dir"`

	// Presentation
	Theme string `toml:"theme" yaml:"theme"`
	Color string `toml:"color" yaml:"color"`

	// Logging
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`

	// Ephemeral keeps tasks in memory only. Flag-only.
	Ephemeral bool `toml:"-" yaml:"-"`

	// File is the config file that was loaded, if any.
	File string `toml:"-" yaml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.Theme = DefaultTheme
	cfg.Color = DefaultColor
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(dir, appDirName, "storage")
}

var (
	validThemes     = []string{"classic", "neon", "mono"}
	validColors     = []string{"auto", "always", "never"}
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error", "fatal"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// finalizeConfig normalizes values and rejects unknown enum settings.
func finalizeConfig(cfg *Config) error {
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := oneOf("theme", cfg.Theme, validThemes); err != nil {
		return err
	}
	if err := oneOf("color", cfg.Color, validColors); err != nil {
		return err
	}
	if err := oneOf("log_level", cfg.LogLevel, validLogLevels); err != nil {
		return err
	}
	if err := oneOf("log_format", cfg.LogFormat, validLogFormats); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir is empty")
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.LogFile = expandPath(cfg.LogFile)
	return nil
}

func oneOf(field, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", field, v, strings.Join(allowed, ", "))
}
