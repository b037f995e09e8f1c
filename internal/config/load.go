package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. Config file ($TASKLIST_CONFIG, or config.toml / config.yaml in the user config dir)
// 3. Environment variables
// 4. CLI flags
//
// Flags are registered on fs; the arguments left after flag parsing are
// available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	path, explicit := findConfigFile()
	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.File = path
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the config file to read and whether the user named
// it explicitly.
func findConfigFile() (string, bool) {
	if p := strings.TrimSpace(os.Getenv("TASKLIST_CONFIG")); p != "" {
		return expandPath(p), true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, appDirName, name)
		if _, err := os.Stat(p); err == nil {
			return p, false
		}
	}
	return "", false
}

// loadConfigFile decodes a TOML or YAML file on top of cfg, picking the
// format from the extension.
func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode yaml: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("unknown keys: %v", undec)
		}
	}
	return nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKLIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TASKLIST_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TASKLIST_COLOR"); v != "" {
		cfg.Color = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = "never"
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKLIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

// parseFlags defines flags defaulting to the values loaded so far, so an
// unset flag never clobbers file or environment settings.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet(appDirName, flag.ContinueOnError)
	}
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory the task list is stored in")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme: classic, neon or mono")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "color output: auto, always or never")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or logfmt")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep tasks in memory only")
	return fs.Parse(args)
}
