// Package config loads settings for the todos CLI.
//
// Sources are applied in priority order:
//  1. Defaults
//  2. YAML config file (explicit path, else ./todos.yaml, else the user config dir)
//  3. Environment variables (TODOS_DB, TODOS_KEY, TODOS_LOG_LEVEL)
//  4. CLI flags (applied by the caller)
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/todos/internal/todo"
)

// Environment variables read by ApplyEnv.
const (
	EnvDatabase = "TODOS_DB"
	EnvKey      = "TODOS_KEY"
	EnvLogLevel = "TODOS_LOG_LEVEL"
)

// ProjectFile is the config file looked up in the working directory.
const ProjectFile = "todos.yaml"

// Config holds resolved settings.
type Config struct {
	// Database is the path of the SQLite file holding the slot.
	Database string `yaml:"database"`

	// Key is the slot key the list is stored under.
	Key string `yaml:"key"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Source is the config file that was loaded, if any.
	Source string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Database: defaultDatabase(),
		Key:      todo.DefaultKey,
		LogLevel: "warn",
	}
}

// Load resolves configuration from defaults, the config file and the
// environment. An explicit path must exist; implicit locations are optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		if err := loadFile(cfg, file); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.Source = file
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from TODOS_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvKey); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("database is required")
	}
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("key is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel, falling back to warn.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
}

// NewLogger builds the text logger used by the CLI.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// loadFile decodes a YAML file over cfg, rejecting unknown fields.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file keeps defaults
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	candidates := []string{ProjectFile}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "todos", "config.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func defaultDatabase() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "todos", "todos.db")
	}
	return "todos.db"
}
