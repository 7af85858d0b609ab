package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .shelf/).
	userConfigFile = ".shelfconfig.yaml"

	// envPrefix prefixes environment overrides, e.g. SHELF_BACKEND.
	envPrefix = "SHELF"

	// Default configuration values
	DefaultBackend    = BackendFile
	DefaultSQLitePath = ".shelf/shelf.db"
	DefaultHTTPAddr   = "127.0.0.1:8080"
	DefaultColor      = true
)

// Config represents user configuration from .shelfconfig.yaml and SHELF_* variables.
// This file is user-managed and never written by shelf.
type Config struct {
	// Backend selects where the book list is stored: file, sqlite, postgres or memory.
	Backend string `mapstructure:"backend"`

	// SQLitePath is the database file for the sqlite backend, relative to the shelf root.
	SQLitePath string `mapstructure:"sqlite_path"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `mapstructure:"postgres_dsn"`

	// HTTPAddr is the listen address for `shelf serve`.
	HTTPAddr string `mapstructure:"http_addr"`

	// BackupSchedule is a cron expression for periodic backups while serving. Empty disables.
	BackupSchedule string `mapstructure:"backup_schedule"`

	// Color enables ANSI colors on terminals.
	Color bool `mapstructure:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend:    DefaultBackend,
		SQLitePath: DefaultSQLitePath,
		HTTPAddr:   DefaultHTTPAddr,
		Color:      DefaultColor,
	}
}

// newViper builds a viper instance seeded with defaults and environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("sqlite_path", def.SQLitePath)
	v.SetDefault("postgres_dsn", def.PostgresDSN)
	v.SetDefault("http_addr", def.HTTPAddr)
	v.SetDefault("backup_schedule", def.BackupSchedule)
	v.SetDefault("color", def.Color)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads .shelfconfig.yaml from dir if it exists, otherwise returns defaults.
// Partial config files are merged with defaults; SHELF_* variables win over the file.
func LoadConfig(dir string) (*Config, error) {
	v := newViper()

	configPath := filepath.Join(dir, userConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", userConfigFile, err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	return cfg, nil
}

// LoadConfig loads the user config next to this storage's .shelf/ directory.
func (s *Storage) LoadConfig() (*Config, error) {
	return LoadConfig(s.root)
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
