// Package config loads and persists filmstash configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filmstash/filmstash/internal/logging"
	"github.com/spf13/viper"
)

// CatalogConfig selects where and how the catalog document is persisted.
type CatalogConfig struct {
	// Backend is "file" (atomic-rename JSON file) or "badger" (key-value DB).
	Backend string `mapstructure:"backend"`
	// Path is the catalog file path or badger directory. Empty uses the
	// default under the data directory.
	Path string `mapstructure:"path"`
}

// MatchingConfig holds the fuzzy-match thresholds (0-100).
type MatchingConfig struct {
	SearchThreshold         int `mapstructure:"search_threshold"`
	DeleteTitleThreshold    int `mapstructure:"delete_title_threshold"`
	DeleteFilenameThreshold int `mapstructure:"delete_filename_threshold"`
}

// APIConfig configures the HTTP transport.
type APIConfig struct {
	Addr string `mapstructure:"addr"`
	// Token, when set, is required as a Bearer token on mutating endpoints.
	Token string `mapstructure:"token"`
}

// WatchConfig configures ingest directory watching.
type WatchConfig struct {
	Dirs       []string `mapstructure:"dirs"`
	Extensions []string `mapstructure:"extensions"`
}

// ActivityConfig configures the activity log.
type ActivityConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	RetentionDays int  `mapstructure:"retention_days"`
}

// Config is the full filmstash configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Matching MatchingConfig `mapstructure:"matching"`
	API      APIConfig      `mapstructure:"api"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Activity ActivityConfig `mapstructure:"activity"`
	Logging  logging.Config `mapstructure:"logging"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Backend: "file",
		},
		Matching: MatchingConfig{
			SearchThreshold:         60,
			DeleteTitleThreshold:    70,
			DeleteFilenameThreshold: 70,
		},
		API: APIConfig{
			Addr: ":8080",
		},
		Watch: WatchConfig{
			Extensions: []string{".mkv", ".mp4", ".avi", ".webm"},
		},
		Activity: ActivityConfig{
			Enabled:       true,
			RetentionDays: 90,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DataDir returns the filmstash data directory (~/.config/filmstash).
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to get config dir: %w", err)
	}
	return filepath.Join(configDir, "filmstash"), nil
}

// ConfigPath returns the config file location.
func ConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CatalogPath resolves the effective catalog location for c.
func (c *Config) CatalogPath() (string, error) {
	if c.Catalog.Path != "" {
		return c.Catalog.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if c.Catalog.Backend == "badger" {
		return filepath.Join(dir, "catalog.badger"), nil
	}
	return filepath.Join(dir, "catalog.json"), nil
}

// Load reads configuration from the config file, falling back to defaults
// when the file does not exist.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadPath(path)
}

// LoadPath reads configuration from an explicit file path.
func LoadPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as commented TOML.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(c.ToTOML()), 0644)
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# filmstash configuration

[catalog]
# Storage backend: "file" (JSON, atomic replace) or "badger" (key-value DB)
backend = %q
# Catalog location. Empty = default under the data directory.
path = %q

[matching]
# Fuzzy-match thresholds, 0-100
search_threshold = %d
delete_title_threshold = %d
delete_filename_threshold = %d

[api]
addr = %q
# Bearer token required on upload/delete endpoints. Empty disables auth.
token = %q

[watch]
# Directories watched for new media files by "filmstash watch"
dirs = [%s]
extensions = [%s]

[activity]
enabled = %v
retention_days = %d

[logging]
level = %q
file = %q
max_size_mb = %d
max_backups = %d
`,
		c.Catalog.Backend, c.Catalog.Path,
		c.Matching.SearchThreshold, c.Matching.DeleteTitleThreshold, c.Matching.DeleteFilenameThreshold,
		c.API.Addr, c.API.Token,
		quoteList(c.Watch.Dirs), quoteList(c.Watch.Extensions),
		c.Activity.Enabled, c.Activity.RetentionDays,
		c.Logging.Level, c.Logging.File, c.Logging.MaxSizeMB, c.Logging.MaxBackups,
	)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
