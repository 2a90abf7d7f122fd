// Package config defines the typed application configuration and its
// defaults. Values come from the viper instance the CLI initializes.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/boardlens/boardlens/internal/ailink"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig configures the resolution history database.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// CatalogConfig configures the structured catalog client.
type CatalogConfig struct {
	APIToken      string        `mapstructure:"api_token"`
	UserAgent     string        `mapstructure:"user_agent"`
	SearchTimeout time.Duration `mapstructure:"search_timeout"`
	DetailTimeout time.Duration `mapstructure:"detail_timeout"`
}

// SearchConfig configures the web search used for name extraction.
type SearchConfig struct {
	Region     string `mapstructure:"region"`
	MaxResults int    `mapstructure:"max_results"`
}

// AliasConfig locates the alias dictionary file.
type AliasConfig struct {
	Path string `mapstructure:"path"`
}

// TermsConfig locates the offline translation-term file.
type TermsConfig struct {
	Path string `mapstructure:"path"`
}

// PromptsConfig locates the optional prompt override file.
type PromptsConfig struct {
	Path string `mapstructure:"path"`
}

// TranslateConfig controls AI translation of resolved records.
type TranslateConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	ModelKey string `mapstructure:"model_key"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Search    SearchConfig    `mapstructure:"search"`
	Alias     AliasConfig     `mapstructure:"alias"`
	Terms     TermsConfig     `mapstructure:"terms"`
	Prompts   PromptsConfig   `mapstructure:"prompts"`
	Translate TranslateConfig `mapstructure:"translate"`
	AILink    ailink.Config   `mapstructure:"ailink"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DefaultConfigDir is the directory searched for config.yaml.
func DefaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "boardlens")
}

// DefaultStorePath is the history database location when none is configured.
func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "boardlens.db")
}

// DefaultAliasPath is the alias dictionary location when none is configured.
func DefaultAliasPath() string {
	return filepath.Join(DefaultConfigDir(), "aliases.json")
}

// DefaultTermsPath is the terms dictionary location when none is configured.
func DefaultTermsPath() string {
	return filepath.Join(DefaultConfigDir(), "terms.json")
}
