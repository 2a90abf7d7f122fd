// Package ailink provides the model registry and completion service used by
// the extraction and translation steps.
package ailink

import "time"

// ModelConfig configures one named model entry.
type ModelConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`
}

// Config is the ailink section of the application config. Models are keyed
// by purpose name; the "utils" key is the preferred general-purpose model.
type Config struct {
	Models         map[string]ModelConfig `mapstructure:"models" yaml:"models"`
	DefaultTimeout time.Duration          `mapstructure:"default_timeout" yaml:"default_timeout"`
}

// usable reports whether an entry can serve requests.
func (m ModelConfig) usable() bool {
	return m.Enabled && m.BaseURL != "" && m.Model != ""
}
