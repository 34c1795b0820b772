// Package config defines the deepscout configuration model: provider
// credentials, search backends, the research preset catalog, and export
// settings. Config is loaded from YAML with environment overrides and can
// be hot-reloaded via Watcher.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SearchAPI selects the web search backend for a research run.
type SearchAPI string

const (
	SearchTavily     SearchAPI = "tavily"
	SearchBrave      SearchAPI = "brave"
	SearchDuckDuckGo SearchAPI = "duckduckgo"
	SearchNone       SearchAPI = "none"
)

// Valid reports whether s names a known search backend.
func (s SearchAPI) Valid() bool {
	switch s {
	case SearchTavily, SearchBrave, SearchDuckDuckGo, SearchNone:
		return true
	}
	return false
}

// ProviderCredentials holds API access for one LLM provider.
type ProviderCredentials struct {
	APIKey  string `yaml:"api_key"`
	APIBase string `yaml:"api_base,omitempty"`
}

// ProvidersConfig holds credentials for all supported LLM providers.
type ProvidersConfig struct {
	OpenAI    ProviderCredentials `yaml:"openai"`
	Anthropic ProviderCredentials `yaml:"anthropic"`
}

// SearchConfig holds search backend credentials and shared limits.
type SearchConfig struct {
	Tavily struct {
		APIKey string `yaml:"api_key"`
		Depth  string `yaml:"depth,omitempty"` // basic or advanced
	} `yaml:"tavily"`
	Brave struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"brave"`
	MaxResults    int `yaml:"max_results,omitempty"`     // per query, default 5
	CacheTTLMin   int `yaml:"cache_ttl_min,omitempty"`   // default 15
	RatePerMinute int `yaml:"rate_per_minute,omitempty"` // per backend, default 30
}

// ExportConfig controls where run artifacts are written.
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"` // default "demo-results"
}

// HistoryConfig controls the local run history database.
type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"` // default ~/.deepscout/history.db
	Disabled bool   `yaml:"disabled,omitempty"`
}

// Config is the root deepscout configuration.
type Config struct {
	Providers ProvidersConfig   `yaml:"providers"`
	Search    SearchConfig      `yaml:"search"`
	Export    ExportConfig      `yaml:"export"`
	History   HistoryConfig     `yaml:"history"`
	Presets   map[string]Preset `yaml:"presets,omitempty"` // user-defined, merged over builtins
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultHistoryPath returns the standard run history database location.
func DefaultHistoryPath() string {
	return filepath.Join(baseDir(), "history.db")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deepscout"
	}
	return filepath.Join(home, ".deepscout")
}

// Load reads the config file, applies defaults and environment overrides.
// A missing file is not an error: the result is a usable config built from
// defaults and the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only config
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets environment variables override file credentials.
// Env wins over file so CI and one-off runs need no config edits.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Providers.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_BASE"); v != "" {
		c.Providers.OpenAI.APIBase = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Providers.Anthropic.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := os.Getenv("BRAVE_API_KEY"); v != "" {
		c.Search.Brave.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 5
	}
	if c.Search.CacheTTLMin <= 0 {
		c.Search.CacheTTLMin = 15
	}
	if c.Search.RatePerMinute <= 0 {
		c.Search.RatePerMinute = 30
	}
	if c.Search.Tavily.Depth == "" {
		c.Search.Tavily.Depth = "basic"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "demo-results"
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
}

func (c *Config) validate() error {
	for id, p := range c.Presets {
		norm := NormalizePresetID(id)
		if norm != id {
			return fmt.Errorf("preset id %q: must match %q (use %q)", id, presetIDPattern, norm)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", id, err)
		}
	}
	return nil
}

// HasOpenAI reports whether OpenAI credentials are configured.
func (c *Config) HasOpenAI() bool { return c.Providers.OpenAI.APIKey != "" }

// HasAnthropic reports whether Anthropic credentials are configured.
func (c *Config) HasAnthropic() bool { return c.Providers.Anthropic.APIKey != "" }

// HasSearch reports whether any web search backend is usable.
// DuckDuckGo needs no key, so this is always true, but Tavily and Brave
// require credentials.
func (c *Config) HasSearch(api SearchAPI) bool {
	switch api {
	case SearchTavily:
		return c.Search.Tavily.APIKey != ""
	case SearchBrave:
		return c.Search.Brave.APIKey != ""
	case SearchDuckDuckGo:
		return true
	}
	return false
}

// ExpandHome replaces a leading ~ with the user home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
