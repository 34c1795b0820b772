package config

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a named research configuration: which models drive each
// pipeline stage, which search backend to use, and how hard to push the
// supervisor loop.
type Preset struct {
	Name               string    `yaml:"name"`
	Provider           string    `yaml:"provider"` // display grouping: OpenAI, Anthropic, Mixed
	ResearchModel      string    `yaml:"research_model"`
	FinalReportModel   string    `yaml:"final_report_model"`
	CompressionModel   string    `yaml:"compression_model"`
	SummarizationModel string    `yaml:"summarization_model"`
	SearchAPI          SearchAPI `yaml:"search_api"`
	MaxIterations      int       `yaml:"max_iterations"`
	MaxConcurrentUnits int       `yaml:"max_concurrent_units"`
}

// Validate checks that a preset is complete enough to run.
func (p Preset) Validate() error {
	if p.ResearchModel == "" {
		return fmt.Errorf("research_model is required")
	}
	if !p.SearchAPI.Valid() {
		return fmt.Errorf("unknown search_api %q", p.SearchAPI)
	}
	if p.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be >= 1, got %d", p.MaxIterations)
	}
	if p.MaxConcurrentUnits < 1 {
		return fmt.Errorf("max_concurrent_units must be >= 1, got %d", p.MaxConcurrentUnits)
	}
	return nil
}

// models not named explicitly fall back to the research model.
func (p Preset) withFallbacks() Preset {
	if p.FinalReportModel == "" {
		p.FinalReportModel = p.ResearchModel
	}
	if p.CompressionModel == "" {
		p.CompressionModel = p.ResearchModel
	}
	if p.SummarizationModel == "" {
		p.SummarizationModel = p.CompressionModel
	}
	return p
}

// Models returns every distinct model ref the preset uses.
func (p Preset) Models() []string {
	p = p.withFallbacks()
	seen := map[string]bool{}
	var out []string
	for _, m := range []string{p.ResearchModel, p.FinalReportModel, p.CompressionModel, p.SummarizationModel} {
		if m != "" && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// builtinPresets is the static catalog. Entries are filtered at runtime by
// which credentials are actually configured.
var builtinPresets = map[string]Preset{
	"fast": {
		Name:               "Fast Research (GPT-4o-mini)",
		Provider:           "OpenAI",
		ResearchModel:      "openai:gpt-4o-mini",
		FinalReportModel:   "openai:gpt-4o-mini",
		CompressionModel:   "openai:gpt-4o-mini",
		SummarizationModel: "openai:gpt-4o-mini",
		SearchAPI:          SearchTavily,
		MaxIterations:      2,
		MaxConcurrentUnits: 3,
	},
	"comprehensive": {
		Name:               "Comprehensive Research (GPT-4o)",
		Provider:           "OpenAI",
		ResearchModel:      "openai:gpt-4o",
		FinalReportModel:   "openai:gpt-4o",
		CompressionModel:   "openai:gpt-4o-mini",
		SummarizationModel: "openai:gpt-4o-mini",
		SearchAPI:          SearchTavily,
		MaxIterations:      3,
		MaxConcurrentUnits: 5,
	},
	"anthropic": {
		Name:               "Anthropic Research (Claude Sonnet)",
		Provider:           "Anthropic",
		ResearchModel:      "anthropic:claude-3-5-sonnet-20241022",
		FinalReportModel:   "anthropic:claude-3-5-sonnet-20241022",
		CompressionModel:   "anthropic:claude-3-5-haiku-20241022",
		SummarizationModel: "anthropic:claude-3-5-haiku-20241022",
		SearchAPI:          SearchTavily,
		MaxIterations:      3,
		MaxConcurrentUnits: 4,
	},
	"mixed": {
		Name:               "Mixed Providers (GPT-4o + Claude)",
		Provider:           "Mixed",
		ResearchModel:      "openai:gpt-4o",
		FinalReportModel:   "anthropic:claude-3-5-sonnet-20241022",
		CompressionModel:   "anthropic:claude-3-5-haiku-20241022",
		SummarizationModel: "openai:gpt-4o-mini",
		SearchAPI:          SearchTavily,
		MaxIterations:      3,
		MaxConcurrentUnits: 5,
	},
	"offline": {
		Name:               "Offline Demo (no API keys)",
		Provider:           "Mock",
		ResearchModel:      "mock:sample",
		FinalReportModel:   "mock:sample",
		CompressionModel:   "mock:sample",
		SummarizationModel: "mock:sample",
		SearchAPI:          SearchNone,
		MaxIterations:      1,
		MaxConcurrentUnits: 1,
	},
}

// Presets returns the merged catalog: builtins plus user-defined entries
// from the config file, with model fallbacks applied. User presets shadow
// builtins with the same id.
func (c *Config) AllPresets() map[string]Preset {
	out := make(map[string]Preset, len(builtinPresets)+len(c.Presets))
	for id, p := range builtinPresets {
		out[id] = p.withFallbacks()
	}
	for id, p := range c.Presets {
		out[id] = p.withFallbacks()
	}
	return out
}

// AvailablePresets returns the preset ids runnable with the configured
// credentials, sorted for stable menus. The offline preset is only offered
// when nothing else is.
func (c *Config) AvailablePresets() []string {
	all := c.AllPresets()
	var ids []string
	for id, p := range all {
		if id == "offline" {
			continue
		}
		if c.PresetAvailable(p) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = append(ids, "offline")
	}
	sort.Strings(ids)
	return ids
}

// PresetAvailable reports whether every model and the search backend of a
// preset have credentials.
func (c *Config) PresetAvailable(p Preset) bool {
	for _, ref := range p.Models() {
		provider, _, ok := strings.Cut(ref, ":")
		if !ok {
			return false
		}
		switch provider {
		case "openai":
			if !c.HasOpenAI() {
				return false
			}
		case "anthropic":
			if !c.HasAnthropic() {
				return false
			}
		case "mock":
			// always available
		default:
			return false
		}
	}
	if p.SearchAPI == SearchNone {
		return true
	}
	return c.HasSearch(p.SearchAPI)
}

// Preset resolves a preset by id, normalizing the id first.
func (c *Config) Preset(id string) (Preset, error) {
	norm := NormalizePresetID(id)
	p, ok := c.AllPresets()[norm]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset: %s", id)
	}
	return p, nil
}
