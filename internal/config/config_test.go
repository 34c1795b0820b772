package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_API_BASE", "ANTHROPIC_API_KEY", "TAVILY_API_KEY", "BRAVE_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("expected default max_results 5, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.CacheTTLMin != 15 {
		t.Errorf("expected default cache ttl 15, got %d", cfg.Search.CacheTTLMin)
	}
	if cfg.Export.Dir != "demo-results" {
		t.Errorf("expected default export dir, got %q", cfg.Export.Dir)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearProviderEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "providers:\n  openai:\n    api_key: from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers.OpenAI.APIKey != "from-env" {
		t.Errorf("expected env to win, got %q", cfg.Providers.OpenAI.APIKey)
	}
}

func TestLoad_InvalidUserPreset(t *testing.T) {
	clearProviderEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "presets:\n  broken:\n    name: Broken\n    search_api: tavily\n    max_iterations: 2\n    max_concurrent_units: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for preset missing research_model")
	}
}

func TestAvailablePresets_NoKeys(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	ids := cfg.AvailablePresets()
	if len(ids) != 1 || ids[0] != "offline" {
		t.Errorf("expected only offline preset without keys, got %v", ids)
	}
}

func TestAvailablePresets_OpenAIAndTavily(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TAVILY_API_KEY", "tvly-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]bool{}
	for _, id := range cfg.AvailablePresets() {
		got[id] = true
	}

	for _, want := range []string{"fast", "comprehensive"} {
		if !got[want] {
			t.Errorf("expected preset %q available, got %v", want, got)
		}
	}
	// anthropic and mixed need an Anthropic key
	for _, not := range []string{"anthropic", "mixed", "offline"} {
		if got[not] {
			t.Errorf("preset %q should not be available, got %v", not, got)
		}
	}
}

func TestPreset_ModelFallbacks(t *testing.T) {
	p := Preset{
		ResearchModel:      "openai:gpt-4o",
		SearchAPI:          SearchTavily,
		MaxIterations:      2,
		MaxConcurrentUnits: 2,
	}.withFallbacks()

	if p.FinalReportModel != "openai:gpt-4o" {
		t.Errorf("final report model should fall back, got %q", p.FinalReportModel)
	}
	if p.SummarizationModel != "openai:gpt-4o" {
		t.Errorf("summarization model should fall back, got %q", p.SummarizationModel)
	}

	models := p.Models()
	if len(models) != 1 {
		t.Errorf("expected 1 distinct model, got %v", models)
	}
}

func TestPresetResolution_NormalizesID(t *testing.T) {
	clearProviderEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	p, err := cfg.Preset("  FAST  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Provider != "OpenAI" {
		t.Errorf("expected OpenAI preset, got %q", p.Provider)
	}

	if _, err := cfg.Preset("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
