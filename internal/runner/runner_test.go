package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/probelabs/deepscout/internal/config"
	"github.com/probelabs/deepscout/internal/researcher"
)

type stubEngine struct {
	report *researcher.Report
	err    error
}

func (s *stubEngine) Research(ctx context.Context, topic string) (*researcher.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	r := *s.report
	r.Topic = topic
	return &r, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "TAVILY_API_KEY", "BRAVE_API_KEY"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func factoryFor(engines map[string]researcher.Engine) EngineFactory {
	return func(preset config.Preset, progress researcher.ProgressFunc) (researcher.Engine, error) {
		e, ok := engines[preset.Name]
		if !ok {
			return nil, errors.New("no engine for " + preset.Name)
		}
		return e, nil
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	cfg := testConfig(t)
	cfg.Presets = map[string]config.Preset{
		"good": {Name: "Good", Provider: "OpenAI", ResearchModel: "openai:gpt-4o-mini", SearchAPI: config.SearchNone, MaxIterations: 1, MaxConcurrentUnits: 1},
		"bad":  {Name: "Bad", Provider: "OpenAI", ResearchModel: "openai:gpt-4o", SearchAPI: config.SearchNone, MaxIterations: 1, MaxConcurrentUnits: 1},
	}

	engines := map[string]researcher.Engine{
		"Good": &stubEngine{report: &researcher.Report{Text: "# Report body"}},
		"Bad":  &stubEngine{err: errors.New("provider exploded")},
	}

	var finished []string
	r := NewWithFactory(cfg, factoryFor(engines), Events{
		OnFinished: func(res Result) { finished = append(finished, res.PresetID) },
	})

	results, err := r.Run(context.Background(), "some topic", []string{"good", "bad"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if !results[0].Success || results[0].ReportLength() != len("# Report body") {
		t.Errorf("good run: %+v", results[0])
	}
	if results[0].RunID == "" {
		t.Error("missing run id")
	}
	if results[1].Success || results[1].Error != "provider exploded" {
		t.Errorf("bad run: %+v", results[1])
	}
	if len(finished) != 2 {
		t.Errorf("OnFinished fired %d times, want 2", len(finished))
	}
}

func TestRunUnknownPreset(t *testing.T) {
	cfg := testConfig(t)
	r := NewWithFactory(cfg, factoryFor(nil), Events{})

	results, err := r.Run(context.Background(), "topic", []string{"no-such-preset"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 || results[0].Success {
		t.Fatalf("results = %+v", results)
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewWithFactory(cfg, factoryFor(nil), Events{})
	results, err := r.Run(ctx, "topic", []string{"fast", "comprehensive"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want none", results)
	}
}

func TestDefaultFactoryOffline(t *testing.T) {
	cfg := testConfig(t)
	r := New(cfg, Events{})

	preset, err := cfg.Preset("offline")
	if err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	engine, err := r.factory(preset, nil)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	if _, ok := engine.(*researcher.SampleEngine); !ok {
		t.Fatalf("engine = %T, want *researcher.SampleEngine", engine)
	}
}

func TestAnalyze(t *testing.T) {
	results := []Result{
		{ConfigName: "Fast", Provider: "OpenAI", Duration: 2 * time.Second, Success: true,
			Report: &researcher.Report{Text: string(make([]byte, 1000))}},
		{ConfigName: "Comprehensive", Provider: "OpenAI", Duration: 10 * time.Second, Success: true,
			Report: &researcher.Report{Text: string(make([]byte, 4000))}},
		{ConfigName: "Claude", Provider: "Anthropic", Duration: 6 * time.Second, Success: false, Error: "timeout"},
	}

	a := Analyze(results)

	if a.TotalConfigs != 3 || a.SuccessfulConfigs != 2 || a.FailedConfigs != 1 {
		t.Errorf("counts = %d/%d/%d", a.TotalConfigs, a.SuccessfulConfigs, a.FailedConfigs)
	}
	if a.AverageDuration != 6*time.Second {
		t.Errorf("AverageDuration = %v", a.AverageDuration)
	}
	if a.Fastest == nil || a.Fastest.ConfigName != "Fast" {
		t.Errorf("Fastest = %+v", a.Fastest)
	}
	if a.Slowest == nil || a.Slowest.ConfigName != "Comprehensive" {
		t.Errorf("Slowest = %+v", a.Slowest)
	}
	if a.LongestReport == nil || a.LongestReport.ConfigName != "Comprehensive" {
		t.Errorf("LongestReport = %+v", a.LongestReport)
	}
	if a.ShortestReport == nil || a.ShortestReport.ConfigName != "Fast" {
		t.Errorf("ShortestReport = %+v", a.ShortestReport)
	}

	openai := a.ProviderPerformance["OpenAI"]
	if openai.SuccessRate != 1.0 {
		t.Errorf("OpenAI success rate = %v", openai.SuccessRate)
	}
	if openai.AverageReportLength != 2500 {
		t.Errorf("OpenAI avg report length = %v", openai.AverageReportLength)
	}
	if anthropic, ok := a.ProviderPerformance["Anthropic"]; ok {
		t.Errorf("Anthropic should have no stats without successes: %+v", anthropic)
	}
}

func TestAnalyzeEmptyAndAllFailed(t *testing.T) {
	for _, results := range [][]Result{
		nil,
		{{ConfigName: "X", Success: false, Error: "boom"}},
	} {
		a := Analyze(results)
		if a.SuccessfulConfigs != 0 || a.AverageDuration != 0 {
			t.Errorf("Analyze(%v) = %+v", results, a)
		}
		if a.Fastest != nil || a.LongestReport != nil {
			t.Errorf("pointer fields should be nil: %+v", a)
		}
	}
}
