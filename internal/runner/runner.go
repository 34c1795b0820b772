// Package runner executes a topic against one or more research presets,
// timing each run and recording failures without aborting the batch.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/probelabs/deepscout/internal/config"
	"github.com/probelabs/deepscout/internal/fetch"
	"github.com/probelabs/deepscout/internal/providers"
	"github.com/probelabs/deepscout/internal/researcher"
	"github.com/probelabs/deepscout/internal/search"
)

// Result records one preset's run. Error is empty on success.
type Result struct {
	RunID      string
	PresetID   string
	ConfigName string
	Provider   string
	Duration   time.Duration
	Success    bool
	Error      string
	Report     *researcher.Report // nil on failure
}

// ReportLength is the character length of the final report, 0 on failure.
func (r Result) ReportLength() int {
	if r.Report == nil {
		return 0
	}
	return len(r.Report.Text)
}

// EngineFactory builds an engine for a preset. Swappable in tests.
type EngineFactory func(preset config.Preset, progress researcher.ProgressFunc) (researcher.Engine, error)

// Events lets the caller observe batch progress. Any field may be nil.
type Events struct {
	OnStart    func(presetID string, preset config.Preset)
	OnStage    func(presetID string, stage researcher.Stage)
	OnFinished func(result Result)
}

// Runner runs presets sequentially against a topic.
type Runner struct {
	cfg     *config.Config
	factory EngineFactory
	events  Events
}

// New builds a runner with the default engine factory: offline presets
// get the sample engine, everything else gets the full pipeline with a
// shared provider registry.
func New(cfg *config.Config, events Events) *Runner {
	registry := providers.NewRegistry(cfg.Providers)
	ttl := time.Duration(cfg.Search.CacheTTLMin) * time.Minute

	factory := func(preset config.Preset, progress researcher.ProgressFunc) (researcher.Engine, error) {
		if isOffline(preset) {
			return researcher.NewSampleEngine(progress, 300*time.Millisecond), nil
		}

		var searcher researcher.Searcher
		if preset.SearchAPI != config.SearchNone {
			client, err := search.NewClient(cfg.Search, preset.SearchAPI)
			if err != nil {
				return nil, err
			}
			searcher = client
		}

		return researcher.NewPipeline(preset, registry, searcher, fetch.New(0, ttl), progress), nil
	}

	return &Runner{cfg: cfg, factory: factory, events: events}
}

// NewWithFactory builds a runner around a custom engine factory.
func NewWithFactory(cfg *config.Config, factory EngineFactory, events Events) *Runner {
	return &Runner{cfg: cfg, factory: factory, events: events}
}

// isOffline reports whether every model the preset names is mock-backed.
func isOffline(preset config.Preset) bool {
	for _, ref := range preset.Models() {
		if !strings.HasPrefix(ref, "mock:") {
			return false
		}
	}
	return true
}

// Run executes the topic on each preset in order. A preset failure is
// recorded and the batch continues; only context cancellation stops it
// early.
func (r *Runner) Run(ctx context.Context, topic string, presetIDs []string) ([]Result, error) {
	var results []Result

	for _, id := range presetIDs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		preset, err := r.cfg.Preset(id)
		if err != nil {
			results = append(results, failedResult(id, config.Preset{}, 0, err))
			continue
		}

		if r.events.OnStart != nil {
			r.events.OnStart(id, preset)
		}

		result := r.runOne(ctx, topic, id, preset)
		results = append(results, result)

		if r.events.OnFinished != nil {
			r.events.OnFinished(result)
		}
	}

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, topic, id string, preset config.Preset) Result {
	var progress researcher.ProgressFunc
	if r.events.OnStage != nil {
		progress = func(stage researcher.Stage) { r.events.OnStage(id, stage) }
	}

	start := time.Now()

	engine, err := r.factory(preset, progress)
	if err != nil {
		return failedResult(id, preset, time.Since(start), fmt.Errorf("build engine: %w", err))
	}

	report, err := engine.Research(ctx, topic)
	elapsed := time.Since(start)
	if err != nil {
		slog.Warn("research run failed", "preset", id, "duration", elapsed, "error", err)
		return failedResult(id, preset, elapsed, err)
	}

	slog.Info("research run completed", "preset", id, "duration", elapsed, "report_chars", len(report.Text))
	return Result{
		RunID:      uuid.NewString(),
		PresetID:   id,
		ConfigName: preset.Name,
		Provider:   preset.Provider,
		Duration:   elapsed,
		Success:    true,
		Report:     report,
	}
}

func failedResult(id string, preset config.Preset, elapsed time.Duration, err error) Result {
	name := preset.Name
	if name == "" {
		name = id
	}
	return Result{
		RunID:      uuid.NewString(),
		PresetID:   id,
		ConfigName: name,
		Provider:   preset.Provider,
		Duration:   elapsed,
		Success:    false,
		Error:      err.Error(),
	}
}
