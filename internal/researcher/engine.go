package researcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/probelabs/deepscout/internal/config"
	"github.com/probelabs/deepscout/internal/fetch"
	"github.com/probelabs/deepscout/internal/providers"
	"github.com/probelabs/deepscout/internal/search"
)

const (
	// Chars of fetched page text included per unit prompt.
	pageExcerptChars = 6000
	unitMaxTokens    = 1500
	reportMaxTokens  = 8000
)

// Searcher is the slice of the search client the pipeline needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// PageFetcher retrieves full page content for top search hits.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Pipeline is the real research engine. Each stage runs on the model the
// preset assigns to it; web search is optional (SearchNone presets reason
// from model knowledge alone).
type Pipeline struct {
	preset   config.Preset
	llm      *providers.Registry
	searcher Searcher    // nil when the preset disables search
	fetcher  PageFetcher // nil disables page fetching
	progress ProgressFunc
}

// NewPipeline assembles an engine for a preset. searcher and fetcher may
// be nil.
func NewPipeline(preset config.Preset, llm *providers.Registry, searcher Searcher, fetcher PageFetcher, progress ProgressFunc) *Pipeline {
	return &Pipeline{
		preset:   preset,
		llm:      llm,
		searcher: searcher,
		fetcher:  fetcher,
		progress: progress,
	}
}

// unitResult is what one research unit contributes.
type unitResult struct {
	note    string
	sources []string
}

// Research runs the full pipeline for a topic.
func (p *Pipeline) Research(ctx context.Context, topic string) (*Report, error) {
	start := time.Now()

	p.progress.report(StageBrief)
	brief, err := p.generate(ctx, p.preset.ResearchModel, briefSystem, briefPrompt(topic), 0)
	if err != nil {
		return nil, fmt.Errorf("research brief: %w", err)
	}

	var (
		notes   []string
		sources []string
	)

	iterations := 0
	for iter := 0; iter < p.preset.MaxIterations; iter++ {
		p.progress.report(StageSearch)

		system := fmt.Sprintf(supervisorSystem, p.preset.MaxConcurrentUnits)
		plan, err := p.generate(ctx, p.preset.ResearchModel, system, supervisorPrompt(brief, notes), 0)
		if err != nil {
			return nil, fmt.Errorf("supervisor iteration %d: %w", iter+1, err)
		}

		directions := parseDirections(plan, p.preset.MaxConcurrentUnits)
		if len(directions) == 0 {
			slog.Debug("supervisor declared research complete", "iteration", iter+1)
			break
		}
		iterations++

		p.progress.report(StageResearch)
		results := p.runUnits(ctx, directions)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, r := range results {
			notes = append(notes, r.note)
			sources = append(sources, r.sources...)
		}
	}

	p.progress.report(StageSynthesize)
	if countNotesTokens(notes) > compressionTokenBudget {
		compressed, err := p.generate(ctx, p.preset.CompressionModel, compressSystem, compressPrompt(notes), 0)
		if err != nil {
			// Uncompressed notes still produce a report; the budget is
			// advisory, not a hard provider limit for most models.
			slog.Warn("note compression failed, using raw notes", "error", err)
		} else {
			notes = []string{compressed}
		}
	}

	p.progress.report(StageReport)
	text, err := p.generate(ctx, p.preset.FinalReportModel, reportSystem, reportPrompt(topic, brief, notes), reportMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("final report: %w", err)
	}

	return &Report{
		Topic:      topic,
		Brief:      brief,
		Text:       text,
		Sources:    dedupe(sources),
		Notes:      notes,
		Iterations: iterations,
		Duration:   time.Since(start),
	}, nil
}

// runUnits executes research directions concurrently, bounded by the
// preset's unit limit. A failed unit is logged and skipped; the loop
// continues with whatever the others produced.
func (p *Pipeline) runUnits(ctx context.Context, directions []string) []unitResult {
	var (
		mu      sync.Mutex
		results []unitResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.preset.MaxConcurrentUnits)

	for _, direction := range directions {
		g.Go(func() error {
			r, err := p.runUnit(gctx, direction)
			if err != nil {
				slog.Warn("research unit failed", "direction", direction, "error", err)
				return nil
			}
			mu.Lock()
			results = append(results, *r)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return results
}

func (p *Pipeline) runUnit(ctx context.Context, direction string) (*unitResult, error) {
	var (
		evidence string
		sources  []string
	)

	if p.searcher != nil {
		hits, err := p.searcher.Search(ctx, direction)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		evidence = search.FormatResults(direction, hits)
		for _, h := range hits {
			sources = append(sources, h.URL)
		}

		if p.fetcher != nil && len(hits) > 0 {
			if page, err := p.fetcher.Fetch(ctx, hits[0].URL); err != nil {
				slog.Debug("page fetch skipped", "url", hits[0].URL, "error", err)
			} else {
				excerpt := page.Text
				if len(excerpt) > pageExcerptChars {
					excerpt = excerpt[:pageExcerptChars]
				}
				evidence += fmt.Sprintf("\nFull content of top result (%s):\n%s\n", page.URL, excerpt)
			}
		}
	} else {
		evidence = "(no web search available; answer from your own knowledge and say so)"
	}

	note, err := p.generate(ctx, p.preset.SummarizationModel, unitSystem, unitPrompt(direction, evidence), unitMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	return &unitResult{
		note:    fmt.Sprintf("Question: %s\n%s", direction, note),
		sources: sources,
	}, nil
}

func (p *Pipeline) generate(ctx context.Context, model, system, prompt string, maxTokens int) (string, error) {
	resp, err := p.llm.Generate(ctx, model, providers.Request{
		System:    system,
		Prompt:    prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
