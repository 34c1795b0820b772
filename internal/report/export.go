// Package report renders comparison results for the terminal and exports
// them as timestamped JSON and Markdown files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/probelabs/deepscout/internal/runner"
)

const previewChars = 500

// resultJSON is the wire form of one run in the JSON export.
type resultJSON struct {
	ConfigName   string  `json:"config_name"`
	Provider     string  `json:"provider"`
	Duration     float64 `json:"duration"` // seconds
	Success      bool    `json:"success"`
	Error        string  `json:"error,omitempty"`
	ReportLength int     `json:"report_length"`
}

type providerStatsJSON struct {
	AverageDuration     float64 `json:"average_duration"`
	AverageReportLength float64 `json:"average_report_length"`
	SuccessRate         float64 `json:"success_rate"`
}

type analysisJSON struct {
	TotalConfigs        int                          `json:"total_configs"`
	SuccessfulConfigs   int                          `json:"successful_configs"`
	FailedConfigs       int                          `json:"failed_configs"`
	AverageDuration     float64                      `json:"average_duration"`
	FastestConfig       string                       `json:"fastest_config,omitempty"`
	SlowestConfig       string                       `json:"slowest_config,omitempty"`
	LongestReport       string                       `json:"longest_report,omitempty"`
	ShortestReport      string                       `json:"shortest_report,omitempty"`
	ProviderPerformance map[string]providerStatsJSON `json:"provider_performance"`
}

type comparisonJSON struct {
	Topic     string       `json:"topic"`
	Timestamp int64        `json:"timestamp"`
	Analysis  analysisJSON `json:"analysis"`
	Results   []resultJSON `json:"results"`
}

func toAnalysisJSON(a runner.Analysis) analysisJSON {
	out := analysisJSON{
		TotalConfigs:        a.TotalConfigs,
		SuccessfulConfigs:   a.SuccessfulConfigs,
		FailedConfigs:       a.FailedConfigs,
		AverageDuration:     a.AverageDuration.Seconds(),
		ProviderPerformance: make(map[string]providerStatsJSON, len(a.ProviderPerformance)),
	}
	if a.Fastest != nil {
		out.FastestConfig = a.Fastest.ConfigName
	}
	if a.Slowest != nil {
		out.SlowestConfig = a.Slowest.ConfigName
	}
	if a.LongestReport != nil {
		out.LongestReport = a.LongestReport.ConfigName
	}
	if a.ShortestReport != nil {
		out.ShortestReport = a.ShortestReport.ConfigName
	}
	for provider, stats := range a.ProviderPerformance {
		out.ProviderPerformance[provider] = providerStatsJSON{
			AverageDuration:     stats.AverageDuration.Seconds(),
			AverageReportLength: stats.AverageReportLength,
			SuccessRate:         stats.SuccessRate,
		}
	}
	return out
}

// ExportPaths names the files one export produced.
type ExportPaths struct {
	JSON     string
	Markdown string
}

// ExportComparison writes the JSON and Markdown artifacts for a batch
// under <dir>/comparisons/.
func ExportComparison(dir, topic string, results []runner.Result, analysis runner.Analysis, now time.Time) (ExportPaths, error) {
	outDir := filepath.Join(dir, "comparisons")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ExportPaths{}, fmt.Errorf("create export dir: %w", err)
	}

	base := exportBasename("comparison", topic, now)
	paths := ExportPaths{
		JSON:     filepath.Join(outDir, base+".json"),
		Markdown: filepath.Join(outDir, base+".md"),
	}

	doc := comparisonJSON{
		Topic:     topic,
		Timestamp: now.Unix(),
		Analysis:  toAnalysisJSON(analysis),
	}
	for _, r := range results {
		doc.Results = append(doc.Results, resultJSON{
			ConfigName:   r.ConfigName,
			Provider:     r.Provider,
			Duration:     r.Duration.Seconds(),
			Success:      r.Success,
			Error:        r.Error,
			ReportLength: r.ReportLength(),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ExportPaths{}, err
	}
	if err := os.WriteFile(paths.JSON, data, 0o644); err != nil {
		return ExportPaths{}, fmt.Errorf("write %s: %w", paths.JSON, err)
	}

	if err := os.WriteFile(paths.Markdown, []byte(comparisonMarkdown(topic, results, analysis, now)), 0o644); err != nil {
		return ExportPaths{}, fmt.Errorf("write %s: %w", paths.Markdown, err)
	}

	return paths, nil
}

// comparisonMarkdown renders the Markdown artifact: summary, a section
// per configuration with preview or error, and an analysis footer.
func comparisonMarkdown(topic string, results []runner.Result, analysis runner.Analysis, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Model Comparison Report: %s\n\n", topic)
	fmt.Fprintf(&sb, "Generated at: %s\n\n", now.Format(time.ANSIC))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Total configurations tested: %d\n", analysis.TotalConfigs)
	fmt.Fprintf(&sb, "- Successful runs: %d\n", analysis.SuccessfulConfigs)
	fmt.Fprintf(&sb, "- Failed runs: %d\n", analysis.FailedConfigs)
	fmt.Fprintf(&sb, "- Average duration: %.1f seconds\n\n", analysis.AverageDuration.Seconds())

	sb.WriteString("## Configuration Results\n\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "### %s\n", r.ConfigName)
		fmt.Fprintf(&sb, "- Provider: %s\n", r.Provider)
		fmt.Fprintf(&sb, "- Duration: %.1f seconds\n", r.Duration.Seconds())
		status := "Failed"
		if r.Success {
			status = "Success"
		}
		fmt.Fprintf(&sb, "- Status: %s\n", status)

		switch {
		case r.Success && r.Report != nil:
			fmt.Fprintf(&sb, "- Report length: %d characters\n", r.ReportLength())
			sb.WriteString("\n#### Report Preview:\n")
			fmt.Fprintf(&sb, "```\n%s\n```\n", preview(r.Report.Text, previewChars))
		case !r.Success:
			fmt.Fprintf(&sb, "- Error: %s\n", r.Error)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Analysis\n\n")
	if analysis.Fastest != nil {
		fmt.Fprintf(&sb, "**Fastest configuration:** %s (%.1fs)\n\n",
			analysis.Fastest.ConfigName, analysis.Fastest.Duration.Seconds())
	}
	if len(analysis.ProviderPerformance) > 0 {
		sb.WriteString("**Provider Performance:**\n")
		for _, provider := range sortedProviders(analysis.ProviderPerformance) {
			stats := analysis.ProviderPerformance[provider]
			fmt.Fprintf(&sb, "- %s: %.1fs average duration\n", provider, stats.AverageDuration.Seconds())
		}
	}

	return sb.String()
}

func preview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// SaveReport writes a single research report under <dir>/reports/ and
// returns the path.
func SaveReport(dir, topic, text string, now time.Time) (string, error) {
	outDir := filepath.Join(dir, "reports")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(outDir, exportBasename("report", topic, now)+".md")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
