package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/probelabs/deepscout/internal/runner"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

// SummaryTable renders the per-configuration performance table.
func SummaryTable(results []runner.Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Configuration", "Provider", "Status", "Duration (s)", "Report Length")

	for _, r := range results {
		status := failStyle.Render("failed")
		if r.Success {
			status = successStyle.Render("success")
		}
		length := "N/A"
		if r.Success && r.Report != nil {
			length = fmt.Sprintf("%d chars", r.ReportLength())
		}
		t.Row(r.ConfigName, r.Provider, status, fmt.Sprintf("%.1f", r.Duration.Seconds()), length)
	}

	return t.Render()
}

// AnalysisSummary renders the aggregate findings below the table.
func AnalysisSummary(a runner.Analysis) string {
	if a.SuccessfulConfigs == 0 {
		return dimStyle.Render("No successful runs to analyze.")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Analysis Summary"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- Successful configurations: %d/%d\n", a.SuccessfulConfigs, a.TotalConfigs)
	fmt.Fprintf(&sb, "- Average duration: %.1f seconds\n", a.AverageDuration.Seconds())
	if a.Fastest != nil {
		fmt.Fprintf(&sb, "- Fastest: %s (%.1fs)\n", a.Fastest.ConfigName, a.Fastest.Duration.Seconds())
	}
	if a.Slowest != nil {
		fmt.Fprintf(&sb, "- Slowest: %s (%.1fs)\n", a.Slowest.ConfigName, a.Slowest.Duration.Seconds())
	}

	if len(a.ProviderPerformance) > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Provider Performance"))
		sb.WriteString("\n")
		for _, provider := range sortedProviders(a.ProviderPerformance) {
			stats := a.ProviderPerformance[provider]
			fmt.Fprintf(&sb, "- %s: %.1fs avg, %.0f chars avg, %.0f%% success\n",
				provider, stats.AverageDuration.Seconds(), stats.AverageReportLength, stats.SuccessRate*100)
		}
	}

	return sb.String()
}

// Previews renders bordered panels for the first few successful reports.
func Previews(results []runner.Result, limit, chars int) string {
	var panels []string
	for _, r := range results {
		if !r.Success || r.Report == nil {
			continue
		}
		title := fmt.Sprintf("%s (%.1fs)", r.ConfigName, r.Duration.Seconds())
		body := titleStyle.Render(title) + "\n\n" + preview(r.Report.Text, chars)
		panels = append(panels, panelStyle.Render(body))
		if len(panels) >= limit {
			break
		}
	}
	return strings.Join(panels, "\n")
}

// Panel wraps arbitrary text in the standard bordered panel.
func Panel(title, body string) string {
	if title != "" {
		body = titleStyle.Render(title) + "\n\n" + body
	}
	return panelStyle.Render(body)
}

func sortedProviders(m map[string]runner.ProviderStats) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
