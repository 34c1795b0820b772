package runner

import "time"

// ProviderStats aggregates successful runs for one provider group.
type ProviderStats struct {
	AverageDuration     time.Duration `json:"average_duration"`
	AverageReportLength float64       `json:"average_report_length"`
	SuccessRate         float64       `json:"success_rate"`
}

// Analysis summarizes a batch of results. Pointer fields are nil when no
// successful run exists to populate them.
type Analysis struct {
	TotalConfigs      int           `json:"total_configs"`
	SuccessfulConfigs int           `json:"successful_configs"`
	FailedConfigs     int           `json:"failed_configs"`
	AverageDuration   time.Duration `json:"average_duration"`
	Fastest           *Result       `json:"-"`
	Slowest           *Result       `json:"-"`
	LongestReport     *Result       `json:"-"`
	ShortestReport    *Result       `json:"-"`

	ProviderPerformance map[string]ProviderStats `json:"provider_performance"`
}

// Analyze aggregates results. Empty or all-failed input yields zeroed
// stats without division by zero.
func Analyze(results []Result) Analysis {
	a := Analysis{
		TotalConfigs:        len(results),
		ProviderPerformance: make(map[string]ProviderStats),
	}

	var (
		successes     []*Result
		totalDuration time.Duration
	)
	for i := range results {
		r := &results[i]
		if !r.Success {
			a.FailedConfigs++
			continue
		}
		a.SuccessfulConfigs++
		successes = append(successes, r)
		totalDuration += r.Duration
	}

	if len(successes) == 0 {
		return a
	}
	a.AverageDuration = totalDuration / time.Duration(len(successes))

	for _, r := range successes {
		if a.Fastest == nil || r.Duration < a.Fastest.Duration {
			a.Fastest = r
		}
		if a.Slowest == nil || r.Duration > a.Slowest.Duration {
			a.Slowest = r
		}
		if r.Report == nil {
			continue
		}
		if a.LongestReport == nil || r.ReportLength() > a.LongestReport.ReportLength() {
			a.LongestReport = r
		}
		if a.ShortestReport == nil || r.ReportLength() < a.ShortestReport.ReportLength() {
			a.ShortestReport = r
		}
	}

	type acc struct {
		count         int
		totalDuration time.Duration
		reportChars   int
		reportCount   int
	}
	byProvider := make(map[string]*acc)
	attempts := make(map[string]int)
	for i := range results {
		attempts[results[i].Provider]++
	}
	for _, r := range successes {
		st, ok := byProvider[r.Provider]
		if !ok {
			st = &acc{}
			byProvider[r.Provider] = st
		}
		st.count++
		st.totalDuration += r.Duration
		if r.Report != nil {
			st.reportChars += r.ReportLength()
			st.reportCount++
		}
	}
	for provider, st := range byProvider {
		stats := ProviderStats{
			AverageDuration: st.totalDuration / time.Duration(st.count),
			SuccessRate:     float64(st.count) / float64(attempts[provider]),
		}
		if st.reportCount > 0 {
			stats.AverageReportLength = float64(st.reportChars) / float64(st.reportCount)
		}
		a.ProviderPerformance[provider] = stats
	}

	return a
}
