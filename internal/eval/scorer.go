// Package eval scores research reports on comprehensiveness, source
// diversity, structure, accuracy and clarity. Scoring is deterministic:
// the same report always gets the same numbers.
package eval

import (
	"regexp"
	"sort"
	"strings"
)

// ReportInput is a report to be scored.
type ReportInput struct {
	ID           string  `json:"id"`
	Topic        string  `json:"topic"`
	Model        string  `json:"model"`
	SearchAPI    string  `json:"search_api"`
	Text         string  `json:"final_report"`
	SourceCount  int     `json:"sources_count"`
	ResearchTime float64 `json:"research_time"`
}

// Scores holds the per-dimension results, each in [0,1].
type Scores struct {
	Comprehensiveness float64 `json:"comprehensiveness"`
	SourceDiversity   float64 `json:"source_diversity"`
	StructureQuality  float64 `json:"structure_quality"`
	Accuracy          float64 `json:"accuracy"`
	Clarity           float64 `json:"clarity"`
	Overall           float64 `json:"overall_score"`
}

// Evaluation pairs a report with its scores.
type Evaluation struct {
	ReportInput
	Scores
}

var (
	reHeadingLine = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	reListLine    = regexp.MustCompile(`(?m)^\s*(?:[-*]|\d+\.)\s+\S`)
	reNumber      = regexp.MustCompile(`\d+(?:\.\d+)?%?`)
	reNamedSource = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)|https?://\S+`)
	reSentenceEnd = regexp.MustCompile(`[.!?]+\s`)
)

// Score evaluates one report.
func Score(in ReportInput) Scores {
	text := strings.TrimSpace(in.Text)
	words := len(strings.Fields(text))

	s := Scores{
		Comprehensiveness: clamp01(float64(len(text)) / 1000),
		SourceDiversity:   clamp01(float64(in.SourceCount) / 20),
		StructureQuality:  structureScore(text),
		Accuracy:          accuracyScore(text, words),
		Clarity:           clarityScore(text, words),
	}
	s.Overall = (s.Comprehensiveness + s.SourceDiversity + s.StructureQuality + s.Accuracy + s.Clarity) / 5
	return s
}

// structureScore rewards a title, multiple headed sections and list
// formatting.
func structureScore(text string) float64 {
	if text == "" {
		return 0
	}

	score := 0.0
	if strings.HasPrefix(text, "# ") {
		score += 0.3
	}

	headings := len(reHeadingLine.FindAllString(text, -1))
	switch {
	case headings >= 5:
		score += 0.4
	case headings >= 3:
		score += 0.3
	case headings >= 1:
		score += 0.15
	}

	if reListLine.MatchString(text) {
		score += 0.15
	}
	if len(strings.Split(text, "\n\n")) >= 4 {
		score += 0.15
	}
	return clamp01(score)
}

// accuracyScore is a specificity proxy: density of concrete figures and
// identifiable sources per hundred words.
func accuracyScore(text string, words int) float64 {
	if words == 0 {
		return 0
	}

	figures := len(reNumber.FindAllString(text, -1))
	citations := len(reNamedSource.FindAllString(text, -1))

	density := float64(figures+3*citations) / float64(words) * 100
	// Around 5 concrete datapoints per 100 words saturates the score.
	return clamp01(density / 5)
}

// clarityScore favors prose with a readable average sentence length.
func clarityScore(text string, words int) float64 {
	if words == 0 {
		return 0
	}

	sentences := len(reSentenceEnd.FindAllString(text, -1)) + 1
	avgLen := float64(words) / float64(sentences)

	switch {
	case avgLen >= 10 && avgLen <= 25:
		return 0.95
	case avgLen >= 6 && avgLen <= 35:
		return 0.8
	default:
		return 0.6
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Evaluate scores a batch of reports.
func Evaluate(reports []ReportInput) []Evaluation {
	out := make([]Evaluation, 0, len(reports))
	for _, r := range reports {
		out = append(out, Evaluation{ReportInput: r, Scores: Score(r)})
	}
	return out
}

// Best returns the highest-scoring evaluation, or nil for empty input.
func Best(evals []Evaluation) *Evaluation {
	var best *Evaluation
	for i := range evals {
		if best == nil || evals[i].Overall > best.Overall {
			best = &evals[i]
		}
	}
	return best
}

// ModelPerformance aggregates evaluations per model.
type ModelPerformance struct {
	Model          string  `json:"model"`
	Reports        int     `json:"reports"`
	AverageScore   float64 `json:"average_score"`
	Recommendation string  `json:"recommendation"`
}

// Recommendation bands an average score.
func Recommendation(score float64) string {
	switch {
	case score > 0.85:
		return "Excellent"
	case score > 0.75:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// AnalyzeModels groups evaluations by model, sorted best first.
func AnalyzeModels(evals []Evaluation) []ModelPerformance {
	type acc struct {
		total float64
		count int
	}
	byModel := make(map[string]*acc)
	for _, e := range evals {
		a, ok := byModel[e.Model]
		if !ok {
			a = &acc{}
			byModel[e.Model] = a
		}
		a.total += e.Overall
		a.count++
	}

	out := make([]ModelPerformance, 0, len(byModel))
	for model, a := range byModel {
		avg := a.total / float64(a.count)
		out = append(out, ModelPerformance{
			Model:          model,
			Reports:        a.count,
			AverageScore:   avg,
			Recommendation: Recommendation(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageScore != out[j].AverageScore {
			return out[i].AverageScore > out[j].AverageScore
		}
		return out[i].Model < out[j].Model
	})
	return out
}
