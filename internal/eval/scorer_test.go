package eval

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScoreDeterministic(t *testing.T) {
	in := SampleReports[0]
	a := Score(in)
	b := Score(in)
	if a != b {
		t.Fatalf("scores differ across calls: %+v vs %+v", a, b)
	}
}

func TestScoreBounds(t *testing.T) {
	for _, in := range SampleReports {
		s := Score(in)
		for name, v := range map[string]float64{
			"comprehensiveness": s.Comprehensiveness,
			"source_diversity":  s.SourceDiversity,
			"structure_quality": s.StructureQuality,
			"accuracy":          s.Accuracy,
			"clarity":           s.Clarity,
			"overall":           s.Overall,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s: %s = %v out of [0,1]", in.ID, name, v)
			}
		}
	}
}

func TestScoreEmptyReport(t *testing.T) {
	s := Score(ReportInput{ID: "empty"})
	if s.Overall != 0 {
		t.Errorf("empty report overall = %v, want 0", s.Overall)
	}
}

func TestScoreOrdersByQuality(t *testing.T) {
	structured := ReportInput{
		Text: `# Title

## Section One
The first study measured a 25% improvement across 1200 sites. Results held for 3 years.

## Section Two
- finding one from https://example.org/paper
- finding two with 40% gains

## Section Three
Costs fell by 12%.

## Conclusion
The 2024 data supports adoption.`,
		SourceCount: 15,
	}
	flat := ReportInput{
		Text:        "Some general thoughts about the topic without much substance or particular findings to speak of.",
		SourceCount: 1,
	}

	if Score(structured).Overall <= Score(flat).Overall {
		t.Errorf("structured report should outscore flat prose: %v vs %v",
			Score(structured).Overall, Score(flat).Overall)
	}
}

func TestStructureScore(t *testing.T) {
	full := "# T\n\n## A\n\ntext\n\n## B\n\n- item\n\n## C\n\nmore\n\n## D\n\nend"
	if got := structureScore(full); got < 0.9 {
		t.Errorf("well-structured score = %v, want >= 0.9", got)
	}
	if got := structureScore("just a sentence"); got > 0.3 {
		t.Errorf("unstructured score = %v, want <= 0.3", got)
	}
}

func TestRecommendationBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.9, "Excellent"},
		{0.86, "Excellent"},
		{0.85, "Good"},
		{0.76, "Good"},
		{0.75, "Needs Improvement"},
		{0.2, "Needs Improvement"},
	}
	for _, tc := range cases {
		if got := Recommendation(tc.score); got != tc.want {
			t.Errorf("Recommendation(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAnalyzeModels(t *testing.T) {
	evals := []Evaluation{
		{ReportInput: ReportInput{Model: "openai:gpt-4o"}, Scores: Scores{Overall: 0.9}},
		{ReportInput: ReportInput{Model: "openai:gpt-4o"}, Scores: Scores{Overall: 0.8}},
		{ReportInput: ReportInput{Model: "openai:gpt-4o-mini"}, Scores: Scores{Overall: 0.6}},
	}

	perf := AnalyzeModels(evals)
	if len(perf) != 2 {
		t.Fatalf("got %d models, want 2", len(perf))
	}
	if perf[0].Model != "openai:gpt-4o" || perf[0].Reports != 2 {
		t.Errorf("best model = %+v", perf[0])
	}
	if perf[0].AverageScore < 0.849 || perf[0].AverageScore > 0.851 {
		t.Errorf("average = %v, want 0.85", perf[0].AverageScore)
	}
	if perf[1].Recommendation != "Needs Improvement" {
		t.Errorf("recommendation = %q", perf[1].Recommendation)
	}
}

func TestBestEmpty(t *testing.T) {
	if Best(nil) != nil {
		t.Error("Best(nil) should be nil")
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	evals := Evaluate(SampleReports)

	path, err := Export(dir, evals, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasSuffix(path, "evaluation_results.json") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var parsed struct {
		Summary struct {
			TotalReports int     `json:"total_reports"`
			AverageScore float64 `json:"average_score"`
			BestModel    string  `json:"best_model"`
			Timestamp    string  `json:"evaluation_timestamp"`
		} `json:"evaluation_summary"`
		Results []map[string]any `json:"detailed_results"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if parsed.Summary.TotalReports != 3 || len(parsed.Results) != 3 {
		t.Errorf("summary = %+v, results = %d", parsed.Summary, len(parsed.Results))
	}
	if parsed.Summary.BestModel == "" {
		t.Error("best_model missing")
	}
	if parsed.Summary.Timestamp != "2025-06-01 12:00:00" {
		t.Errorf("timestamp = %q", parsed.Summary.Timestamp)
	}
}
