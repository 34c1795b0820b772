package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Summary is the header of an exported evaluation file.
type Summary struct {
	TotalReports int     `json:"total_reports"`
	AverageScore float64 `json:"average_score"`
	BestModel    string  `json:"best_model"`
	Timestamp    string  `json:"evaluation_timestamp"`
}

type exportFile struct {
	Summary Summary      `json:"evaluation_summary"`
	Results []Evaluation `json:"detailed_results"`
}

// Summarize builds the summary block for a batch.
func Summarize(evals []Evaluation, now time.Time) Summary {
	s := Summary{
		TotalReports: len(evals),
		Timestamp:    now.Format("2006-01-02 15:04:05"),
	}
	if len(evals) == 0 {
		return s
	}
	total := 0.0
	for _, e := range evals {
		total += e.Overall
	}
	s.AverageScore = total / float64(len(evals))
	if best := Best(evals); best != nil {
		s.BestModel = best.Model
	}
	return s
}

// Export writes the evaluation summary and detailed results as JSON
// under dir and returns the file path.
func Export(dir string, evals []Evaluation, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, "evaluation_results.json")
	data, err := json.MarshalIndent(exportFile{
		Summary: Summarize(evals, now),
		Results: evals,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
