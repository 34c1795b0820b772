package researcher

import (
	"context"
	"time"

	"github.com/probelabs/deepscout/internal/samples"
)

// SampleEngine serves canned reports without any network or API calls.
// It walks the same stages as the real pipeline so progress display and
// the comparison runner behave identically.
type SampleEngine struct {
	progress   ProgressFunc
	stageDelay time.Duration
}

// NewSampleEngine builds the offline engine. stageDelay simulates work
// per stage; pass 0 in tests.
func NewSampleEngine(progress ProgressFunc, stageDelay time.Duration) *SampleEngine {
	return &SampleEngine{progress: progress, stageDelay: stageDelay}
}

func (e *SampleEngine) Research(ctx context.Context, topic string) (*Report, error) {
	start := time.Now()

	stages := []Stage{StageBrief, StageSearch, StageProcess, StageResearch, StageSynthesize, StageReport}
	for _, stage := range stages {
		e.progress.report(stage)
		if e.stageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.stageDelay):
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return &Report{
		Topic:      topic,
		Brief:      "Simulated research brief for: " + topic,
		Text:       samples.ForTopic(topic),
		Notes:      samples.Notes,
		Iterations: 1,
		Duration:   time.Since(start),
	}, nil
}
