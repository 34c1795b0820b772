// Package researcher implements the multi-stage research pipeline: a
// topic is refined into a brief, a supervisor loop fans concurrent
// research units out over web search, notes are compressed against a
// token budget, and a final report is synthesized.
package researcher

import (
	"context"
	"time"
)

// Engine produces a research report for a topic. The real pipeline and
// the offline sample engine both satisfy it.
type Engine interface {
	Research(ctx context.Context, topic string) (*Report, error)
}

// Report is the outcome of one research run.
type Report struct {
	Topic      string        `json:"topic"`
	Brief      string        `json:"brief,omitempty"`
	Text       string        `json:"report"`
	Sources    []string      `json:"sources,omitempty"`
	Notes      []string      `json:"notes,omitempty"`
	Iterations int           `json:"iterations"`
	Duration   time.Duration `json:"-"`
}

// Stage identifies a pipeline phase for progress reporting.
type Stage string

const (
	StageBrief      Stage = "analyzing research topic"
	StageSearch     Stage = "searching for relevant sources"
	StageProcess    Stage = "processing search results"
	StageResearch   Stage = "conducting detailed research"
	StageSynthesize Stage = "synthesizing findings"
	StageReport     Stage = "generating final report"
)

// ProgressFunc receives stage transitions. May be nil.
type ProgressFunc func(stage Stage)

func (f ProgressFunc) report(stage Stage) {
	if f != nil {
		f(stage)
	}
}
