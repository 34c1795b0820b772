package store

import (
	"fmt"
	"testing"
	"time"
)

func openTest(t *testing.T) *History {
	t.Helper()
	h, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func sampleRun(id string) Run {
	return Run{
		ID:          id,
		Topic:       "AI in climate research",
		PresetID:    "fast",
		ConfigName:  "Fast Research (GPT-4o-mini)",
		Provider:    "OpenAI",
		Duration:    3200 * time.Millisecond,
		Success:     true,
		Report:      "# Findings\n\nMachine learning improves climate prediction accuracy substantially.",
		SourceCount: 7,
	}
}

func TestSaveAndGet(t *testing.T) {
	h := openTest(t)

	if err := h.Save(sampleRun("run-1")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := h.Get("run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Topic != "AI in climate research" || got.Duration != 3200*time.Millisecond {
		t.Errorf("run = %+v", got)
	}
	if !got.Success || got.SourceCount != 7 {
		t.Errorf("run = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestGetMissing(t *testing.T) {
	h := openTest(t)
	if _, err := h.Get("nope"); err == nil {
		t.Fatal("expected error for missing run")
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	h := openTest(t)

	r := sampleRun("run-1")
	if err := h.Save(r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	r.Report = "# Updated report about quantum entanglement"
	if err := h.Save(r); err != nil {
		t.Fatalf("Save() replace error = %v", err)
	}

	got, err := h.Get("run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Report != r.Report {
		t.Errorf("report = %q", got.Report)
	}

	// The stale FTS entry must be gone too.
	hits, err := h.Search("climate", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, hit := range hits {
		if hit.Run.ID == "run-1" {
			t.Errorf("stale FTS entry matched: %+v", hit)
		}
	}
}

func TestRecentOrder(t *testing.T) {
	h := openTest(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		r := sampleRun(fmt.Sprintf("run-%d", i))
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := h.Save(r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	runs, err := h.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].ID != "run-4" || runs[2].ID != "run-2" {
		t.Errorf("order = %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestSearch(t *testing.T) {
	h := openTest(t)

	climate := sampleRun("run-climate")
	if err := h.Save(climate); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	quantum := sampleRun("run-quantum")
	quantum.Topic = "Quantum computing outlook"
	quantum.Report = "# Qubits\n\nSuperconducting qubits dominate current hardware."
	if err := h.Save(quantum); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	hits, err := h.Search("climate prediction", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0].Run.ID != "run-climate" {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].Score <= 0 || hits[0].Score > 1 {
		t.Errorf("score = %v, want (0,1]", hits[0].Score)
	}
	if hits[0].Snippet == "" {
		t.Error("snippet missing")
	}
}

func TestFailedRunNotIndexed(t *testing.T) {
	h := openTest(t)

	r := sampleRun("run-failed")
	r.Success = false
	r.Report = ""
	r.Error = "provider timeout"
	if err := h.Save(r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	hits, err := h.Search("timeout", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("failed run should not be searchable: %+v", hits)
	}

	runs, err := h.Recent(10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("Recent() = %v, %v", runs, err)
	}
	if runs[0].Error != "provider timeout" {
		t.Errorf("error = %q", runs[0].Error)
	}
}
