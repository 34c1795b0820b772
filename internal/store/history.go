// Package store persists completed research runs in SQLite with FTS5
// full-text search over report text.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is a persisted research run.
type Run struct {
	ID          string
	Topic       string
	PresetID    string
	ConfigName  string
	Provider    string
	Duration    time.Duration
	Success     bool
	Error       string
	Report      string
	SourceCount int
	CreatedAt   time.Time
}

// SearchHit is one FTS match over stored reports.
type SearchHit struct {
	Run     Run
	Score   float64
	Snippet string
}

// History is the SQLite-backed run store.
type History struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the history database at path and migrates the
// schema. Use ":memory:" in tests.
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Debug("history store opened", "path", path)
	return h, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			preset_id TEXT NOT NULL,
			config_name TEXT NOT NULL,
			provider TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			report TEXT NOT NULL DEFAULT '',
			source_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_topic ON runs(topic)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS runs_fts USING fts5(
			report,
			topic,
			id UNINDEXED,
			tokenize='porter unicode61'
		)`,
	}

	for _, stmt := range stmts {
		if _, err := h.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(len(stmt), 60)], err)
		}
	}
	return nil
}

// Save inserts or replaces a run and its FTS entry.
func (h *History) Save(r Run) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tx.Exec("DELETE FROM runs_fts WHERE id = ?", r.ID)

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(id, topic, preset_id, config_name, provider, duration_ms, success, error, report, source_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Topic, r.PresetID, r.ConfigName, r.Provider,
		r.Duration.Milliseconds(), boolToInt(r.Success), r.Error, r.Report, r.SourceCount, createdAt.Unix())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if r.Report != "" {
		if _, err := tx.Exec(`INSERT INTO runs_fts (report, topic, id) VALUES (?, ?, ?)`,
			r.Report, r.Topic, r.ID); err != nil {
			return fmt.Errorf("insert fts: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns the newest runs, most recent first.
func (h *History) Recent(limit int) ([]Run, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.Query(`SELECT id, topic, preset_id, config_name, provider,
		duration_ms, success, error, report, source_count, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Get returns one run by id.
func (h *History) Get(id string) (*Run, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.Query(`SELECT id, topic, preset_id, config_name, provider,
		duration_ms, success, error, report, source_count, created_at
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return &runs[0], nil
}

// Search runs an FTS5 query over stored reports and topics, BM25-ranked.
// The rank is normalized to a [0,1] score with 1/(1+abs(rank)).
func (h *History) Search(query string, limit int) ([]SearchHit, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := h.db.Query(`SELECT r.id, r.topic, r.preset_id, r.config_name, r.provider,
		r.duration_ms, r.success, r.error, r.report, r.source_count, r.created_at,
		1.0 / (1.0 + abs(f.rank)) AS score,
		snippet(runs_fts, 0, '', '', '...', 24)
		FROM runs_fts f JOIN runs r ON r.id = f.id
		WHERE runs_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fts query: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			success    int
			created    int64
			score      float64
			snippet    string
		)
		if err := rows.Scan(&r.ID, &r.Topic, &r.PresetID, &r.ConfigName, &r.Provider,
			&durationMS, &success, &r.Error, &r.Report, &r.SourceCount, &created,
			&score, &snippet); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Success = success != 0
		r.CreatedAt = time.Unix(created, 0)
		hits = append(hits, SearchHit{Run: r, Score: score, Snippet: snippet})
	}
	return hits, rows.Err()
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			success    int
			created    int64
		)
		if err := rows.Scan(&r.ID, &r.Topic, &r.PresetID, &r.ConfigName, &r.Provider,
			&durationMS, &success, &r.Error, &r.Report, &r.SourceCount, &created); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Success = success != 0
		r.CreatedAt = time.Unix(created, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
