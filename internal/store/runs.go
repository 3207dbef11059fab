package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Run is one recorded processing run.
type Run struct {
	ID          string            `json:"id"`
	Variant     string            `json:"variant"`
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	SourceFiles []string          `json:"sourceFiles"`
	OutputPaths map[string]string `json:"outputPaths"`
	StartedAt   time.Time         `json:"startedAt"`
	FinishedAt  time.Time         `json:"finishedAt"`
}

// RunStore persists run history. The processing core never depends on it;
// callers skip it entirely when no database is configured.
type RunStore struct {
	DB *pgxpool.Pool
}

func NewRunStore(db *pgxpool.Pool) *RunStore {
	return &RunStore{DB: db}
}

func (s *RunStore) Save(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	paths, err := json.Marshal(run.OutputPaths)
	if err != nil {
		return "", err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO processing_runs (id, variant, status, message, source_files, output_paths, started_at, finished_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, run.ID, run.Variant, run.Status, run.Message, run.SourceFiles, paths, run.StartedAt, run.FinishedAt)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

func (s *RunStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, variant, status, message, source_files, output_paths, started_at, finished_at
    FROM processing_runs
    ORDER BY started_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var paths []byte
		if err := rows.Scan(&run.ID, &run.Variant, &run.Status, &run.Message, &run.SourceFiles, &paths, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(paths, &run.OutputPaths); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
