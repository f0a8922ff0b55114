package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-generator/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

// GetJob retrieves a job posting by id. Returns nil when no row exists.
func (db *DB) GetJob(ctx context.Context, jobID string) (*types.Job, error) {
	var j types.Job
	var keywordsJSON []byte
	var location *string

	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, description, keywords, location
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&j.ID, &j.Title, &j.Company, &j.Description, &keywordsJSON, &location)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	j.Location = orEmpty(location)
	if keywordsJSON != nil {
		_ = json.Unmarshal(keywordsJSON, &j.Keywords)
	}
	return &j, nil
}

// SaveJob upserts a job posting
func (db *DB) SaveJob(ctx context.Context, j *types.Job) error {
	keywordsJSON, err := json.Marshal(j.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, description, keywords, location)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2, company = $3, description = $4, keywords = $5,
		     location = $6, updated_at = NOW()`,
		j.ID, j.Title, j.Company, j.Description, keywordsJSON, nullIfEmpty(j.Location),
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// DeleteJob deletes a job posting and its rankings (via cascade)
func (db *DB) DeleteJob(ctx context.Context, jobID string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}
