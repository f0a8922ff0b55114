package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-generator/internal/types"
)

// -----------------------------------------------------------------------------
// Ranking Methods
// -----------------------------------------------------------------------------

const rankingColumns = `id, user_id, job_id, ranked_experience_ids, ranked_project_ids,
		        ranked_skill_ids, rationale, keyword_matches, confidence,
		        model_used, tokens_used, created_at, modified_at`

// GetRanking retrieves the current ranking for a (user, job) pair. Returns
// nil when none exists.
func (db *DB) GetRanking(ctx context.Context, userID, jobID string) (*types.RankingResult, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+rankingColumns+` FROM content_rankings WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	result, err := scanRanking(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}
	return result, nil
}

// ReplaceRanking stores a ranking as the current one for its (user, job)
// pair. The prior ranking, if any, is deleted in the same transaction, so at
// most one ranking is ever current for a pair.
func (db *DB) ReplaceRanking(ctx context.Context, r *types.RankingResult) (*types.RankingResult, error) {
	expJSON, projJSON, skillJSON, matchesJSON, err := marshalRankingFields(r)
	if err != nil {
		return nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	_, _ = tx.Exec(ctx, "DELETE FROM content_rankings WHERE user_id = $1 AND job_id = $2",
		r.UserID, r.JobID)

	row := tx.QueryRow(ctx,
		`INSERT INTO content_rankings (id, user_id, job_id, ranked_experience_ids,
		     ranked_project_ids, ranked_skill_ids, rationale, keyword_matches,
		     confidence, model_used, tokens_used, created_at, modified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+rankingColumns,
		r.ID, r.UserID, r.JobID, expJSON, projJSON, skillJSON,
		nullIfEmpty(r.Rationale), matchesJSON, r.Confidence,
		nullIfEmpty(r.ModelUsed), r.TokensUsed, r.CreatedAt, r.ModifiedAt,
	)
	stored, err := scanRanking(row)
	if err != nil {
		return nil, fmt.Errorf("failed to store ranking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ranking: %w", err)
	}
	return stored, nil
}

// DeleteRanking removes the current ranking for a (user, job) pair
func (db *DB) DeleteRanking(ctx context.Context, userID, jobID string) error {
	_, err := db.pool.Exec(ctx,
		"DELETE FROM content_rankings WHERE user_id = $1 AND job_id = $2",
		userID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete ranking: %w", err)
	}
	return nil
}

func marshalRankingFields(r *types.RankingResult) (exp, proj, skill, matches []byte, err error) {
	if exp, err = json.Marshal(r.RankedExperienceIDs); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal experience ids: %w", err)
	}
	if proj, err = json.Marshal(r.RankedProjectIDs); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal project ids: %w", err)
	}
	if skill, err = json.Marshal(r.RankedSkillIDs); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal skill ids: %w", err)
	}
	if matches, err = json.Marshal(r.KeywordMatches); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal keyword matches: %w", err)
	}
	return exp, proj, skill, matches, nil
}

func scanRanking(row pgx.Row) (*types.RankingResult, error) {
	var r types.RankingResult
	var expJSON, projJSON, skillJSON, matchesJSON []byte
	var rationale, modelUsed *string

	err := row.Scan(&r.ID, &r.UserID, &r.JobID, &expJSON, &projJSON, &skillJSON,
		&rationale, &matchesJSON, &r.Confidence, &modelUsed, &r.TokensUsed,
		&r.CreatedAt, &r.ModifiedAt)
	if err != nil {
		return nil, err
	}
	r.Rationale = orEmpty(rationale)
	r.ModelUsed = orEmpty(modelUsed)
	_ = json.Unmarshal(expJSON, &r.RankedExperienceIDs)
	_ = json.Unmarshal(projJSON, &r.RankedProjectIDs)
	_ = json.Unmarshal(skillJSON, &r.RankedSkillIDs)
	if matchesJSON != nil {
		_ = json.Unmarshal(matchesJSON, &r.KeywordMatches)
	}
	return &r, nil
}
