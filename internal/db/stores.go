package db

import (
	"context"

	"github.com/jonathan/resume-generator/internal/types"
)

// Thin adapters that present DB methods under the store interfaces the
// generation orchestrator consumes. DB itself already satisfies the profile
// store; rankings and documents need method-name adapters.

// RankingStore adapts DB to the orchestrator's ranking store
type RankingStore struct {
	DB *DB
}

// Current returns the current ranking for a (user, job) pair
func (s RankingStore) Current(ctx context.Context, userID, jobID string) (*types.RankingResult, error) {
	return s.DB.GetRanking(ctx, userID, jobID)
}

// Replace stores a ranking, superseding any prior one for the pair
func (s RankingStore) Replace(ctx context.Context, result *types.RankingResult) (*types.RankingResult, error) {
	return s.DB.ReplaceRanking(ctx, result)
}

// Delete removes the current ranking for a (user, job) pair
func (s RankingStore) Delete(ctx context.Context, userID, jobID string) error {
	return s.DB.DeleteRanking(ctx, userID, jobID)
}

// DocumentStore adapts DB to the orchestrator's document store
type DocumentStore struct {
	DB *DB
}

// Create inserts a new generation record
func (s DocumentStore) Create(ctx context.Context, doc *types.GeneratedDocument) error {
	return s.DB.CreateDocument(ctx, doc)
}

// Update persists the current state of a generation record
func (s DocumentStore) Update(ctx context.Context, doc *types.GeneratedDocument) error {
	return s.DB.UpdateDocument(ctx, doc)
}

// Get retrieves a generation record by id
func (s DocumentStore) Get(ctx context.Context, id string) (*types.GeneratedDocument, error) {
	return s.DB.GetDocument(ctx, id)
}
