package generation

import (
	"context"

	"github.com/jonathan/resume-generator/internal/types"
)

// ProfileStore is the read-only view of user profiles and job postings.
// The orchestrator never writes back to these entities.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*types.Profile, error)
	GetJob(ctx context.Context, jobID string) (*types.Job, error)
}

// RankingStore persists ranking results. At most one ranking is current per
// (user, job) pair: Replace must delete any prior ranking for the pair and
// insert the new one in a single operation, so two concurrent rankings for
// one job cannot both become current.
type RankingStore interface {
	// Current returns the current ranking for the pair, or nil if none exists
	Current(ctx context.Context, userID, jobID string) (*types.RankingResult, error)
	// Replace atomically supersedes any prior ranking for the pair
	Replace(ctx context.Context, result *types.RankingResult) (*types.RankingResult, error)
	// Delete removes the current ranking for the pair, invalidating it
	Delete(ctx context.Context, userID, jobID string) error
}

// DocumentStore persists GeneratedDocument records. The orchestrator calls
// Update after every state transition; it is the only write surface the
// generation core touches beyond its own return values.
type DocumentStore interface {
	Create(ctx context.Context, doc *types.GeneratedDocument) error
	Update(ctx context.Context, doc *types.GeneratedDocument) error
	Get(ctx context.Context, id string) (*types.GeneratedDocument, error)
}
