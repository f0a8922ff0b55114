package generation

import (
	"context"
	"sync"

	"github.com/jonathan/resume-generator/internal/types"
)

// MemoryStore is an in-memory implementation of ProfileStore, RankingStore
// and DocumentStore. It backs tests and dry runs without a database; the
// Replace discipline matches the persistent store's delete-then-insert.
type MemoryStore struct {
	mu        sync.Mutex
	profiles  map[string]*types.Profile
	jobs      map[string]*types.Job
	rankings  map[string]*types.RankingResult // keyed by userID+"/"+jobID
	documents map[string]*types.GeneratedDocument
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[string]*types.Profile),
		jobs:      make(map[string]*types.Job),
		rankings:  make(map[string]*types.RankingResult),
		documents: make(map[string]*types.GeneratedDocument),
	}
}

// PutProfile seeds a profile
func (s *MemoryStore) PutProfile(profile *types.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
}

// PutJob seeds a job
func (s *MemoryStore) PutJob(job *types.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// GetProfile implements ProfileStore
func (s *MemoryStore) GetProfile(_ context.Context, userID string) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[userID], nil
}

// GetJob implements ProfileStore
func (s *MemoryStore) GetJob(_ context.Context, jobID string) (*types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[jobID], nil
}

// Current implements RankingStore
func (s *MemoryStore) Current(_ context.Context, userID, jobID string) (*types.RankingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankings[userID+"/"+jobID], nil
}

// Replace implements RankingStore: the prior ranking for the pair, if any,
// is discarded in the same operation.
func (s *MemoryStore) Replace(_ context.Context, result *types.RankingResult) (*types.RankingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *result
	s.rankings[result.UserID+"/"+result.JobID] = &stored
	return &stored, nil
}

// Delete implements RankingStore
func (s *MemoryStore) Delete(_ context.Context, userID, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rankings, userID+"/"+jobID)
	return nil
}

// RankingCount reports how many rankings exist for a pair; always 0 or 1
func (s *MemoryStore) RankingCount(userID, jobID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rankings[userID+"/"+jobID]; ok {
		return 1
	}
	return 0
}

// Create implements DocumentStore
func (s *MemoryStore) Create(_ context.Context, doc *types.GeneratedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *doc
	s.documents[doc.ID] = &stored
	return nil
}

// Update implements DocumentStore
func (s *MemoryStore) Update(_ context.Context, doc *types.GeneratedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *doc
	s.documents[doc.ID] = &stored
	return nil
}

// Get implements DocumentStore
func (s *MemoryStore) Get(_ context.Context, id string) (*types.GeneratedDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents[id], nil
}
