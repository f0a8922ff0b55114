// Package types provides type definitions for structured data used throughout the resume-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"time"
)

// DefaultRankingConfidence is used when the LLM omits the confidence score
// or returns something that is not a number.
const DefaultRankingConfidence = 0.75

// RankingResult represents the outcome of ranking a user's content against a
// job. Ranked id slices hold durable ids, most relevant first. At most one
// RankingResult is current per (user, job) pair; regeneration supersedes the
// prior one rather than mutating it.
type RankingResult struct {
	ID                  string         `json:"id"`
	UserID              string         `json:"user_id"`
	JobID               string         `json:"job_id"`
	RankedExperienceIDs []string       `json:"ranked_experience_ids"`
	RankedProjectIDs    []string       `json:"ranked_project_ids"`
	RankedSkillIDs      []string       `json:"ranked_skill_ids"`
	Rationale           string         `json:"rationale,omitempty"`
	KeywordMatches      map[string]int `json:"keyword_matches,omitempty"`
	Confidence          float64        `json:"confidence"`
	ModelUsed           string         `json:"model_used,omitempty"`
	TokensUsed          int            `json:"tokens_used,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	ModifiedAt          *time.Time     `json:"modified_at,omitempty"`
}

// IdentityRanking builds a RankingResult that preserves the profile's own
// ordering. Used when generation runs without a stored ranking.
func IdentityRanking(userID, jobID string, profile *Profile) *RankingResult {
	r := &RankingResult{
		UserID:     userID,
		JobID:      jobID,
		Confidence: DefaultRankingConfidence,
		CreatedAt:  time.Now().UTC(),
	}
	for _, e := range profile.Experiences {
		r.RankedExperienceIDs = append(r.RankedExperienceIDs, e.ID)
	}
	for _, p := range profile.Projects {
		r.RankedProjectIDs = append(r.RankedProjectIDs, p.ID)
	}
	for category := range profile.Skills {
		r.RankedSkillIDs = append(r.RankedSkillIDs, category)
	}
	sort.Strings(r.RankedSkillIDs)
	return r
}
