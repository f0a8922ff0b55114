// Package ranking orchestrates the LLM call that orders a user's content by
// relevance to a job posting. Durable ids never reach the model: experiences
// and projects are remapped to throwaway integer surrogates first and
// translated back afterwards, skills pass through by category name.
package ranking

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/prompts"
	"github.com/jonathan/resume-generator/internal/remap"
	"github.com/jonathan/resume-generator/internal/types"
)

// Ranker produces a RankingResult for one (user, job) pair. It is a pure
// computation over its inputs; persisting the result is the orchestrator's
// job.
type Ranker struct {
	client llm.Client
	params llm.StageParams
}

// NewRanker creates a Ranker using the given client and stage policy
func NewRanker(client llm.Client, params llm.StageParams) *Ranker {
	return &Ranker{client: client, params: params}
}

// RankRequest carries the job facts and the content to rank
type RankRequest struct {
	UserID          string
	JobID           string
	JobTitle        string
	JobCompany      string
	JobDescription  string
	Experiences     []types.ContentItem
	Projects        []types.ContentItem
	SkillCategories []string
}

// Rank issues one LLM call and returns the ordered ranking. Any failure,
// including a JSON decode failure after extraction, is reported as a
// *RankingError carrying the original error.
func (r *Ranker) Rank(ctx context.Context, req RankRequest) (*types.RankingResult, error) {
	expTable, expItems := remap.Build(req.Experiences)
	projTable, projItems := remap.Build(req.Projects)

	prompt, err := buildRankingPrompt(req, expItems, projItems)
	if err != nil {
		return nil, &RankingError{Message: "failed to build prompt", Cause: err}
	}

	if r.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.params.Timeout)
		defer cancel()
	}

	resp, err := r.client.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("ranking.json", "content-ranking-system")},
			{Role: llm.RoleUser, Content: prompt},
		},
		Model:       r.params.Model,
		MaxTokens:   r.params.MaxTokens,
		Temperature: r.params.Temperature,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, &RankingError{Message: "LLM generation failed", Cause: err}
	}

	decoded, err := decodeRankingResponse(resp.Content)
	if err != nil {
		return nil, &RankingError{Message: "could not decode ranking response", Cause: err}
	}

	result := &types.RankingResult{
		UserID:              req.UserID,
		JobID:               req.JobID,
		RankedExperienceIDs: expTable.TranslateBack(decoded.RankedExperienceIDs),
		RankedProjectIDs:    projTable.TranslateBack(decoded.RankedProjectIDs),
		RankedSkillIDs:      filterSkillCategories(decoded.RankedSkillIDs, req.SkillCategories),
		Rationale:           decoded.Rationale,
		KeywordMatches:      decoded.KeywordMatches,
		Confidence:          decoded.Confidence,
		ModelUsed:           r.params.Model,
		TokensUsed:          resp.TokensUsed,
		CreatedAt:           time.Now().UTC(),
	}

	for _, diag := range expTable.Dropped() {
		log.Printf("ranking: dropped experience token for job %s: %s", req.JobID, diag)
	}
	for _, diag := range projTable.Dropped() {
		log.Printf("ranking: dropped project token for job %s: %s", req.JobID, diag)
	}

	return result, nil
}

// ApplyOverride replaces one ranked category wholesale with a caller-supplied
// order and stamps the modification time. It never merges with the
// LLM-produced order.
func ApplyOverride(result *types.RankingResult, kind types.ContentKind, ids []string) {
	replacement := make([]string, len(ids))
	copy(replacement, ids)

	switch kind {
	case types.KindExperience:
		result.RankedExperienceIDs = replacement
	case types.KindProject:
		result.RankedProjectIDs = replacement
	case types.KindSkill:
		result.RankedSkillIDs = replacement
	default:
		return
	}

	now := time.Now().UTC()
	result.ModifiedAt = &now
}

// buildRankingPrompt renders the content-ranking template with job facts and
// the surrogate-tagged item lists.
func buildRankingPrompt(req RankRequest, expItems, projItems []remap.Item) (string, error) {
	expJSON, err := json.MarshalIndent(expItems, "", "  ")
	if err != nil {
		return "", err
	}
	projJSON, err := json.MarshalIndent(projItems, "", "  ")
	if err != nil {
		return "", err
	}

	categories := "none"
	if len(req.SkillCategories) > 0 {
		categories = strings.Join(req.SkillCategories, ", ")
	}

	template := prompts.MustGet("ranking.json", "content-ranking")
	return prompts.Format(template, map[string]string{
		"JobTitle":        req.JobTitle,
		"JobCompany":      req.JobCompany,
		"JobDescription":  req.JobDescription,
		"Experiences":     string(expJSON),
		"Projects":        string(projJSON),
		"SkillCategories": categories,
	}), nil
}

// filterSkillCategories keeps only returned names that exist in the supplied
// category set, preserving the model's order. Unknown names are dropped, the
// same discipline TranslateBack applies to surrogate ids.
func filterSkillCategories(tokens []any, categories []string) []string {
	canonical := make(map[string]string, len(categories))
	for _, c := range categories {
		canonical[strings.ToLower(c)] = c
	}

	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		name, ok := token.(string)
		if !ok {
			continue
		}
		match, known := canonical[strings.ToLower(strings.TrimSpace(name))]
		if !known {
			log.Printf("ranking: dropped unknown skill category %q", name)
			continue
		}
		ids = append(ids, match)
	}
	return ids
}
