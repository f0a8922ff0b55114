package ranking

import (
	"encoding/json"

	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/types"
)

// rankingResponse is the leniently-decoded shape of the model's answer. Every
// field is optional: a missing or mistyped ranked-id list decodes to an empty
// list, a missing or non-numeric confidence falls back to the default. Only
// an unparseable top-level object is an error.
type rankingResponse struct {
	RankedExperienceIDs []any
	RankedProjectIDs    []any
	RankedSkillIDs      []any
	Rationale           string
	KeywordMatches      map[string]int
	Confidence          float64
}

// decodeRankingResponse extracts and decodes the JSON object from raw model
// output. The returned error is a *llm.MalformedResponseError when the
// extracted span does not parse as an object.
func decodeRankingResponse(raw string) (*rankingResponse, error) {
	extracted := llm.ExtractJSON(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extracted), &fields); err != nil {
		return nil, &llm.MalformedResponseError{
			Message: "ranking response is not a JSON object",
			Raw:     extracted,
			Cause:   err,
		}
	}

	resp := &rankingResponse{
		RankedExperienceIDs: lenientList(fields["ranked_experience_ids"]),
		RankedProjectIDs:    lenientList(fields["ranked_project_ids"]),
		RankedSkillIDs:      lenientList(fields["ranked_skill_ids"]),
		Rationale:           lenientString(fields["ranking_rationale"]),
		KeywordMatches:      lenientCounts(fields["keyword_matches"]),
		Confidence:          lenientConfidence(fields["ranking_confidence_score"]),
	}
	return resp, nil
}

// lenientList decodes a JSON array field, returning an empty slice when the
// field is missing or is not an array.
func lenientList(raw json.RawMessage) []any {
	if raw == nil {
		return []any{}
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return []any{}
	}
	return list
}

// lenientString decodes a JSON string field, returning "" otherwise
func lenientString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// lenientCounts decodes a keyword->count object, returning nil otherwise
func lenientCounts(raw json.RawMessage) map[string]int {
	if raw == nil {
		return nil
	}
	var counts map[string]int
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil
	}
	return counts
}

// lenientConfidence decodes the confidence score, falling back to the default
// when the field is missing or not numeric, and clamping into [0, 1].
func lenientConfidence(raw json.RawMessage) float64 {
	if raw == nil {
		return types.DefaultRankingConfidence
	}
	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		return types.DefaultRankingConfidence
	}
	if score < 0.0 {
		score = 0.0
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
