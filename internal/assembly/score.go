package assembly

import (
	"strings"

	"github.com/jonathan/resume-generator/internal/types"
)

// ScoreKeywords computes the ATS match heuristic: the fraction of job
// keywords that appear anywhere in the assembled text, case-insensitive.
// This is a bounded approximation of recruiter-tool keyword matching, not a
// learned relevance score; treat it as indicative only.
func ScoreKeywords(contentText string, keywords []string) *types.ATSScore {
	score := &types.ATSScore{}

	normalized := strings.ToLower(contentText)
	for _, keyword := range keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		score.KeywordsTotal++
		if strings.Contains(normalized, kw) {
			score.KeywordsMatched++
		}
	}

	if score.KeywordsTotal > 0 {
		score.KeywordCoverage = float64(score.KeywordsMatched) / float64(score.KeywordsTotal)
	}
	return score
}
