// Package types provides type definitions for structured data used throughout the resume-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// EnhancementConfidence is the fixed confidence attached to enhancement
// results. Enhancement quality is not scored by the model, so a constant
// is recorded for downstream reporting.
const EnhancementConfidence = 0.85

// EnhancedText pairs a durable content id with its rewritten text.
// The original text is never deleted; callers choose which to render.
type EnhancedText struct {
	DurableID    string `json:"durable_id"`
	EnhancedText string `json:"enhanced_text"`
}

// EnhancementResult represents the outcome of an enhancement call
type EnhancementResult struct {
	EnhancedSummary     string         `json:"enhanced_summary,omitempty"`
	EnhancedExperiences []EnhancedText `json:"enhanced_experiences,omitempty"`
	EnhancedProjects    []EnhancedText `json:"enhanced_projects,omitempty"`
	ModelUsed           string         `json:"model_used,omitempty"`
	Temperature         float32        `json:"temperature"`
	TokensUsed          int            `json:"tokens_used,omitempty"`
	Confidence          float64        `json:"confidence"`
	CreatedAt           time.Time      `json:"created_at"`
}

// ExperienceText returns the enhanced text for a durable id, or "" if the
// experience was not enhanced.
func (r *EnhancementResult) ExperienceText(durableID string) string {
	for _, e := range r.EnhancedExperiences {
		if e.DurableID == durableID {
			return e.EnhancedText
		}
	}
	return ""
}

// ProjectText returns the enhanced text for a durable id, or "" if the
// project was not enhanced.
func (r *EnhancementResult) ProjectText(durableID string) string {
	for _, p := range r.EnhancedProjects {
		if p.DurableID == durableID {
			return p.EnhancedText
		}
	}
	return ""
}
