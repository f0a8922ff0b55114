// Package enhancement orchestrates the LLM call that rewrites profile text
// with stronger phrasing. Anti-fabrication rules live in the prompt; the
// model is instructed, not mechanically constrained, to preserve facts.
// An optional post-hoc fact check flags numeric claims the original text
// does not support.
package enhancement

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/prompts"
	"github.com/jonathan/resume-generator/internal/schemas"
	"github.com/jonathan/resume-generator/internal/types"
)

// TextItem is one piece of content to be enhanced
type TextItem struct {
	DurableID string `json:"id"`
	Text      string `json:"text"`
}

// EnhanceRequest carries the job context and the content to rewrite
type EnhanceRequest struct {
	JobTitle    string
	JobCompany  string
	JobKeywords []string
	Summary     string
	Experiences []TextItem
	Projects    []TextItem
}

// Enhancer produces an EnhancementResult for profile content. Like the
// ranker, it is a pure computation; originals are never modified.
type Enhancer struct {
	client llm.Client
	params llm.StageParams
}

// NewEnhancer creates an Enhancer using the given client and stage policy
func NewEnhancer(client llm.Client, params llm.StageParams) *Enhancer {
	return &Enhancer{client: client, params: params}
}

// responseSchema validates the decoded enhancement response. The summary
// field is the hard-required deliverable; the item lists decode leniently.
const responseSchema = `{
	"type": "object",
	"required": ["enhanced_professional_summary"],
	"properties": {
		"enhanced_professional_summary": {"type": "string", "minLength": 1},
		"enhanced_experiences": {"type": "array"},
		"enhanced_projects": {"type": "array"}
	}
}`

// enhanceResponse is the decoded shape of the model's answer
type enhanceResponse struct {
	EnhancedSummary     string         `json:"enhanced_professional_summary"`
	EnhancedExperiences []enhancedItem `json:"enhanced_experiences"`
	EnhancedProjects    []enhancedItem `json:"enhanced_projects"`
}

type enhancedItem struct {
	ID           string `json:"id"`
	EnhancedText string `json:"enhanced_text"`
}

// Enhance issues one LLM call rewriting the supplied summary, experience and
// project text. When a summary is supplied, a response without
// enhanced_professional_summary is a hard validation error; the experience
// and project lists are accepted as returned.
func (e *Enhancer) Enhance(ctx context.Context, req EnhanceRequest) (*types.EnhancementResult, error) {
	prompt, err := buildEnhancementPrompt(req)
	if err != nil {
		return nil, &EnhancementError{Message: "failed to build prompt", Cause: err}
	}

	if e.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.params.Timeout)
		defer cancel()
	}

	resp, err := e.client.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("enhancement.json", "enhance-content-system")},
			{Role: llm.RoleUser, Content: prompt},
		},
		Model:       e.params.Model,
		MaxTokens:   e.params.MaxTokens,
		Temperature: e.params.Temperature,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, &EnhancementError{Message: "LLM generation failed", Cause: err}
	}

	extracted := llm.ExtractJSON(resp.Content)

	var decoded enhanceResponse
	if err := json.Unmarshal([]byte(extracted), &decoded); err != nil {
		return nil, &EnhancementError{
			Message: "could not decode enhancement response",
			Cause:   &llm.MalformedResponseError{Message: "enhancement response is not a JSON object", Raw: extracted, Cause: err},
		}
	}

	if req.Summary != "" {
		if err := validateResponseShape(extracted); err != nil {
			return nil, &EnhancementError{Message: "response failed validation", Cause: err}
		}
	}

	result := &types.EnhancementResult{
		EnhancedSummary: strings.TrimSpace(decoded.EnhancedSummary),
		ModelUsed:       e.params.Model,
		Temperature:     e.params.Temperature,
		TokensUsed:      resp.TokensUsed,
		Confidence:      types.EnhancementConfidence,
		CreatedAt:       time.Now().UTC(),
	}
	for _, item := range decoded.EnhancedExperiences {
		if item.ID == "" || strings.TrimSpace(item.EnhancedText) == "" {
			continue
		}
		result.EnhancedExperiences = append(result.EnhancedExperiences, types.EnhancedText{
			DurableID:    item.ID,
			EnhancedText: strings.TrimSpace(item.EnhancedText),
		})
	}
	for _, item := range decoded.EnhancedProjects {
		if item.ID == "" || strings.TrimSpace(item.EnhancedText) == "" {
			continue
		}
		result.EnhancedProjects = append(result.EnhancedProjects, types.EnhancedText{
			DurableID:    item.ID,
			EnhancedText: strings.TrimSpace(item.EnhancedText),
		})
	}

	return result, nil
}

// EnhanceSummary rewrites only the professional summary
func (e *Enhancer) EnhanceSummary(ctx context.Context, req EnhanceRequest, summary string) (*types.EnhancementResult, error) {
	req.Summary = summary
	req.Experiences = nil
	req.Projects = nil
	return e.Enhance(ctx, req)
}

// EnhanceExperience rewrites a single experience description
func (e *Enhancer) EnhanceExperience(ctx context.Context, req EnhanceRequest, item TextItem) (*types.EnhancementResult, error) {
	req.Summary = ""
	req.Experiences = []TextItem{item}
	req.Projects = nil
	return e.Enhance(ctx, req)
}

// validateResponseShape enforces the hard-required summary field using the
// embedded JSON schema.
func validateResponseShape(extracted string) error {
	err := schemas.ValidateString(responseSchema, extracted)
	if err == nil {
		return nil
	}
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		return &llm.ValidationError{
			Message: ve.Summary(),
			Field:   "enhanced_professional_summary",
		}
	}
	return &llm.MalformedResponseError{Message: "schema validation could not run", Raw: extracted, Cause: err}
}

// buildEnhancementPrompt renders the enhance-content template
func buildEnhancementPrompt(req EnhanceRequest) (string, error) {
	expJSON, err := json.MarshalIndent(req.Experiences, "", "  ")
	if err != nil {
		return "", err
	}
	projJSON, err := json.MarshalIndent(req.Projects, "", "  ")
	if err != nil {
		return "", err
	}

	keywords := "not specified"
	if len(req.JobKeywords) > 0 {
		keywords = strings.Join(req.JobKeywords, ", ")
	}
	summary := req.Summary
	if summary == "" {
		summary = "(no summary provided; omit enhanced_professional_summary content)"
	}

	template := prompts.MustGet("enhancement.json", "enhance-content")
	return prompts.Format(template, map[string]string{
		"JobTitle":    req.JobTitle,
		"JobCompany":  req.JobCompany,
		"JobKeywords": keywords,
		"Summary":     summary,
		"Experiences": string(expJSON),
		"Projects":    string(projJSON),
	}), nil
}
