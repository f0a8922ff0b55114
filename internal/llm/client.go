// Package llm provides the gateway to LLM providers: a provider-agnostic
// Client interface, the Gemini implementation, typed failure classification,
// and utilities for pulling structured JSON out of model output.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Role constants for request messages
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry in the conversation sent to the provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single generation call
type Request struct {
	Messages    []Message
	Model       string
	MaxTokens   int32
	Temperature float32
	// JSONOutput asks the provider for a JSON response MIME type where supported
	JSONOutput bool
}

// Response is the provider's answer to a Request
type Response struct {
	Content      string
	TokensUsed   int
	FinishReason string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate issues one generation call and returns the raw text response.
	// Failures are one of *RateLimitError, *TimeoutError, *ValidationError
	// or *ServiceError.
	Generate(ctx context.Context, req Request) (*Response, error)
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ValidationError{Message: "API key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ServiceError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client}, nil
}

// Generate issues one generation call against the configured Gemini model
func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, &ValidationError{Message: "model is required", Field: "model"}
	}
	if len(req.Messages) == 0 {
		return nil, &ValidationError{Message: "at least one message is required", Field: "messages"}
	}

	model := c.client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.JSONOutput {
		model.ResponseMIMEType = "application/json"
	}

	var userParts []genai.Part
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(msg.Content)}}
		default:
			userParts = append(userParts, genai.Text(msg.Content))
		}
	}
	if len(userParts) == 0 {
		return nil, &ValidationError{Message: "at least one user message is required", Field: "messages"}
	}

	resp, err := model.GenerateContent(ctx, userParts...)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	result := &Response{Content: text}
	if resp.UsageMetadata != nil {
		result.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	if len(resp.Candidates) > 0 {
		result.FinishReason = resp.Candidates[0].FinishReason.String()
	}
	return result, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// classifyProviderError maps provider failures onto the typed error taxonomy
func classifyProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "generation call timed out", Cause: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return &RateLimitError{Message: "provider rate limit exceeded", Cause: err}
		case http.StatusBadRequest:
			return &ValidationError{Message: apiErr.Message}
		}
	}

	// Some transport paths surface timeouts as plain error strings
	if strings.Contains(strings.ToLower(err.Error()), "deadline exceeded") {
		return &TimeoutError{Message: "generation call timed out", Cause: err}
	}

	return &ServiceError{Message: "generation call failed", Cause: err}
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ServiceError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ServiceError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &ServiceError{Message: fmt.Sprintf("no text parts in response (finish reason %s)", candidate.FinishReason)}
	}

	return strings.Join(parts, ""), nil
}
