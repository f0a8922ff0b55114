package llm

import "time"

// StageParams is the generation policy for one pipeline stage. Model choice
// and sampling temperature are configuration data, not per-component literals.
// Timeout bounds the single provider call; retrying is the caller's choice.
type StageParams struct {
	Model       string        `json:"model"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int32         `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout,omitempty"`
}

// Params holds the per-stage generation policy for the application
type Params struct {
	Ranking     StageParams `json:"ranking"`
	Enhancement StageParams `json:"enhancement"`
}

// DefaultParams returns the default per-stage policy. Ranking runs at very
// low temperature for deterministic-leaning ordering; enhancement allows a
// little more variation for phrasing.
func DefaultParams() Params {
	return Params{
		Ranking: StageParams{
			Model:       "gemini-2.5-flash",
			Temperature: 0.1,
			MaxTokens:   2048,
			Timeout:     60 * time.Second,
		},
		Enhancement: StageParams{
			Model:       "gemini-2.5-pro",
			Temperature: 0.3,
			MaxTokens:   4096,
			Timeout:     120 * time.Second,
		},
	}
}
