package enhancement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-generator/internal/llm"
)

// MockClient implements llm.Client for testing
type MockClient struct {
	GenerateFunc func(ctx context.Context, req llm.Request) (*llm.Response, error)
}

func (m *MockClient) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &llm.Response{Content: "{}"}, nil
}

func (m *MockClient) Close() error { return nil }

func testParams() llm.StageParams {
	return llm.StageParams{Model: "test-model", Temperature: 0.3, MaxTokens: 2048}
}

func testRequest() EnhanceRequest {
	return EnhanceRequest{
		JobTitle:    "Senior Python Developer",
		JobCompany:  "TargetCorp",
		JobKeywords: []string{"Python", "FastAPI", "AWS"},
		Summary:     "Engineer with 8 years of backend experience.",
		Experiences: []TextItem{
			{DurableID: "exp-a", Text: "Maintained internal APIs."},
			{DurableID: "exp-b", Text: "Worked on data pipelines."},
		},
		Projects: []TextItem{
			{DurableID: "proj-x", Text: "Side project for log analysis."},
		},
	}
}

func TestEnhance_Success(t *testing.T) {
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, req llm.Request) (*llm.Response, error) {
			require.Len(t, req.Messages, 2)
			assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
			return &llm.Response{
				Content: `{
					"enhanced_professional_summary": "Backend engineer with 8 years of experience building Python services.",
					"enhanced_experiences": [
						{"id": "exp-a", "enhanced_text": "Owned and maintained internal APIs."},
						{"id": "exp-b", "enhanced_text": "Engineered resilient data pipelines."}
					],
					"enhanced_projects": [
						{"id": "proj-x", "enhanced_text": "Built a log analysis tool."}
					]
				}`,
				TokensUsed: 300,
			}, nil
		},
	}

	enhancer := NewEnhancer(mockClient, testParams())
	result, err := enhancer.Enhance(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Contains(t, result.EnhancedSummary, "Backend engineer")
	require.Len(t, result.EnhancedExperiences, 2)
	assert.Equal(t, "exp-a", result.EnhancedExperiences[0].DurableID)
	assert.Equal(t, "Engineered resilient data pipelines.", result.ExperienceText("exp-b"))
	assert.Equal(t, "Built a log analysis tool.", result.ProjectText("proj-x"))
	assert.InDelta(t, 0.85, result.Confidence, 0.0001)
	assert.Equal(t, 300, result.TokensUsed)
}

func TestEnhance_MissingSummaryIsHardError(t *testing.T) {
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return &llm.Response{
				Content: `{"enhanced_experiences": [{"id": "exp-a", "enhanced_text": "Better text."}]}`,
			}, nil
		},
	}

	enhancer := NewEnhancer(mockClient, testParams())
	_, err := enhancer.Enhance(context.Background(), testRequest())

	require.Error(t, err)
	var valErr *llm.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "enhanced_professional_summary", valErr.Field)
}

func TestEnhance_NoSummaryRequested_LenientOnSummaryField(t *testing.T) {
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return &llm.Response{
				Content: `{"enhanced_experiences": [{"id": "exp-a", "enhanced_text": "Better text."}]}`,
			}, nil
		},
	}

	req := testRequest()
	req.Summary = ""

	enhancer := NewEnhancer(mockClient, testParams())
	result, err := enhancer.Enhance(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, result.EnhancedSummary)
	assert.Len(t, result.EnhancedExperiences, 1)
}

func TestEnhance_MalformedJSON(t *testing.T) {
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return &llm.Response{Content: "I can't produce JSON today."}, nil
		},
	}

	enhancer := NewEnhancer(mockClient, testParams())
	_, err := enhancer.Enhance(context.Background(), testRequest())

	var enhErr *EnhancementError
	require.True(t, errors.As(err, &enhErr))

	var malformed *llm.MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}

func TestEnhance_ItemsWithEmptyTextDropped(t *testing.T) {
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return &llm.Response{
				Content: `{
					"enhanced_professional_summary": "Summary.",
					"enhanced_experiences": [
						{"id": "exp-a", "enhanced_text": "  "},
						{"id": "", "enhanced_text": "orphaned"},
						{"id": "exp-b", "enhanced_text": "Kept."}
					]
				}`,
			}, nil
		},
	}

	enhancer := NewEnhancer(mockClient, testParams())
	result, err := enhancer.Enhance(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, result.EnhancedExperiences, 1)
	assert.Equal(t, "exp-b", result.EnhancedExperiences[0].DurableID)
}

func TestEnhanceSummary_Wrapper(t *testing.T) {
	var captured llm.Request
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, req llm.Request) (*llm.Response, error) {
			captured = req
			return &llm.Response{
				Content: `{"enhanced_professional_summary": "Sharper summary."}`,
			}, nil
		},
	}

	enhancer := NewEnhancer(mockClient, testParams())
	result, err := enhancer.EnhanceSummary(context.Background(), EnhanceRequest{JobTitle: "Role"}, "Old summary.")

	require.NoError(t, err)
	assert.Equal(t, "Sharper summary.", result.EnhancedSummary)
	assert.Empty(t, result.EnhancedExperiences)
	assert.Contains(t, captured.Messages[1].Content, "Old summary.")
}

func TestEnhanceExperience_Wrapper(t *testing.T) {
	mockClient := &MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return &llm.Response{
				Content: `{"enhanced_experiences": [{"id": "exp-a", "enhanced_text": "Strengthened."}]}`,
			}, nil
		},
	}

	enhancer := NewEnhancer(mockClient, testParams())
	result, err := enhancer.EnhanceExperience(context.Background(), EnhanceRequest{}, TextItem{DurableID: "exp-a", Text: "Old."})

	require.NoError(t, err)
	assert.Equal(t, "Strengthened.", result.ExperienceText("exp-a"))
}

func TestVerifyFacts_FlagsInventedNumbers(t *testing.T) {
	originals := map[string]string{
		"exp-a": "Reduced latency by 30% across 12 services.",
	}
	pair := &EnhancePair{
		Enhanced: map[string]string{
			"exp-a": "Slashed latency by 30% across 12 services, saving $2M annually.",
		},
	}

	flags := VerifyFacts(originals, pair)

	require.Len(t, flags, 1)
	assert.Equal(t, "exp-a", flags[0].DurableID)
	assert.Equal(t, "$2M", flags[0].Claim)
}

func TestVerifyFacts_NoFlagsWhenNumbersPreserved(t *testing.T) {
	originals := map[string]string{
		"exp-a": "Handled 1,000 requests per second.",
	}
	pair := &EnhancePair{
		Enhanced: map[string]string{
			"exp-a": "Scaled the service to 1000 requests per second.",
		},
	}

	assert.Empty(t, VerifyFacts(originals, pair))
}
