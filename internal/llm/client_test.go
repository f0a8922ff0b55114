package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassifyProviderError_RateLimit(t *testing.T) {
	err := classifyProviderError(&googleapi.Error{Code: 429, Message: "quota exceeded"})

	var rateErr *RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Contains(t, rateErr.Error(), "rate limit")
}

func TestClassifyProviderError_BadRequest(t *testing.T) {
	err := classifyProviderError(&googleapi.Error{Code: 400, Message: "invalid temperature"})

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Error(), "invalid temperature")
}

func TestClassifyProviderError_DeadlineExceeded(t *testing.T) {
	err := classifyProviderError(context.DeadlineExceeded)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
}

func TestClassifyProviderError_WrappedDeadline(t *testing.T) {
	err := classifyProviderError(fmt.Errorf("rpc failed: %w", context.DeadlineExceeded))

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
}

func TestClassifyProviderError_Generic(t *testing.T) {
	err := classifyProviderError(errors.New("connection reset by peer"))

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, client)

	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name string
		err  error
	}{
		{"rate limit", &RateLimitError{Message: "m", Cause: cause}},
		{"timeout", &TimeoutError{Message: "m", Cause: cause}},
		{"malformed", &MalformedResponseError{Message: "m", Cause: cause}},
		{"service", &ServiceError{Message: "m", Cause: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, cause))
		})
	}
}
