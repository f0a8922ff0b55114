package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatus_Terminal(t *testing.T) {
	tests := []struct {
		status   DocumentStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusRanking, false},
		{StatusEnhancing, false},
		{StatusAssembling, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestEnhancementResult_Lookups(t *testing.T) {
	r := &EnhancementResult{
		EnhancedExperiences: []EnhancedText{{DurableID: "exp-1", EnhancedText: "Rewritten."}},
		EnhancedProjects:    []EnhancedText{{DurableID: "proj-1", EnhancedText: "Also rewritten."}},
	}

	assert.Equal(t, "Rewritten.", r.ExperienceText("exp-1"))
	assert.Empty(t, r.ExperienceText("exp-2"))
	assert.Equal(t, "Also rewritten.", r.ProjectText("proj-1"))
	assert.Empty(t, r.ProjectText("proj-2"))
}
