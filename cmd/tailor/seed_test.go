package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-generator/internal/generation"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfileFile_Valid(t *testing.T) {
	path := writeTemp(t, "profile.json", `{
		"user_id": "user-1",
		"full_name": "Alex Rivera",
		"experiences": [{"id": "exp-1", "title": "Engineer", "company": "Acme", "description": "Built things."}],
		"projects": [],
		"skills": {"Languages": ["Go"]}
	}`)

	profile, err := loadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Len(t, profile.Experiences, 1)
}

func TestLoadProfileFile_MissingUserID(t *testing.T) {
	path := writeTemp(t, "profile.json", `{"full_name": "No ID"}`)

	_, err := loadProfileFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing user_id")
}

func TestLoadProfileFile_BadJSON(t *testing.T) {
	path := writeTemp(t, "profile.json", `{ not json }`)

	_, err := loadProfileFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile JSON")
}

func TestLoadJobFile_Valid(t *testing.T) {
	path := writeTemp(t, "job.json", `{
		"id": "job-1",
		"title": "Senior Python Developer",
		"company": "TargetCorp",
		"description": "Build APIs.",
		"keywords": ["Python", "FastAPI", "AWS"]
	}`)

	job, err := loadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Len(t, job.Keywords, 3)
}

func TestLoadJobFile_MissingID(t *testing.T) {
	path := writeTemp(t, "job.json", `{"title": "No ID"}`)

	_, err := loadJobFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestSeedMemoryStore(t *testing.T) {
	profilePath := writeTemp(t, "profile.json", `{"user_id": "user-1", "full_name": "Alex"}`)
	jobPath := writeTemp(t, "job.json", `{"id": "job-1", "title": "Role", "company": "Corp"}`)

	store := generation.NewMemoryStore()
	require.NoError(t, seedMemoryStore(store, profilePath, jobPath))

	profile, err := store.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)

	job, err := store.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, job)
}
