package assembly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-generator/internal/types"
)

func testProfile() *types.Profile {
	return &types.Profile{
		UserID:   "user-1",
		FullName: "Alex Rivera",
		Email:    "alex@example.com",
		Location: "Portland, OR",
		Summary:  "Backend engineer focused on Python services.",
		Experiences: []types.Experience{
			{ID: "exp-1", Title: "Engineer I", Company: "Acme", Description: "Built internal tools.", StartDate: "2018", EndDate: "2020"},
			{ID: "exp-2", Title: "Engineer II", Company: "Initech", Description: "Ran the API platform.", StartDate: "2020", EndDate: "2022"},
			{ID: "exp-3", Title: "Senior Engineer", Company: "Hooli", Description: "Led AWS migration.", StartDate: "2022", IsCurrent: true},
			{ID: "exp-4", Title: "Intern", Company: "Startup", Description: "Prototyped features."},
			{ID: "exp-5", Title: "Contractor", Company: "Agency", Description: "Delivered client work."},
		},
		Projects: []types.Project{
			{ID: "proj-1", Name: "FastAPI Starter", Description: "Template for FastAPI services.", Technologies: []string{"Python", "FastAPI"}},
			{ID: "proj-2", Name: "Log Cruncher", Description: "CLI for log analysis."},
		},
		Skills: map[string][]string{
			"Languages": {"Python", "Go"},
			"Cloud":     {"AWS", "Terraform"},
		},
		Education: []types.Education{
			{ID: "edu-1", Institution: "State University", Degree: "B.S.", Field: "Computer Science", EndDate: "2018"},
		},
	}
}

func testJob() *types.Job {
	return &types.Job{
		ID:       "job-1",
		Title:    "Senior Python Developer",
		Company:  "TargetCorp",
		Keywords: []string{"Python", "FastAPI", "AWS"},
	}
}

func testRanking() *types.RankingResult {
	return &types.RankingResult{
		UserID:              "user-1",
		JobID:               "job-1",
		RankedExperienceIDs: []string{"exp-3", "exp-2", "exp-1", "exp-4", "exp-5"},
		RankedProjectIDs:    []string{"proj-1", "proj-2"},
		RankedSkillIDs:      []string{"Cloud", "Languages"},
		ModelUsed:           "test-model",
	}
}

func sectionByKind(t *testing.T, doc *types.StructuredDocument, kind types.SectionKind) types.Section {
	t.Helper()
	for _, s := range doc.Sections {
		if s.Kind == kind {
			return s
		}
	}
	t.Fatalf("no %s section in document", kind)
	return types.Section{}
}

func TestAssemble_TruncatesToMaxInRankedOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxExperiences = 2

	result, err := Assemble(testRanking(), nil, testProfile(), testJob(), opts)
	require.NoError(t, err)

	section := sectionByKind(t, result.Structured, types.SectionExperience)
	require.Len(t, section.Experiences, 2)
	assert.Equal(t, "exp-3", section.Experiences[0].DurableID)
	assert.Equal(t, "exp-2", section.Experiences[1].DurableID)
}

func TestAssemble_UnrankedEntriesAppendedNotDropped(t *testing.T) {
	ranking := testRanking()
	ranking.RankedExperienceIDs = []string{"exp-2"}

	opts := DefaultOptions()
	opts.MaxExperiences = 0 // no limit

	result, err := Assemble(ranking, nil, testProfile(), testJob(), opts)
	require.NoError(t, err)

	section := sectionByKind(t, result.Structured, types.SectionExperience)
	require.Len(t, section.Experiences, 5)
	assert.Equal(t, "exp-2", section.Experiences[0].DurableID, "ranked entry first")
	assert.Equal(t, "exp-1", section.Experiences[1].DurableID, "then profile order")
	assert.Equal(t, "exp-3", section.Experiences[2].DurableID)
}

func TestAssemble_RankedIDsMissingFromProfileIgnored(t *testing.T) {
	ranking := testRanking()
	ranking.RankedExperienceIDs = []string{"exp-999", "exp-1"}

	result, err := Assemble(ranking, nil, testProfile(), testJob(), DefaultOptions())
	require.NoError(t, err)

	section := sectionByKind(t, result.Structured, types.SectionExperience)
	assert.Equal(t, "exp-1", section.Experiences[0].DurableID)
}

func TestAssemble_EnhancedTextPreferred(t *testing.T) {
	enh := &types.EnhancementResult{
		EnhancedSummary: "Sharper summary.",
		EnhancedExperiences: []types.EnhancedText{
			{DurableID: "exp-3", EnhancedText: "Directed the AWS migration end to end."},
		},
		ModelUsed: "enhance-model",
	}

	result, err := Assemble(testRanking(), enh, testProfile(), testJob(), DefaultOptions())
	require.NoError(t, err)

	summary := sectionByKind(t, result.Structured, types.SectionSummary)
	assert.Equal(t, "Sharper summary.", summary.Text)

	experience := sectionByKind(t, result.Structured, types.SectionExperience)
	assert.Equal(t, "Directed the AWS migration end to end.", experience.Experiences[0].Description)
	assert.Equal(t, "Ran the API platform.", experience.Experiences[1].Description, "unenhanced entries keep original text")

	assert.True(t, result.Structured.Metadata.EnhancementUsed)
	assert.Equal(t, "enhance-model", result.Structured.Metadata.EnhancementModel)
}

func TestAssemble_NilRankingUsesProfileOrder(t *testing.T) {
	result, err := Assemble(nil, nil, testProfile(), testJob(), DefaultOptions())
	require.NoError(t, err)

	section := sectionByKind(t, result.Structured, types.SectionExperience)
	assert.Equal(t, "exp-1", section.Experiences[0].DurableID)
}

func TestAssemble_EmptyProfileFails(t *testing.T) {
	profile := &types.Profile{UserID: "user-1", FullName: "Empty Person"}

	_, err := Assemble(testRanking(), nil, profile, testJob(), DefaultOptions())

	var asmErr *AssemblyError
	require.True(t, errors.As(err, &asmErr))
}

func TestAssemble_SkillGroupsFollowRanking(t *testing.T) {
	result, err := Assemble(testRanking(), nil, testProfile(), testJob(), DefaultOptions())
	require.NoError(t, err)

	section := sectionByKind(t, result.Structured, types.SectionSkills)
	require.Len(t, section.SkillGroups, 2)
	assert.Equal(t, "Cloud", section.SkillGroups[0].Category)
	assert.Equal(t, "Languages", section.SkillGroups[1].Category)
}

func TestAssemble_TextAndTreeAgree(t *testing.T) {
	result, err := Assemble(testRanking(), nil, testProfile(), testJob(), DefaultOptions())
	require.NoError(t, err)

	// Every entry in the tree shows up in the flat rendering
	assert.Contains(t, result.ContentText, "Alex Rivera")
	assert.Contains(t, result.ContentText, "Senior Engineer — Hooli")
	assert.Contains(t, result.ContentText, "FastAPI Starter")
	assert.Contains(t, result.ContentText, "B.S. in Computer Science, State University")
	assert.Contains(t, result.ContentText, "Led AWS migration.")

	// Deterministic rendering
	again := RenderText(result.Structured)
	assert.Equal(t, result.ContentText, again)
}

func TestAssemble_ATSScore(t *testing.T) {
	result, err := Assemble(testRanking(), nil, testProfile(), testJob(), DefaultOptions())
	require.NoError(t, err)

	require.NotNil(t, result.ATSScore)
	assert.Equal(t, 3, result.ATSScore.KeywordsTotal)
	assert.Equal(t, 3, result.ATSScore.KeywordsMatched) // Python, FastAPI, AWS all present
	assert.InDelta(t, 1.0, result.ATSScore.KeywordCoverage, 0.0001)
}

func TestScoreKeywords_PartialAndEmpty(t *testing.T) {
	score := ScoreKeywords("built python services", []string{"Python", "Kubernetes"})
	assert.Equal(t, 1, score.KeywordsMatched)
	assert.Equal(t, 2, score.KeywordsTotal)
	assert.InDelta(t, 0.5, score.KeywordCoverage, 0.0001)

	empty := ScoreKeywords("anything", nil)
	assert.Equal(t, 0, empty.KeywordsTotal)
	assert.InDelta(t, 0.0, empty.KeywordCoverage, 0.0001)
}

func TestAssemble_CoverLetter(t *testing.T) {
	opts := DefaultOptions()
	opts.DocumentType = types.DocumentCoverLetter

	result, err := Assemble(testRanking(), nil, testProfile(), testJob(), opts)
	require.NoError(t, err)

	require.Len(t, result.Structured.Sections, 1)
	section := result.Structured.Sections[0]
	assert.Equal(t, types.SectionBody, section.Kind)
	assert.NotEmpty(t, section.Paragraphs)

	assert.Contains(t, result.ContentText, "Dear TargetCorp Hiring Team,")
	assert.Contains(t, result.ContentText, "Senior Python Developer")
	assert.Contains(t, result.ContentText, "Hooli", "top ranked experience anchors the letter")
	assert.Contains(t, result.ContentText, "Alex Rivera")
}
