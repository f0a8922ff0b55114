package assembly

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-generator/internal/types"
)

// buildCoverLetterSections renders a paragraph-form letter from the same
// ranked inputs as a resume. The top-ranked experience and project anchor
// the middle paragraphs.
func buildCoverLetterSections(ranking *types.RankingResult, enh *types.EnhancementResult, profile *types.Profile, job *types.Job, opts Options) []types.Section {
	var paragraphs []string

	paragraphs = append(paragraphs, fmt.Sprintf(
		"Dear %s Hiring Team,", job.Company))

	opening := fmt.Sprintf("I am writing to express my interest in the %s position at %s.", job.Title, job.Company)
	summary := profile.Summary
	if enh != nil && enh.EnhancedSummary != "" {
		summary = enh.EnhancedSummary
	}
	if opts.IncludeSummary && summary != "" {
		opening += " " + summary
	}
	paragraphs = append(paragraphs, opening)

	if entries := orderedExperiences(ranking, enh, profile, 1); len(entries) > 0 {
		top := entries[0]
		paragraphs = append(paragraphs, fmt.Sprintf(
			"In my role as %s at %s, %s", top.Title, top.Company, lowerFirst(top.Description)))
	}

	if entries := orderedProjects(ranking, enh, profile, 1); len(entries) > 0 {
		top := entries[0]
		line := fmt.Sprintf("Beyond my professional roles, I built %s: %s", top.Name, top.Description)
		if len(top.Technologies) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(top.Technologies, ", "))
		}
		paragraphs = append(paragraphs, line)
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"I would welcome the opportunity to bring this experience to %s. Thank you for your consideration.", job.Company))
	paragraphs = append(paragraphs, fmt.Sprintf("Sincerely,\n%s", profile.FullName))

	return []types.Section{{
		Kind:       types.SectionBody,
		Title:      fmt.Sprintf("Cover Letter — %s", job.Title),
		Paragraphs: paragraphs,
	}}
}

// lowerFirst lowercases the first rune so a description reads naturally
// after a sentence lead-in.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
