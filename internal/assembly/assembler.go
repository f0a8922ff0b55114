// Package assembly merges ranked, enhanced content with profile and job facts
// into a structured document tree, its flat text rendering, and an
// approximate ATS match score.
package assembly

import (
	"github.com/jonathan/resume-generator/internal/types"
)

// Options controls how much content an assembled document carries
type Options struct {
	DocumentType   types.DocumentType `validate:"required,oneof=resume cover_letter"`
	MaxExperiences int                `validate:"min=0"`
	MaxProjects    int                `validate:"min=0"`
	IncludeSummary bool
}

// DefaultOptions returns the standard resume assembly options
func DefaultOptions() Options {
	return Options{
		DocumentType:   types.DocumentResume,
		MaxExperiences: 5,
		MaxProjects:    3,
		IncludeSummary: true,
	}
}

// Result is the assembled document in both renderings plus its score. The
// flat text is derived from the structured tree; the two never diverge in
// content, only in format.
type Result struct {
	ContentText string
	Structured  *types.StructuredDocument
	ATSScore    *types.ATSScore
}

// Assemble builds a document from a ranking (pass an identity ranking when
// none exists), enhancement output (nil to use original text throughout),
// and the profile and job read from their stores. A profile with zero
// experiences and zero projects cannot produce a document.
func Assemble(ranking *types.RankingResult, enh *types.EnhancementResult, profile *types.Profile, job *types.Job, opts Options) (*Result, error) {
	if profile == nil {
		return nil, &AssemblyError{Message: "profile is required"}
	}
	if job == nil {
		return nil, &AssemblyError{Message: "job is required"}
	}
	if len(profile.Experiences) == 0 && len(profile.Projects) == 0 {
		return nil, &AssemblyError{Message: "profile has no experiences or projects to assemble"}
	}
	if ranking == nil {
		ranking = types.IdentityRanking(profile.UserID, job.ID, profile)
	}

	doc := &types.StructuredDocument{
		Header: buildHeader(profile),
	}

	if opts.DocumentType == types.DocumentCoverLetter {
		doc.Sections = buildCoverLetterSections(ranking, enh, profile, job, opts)
	} else {
		doc.Sections = buildResumeSections(ranking, enh, profile, opts)
	}

	doc.Metadata = buildMetadata(doc, ranking, enh)

	text := RenderText(doc)
	return &Result{
		ContentText: text,
		Structured:  doc,
		ATSScore:    ScoreKeywords(text, job.Keywords),
	}, nil
}

// buildHeader populates only the contact fields the profile actually has
func buildHeader(profile *types.Profile) types.DocumentHeader {
	return types.DocumentHeader{
		Name:     profile.FullName,
		Email:    profile.Email,
		Phone:    profile.Phone,
		Location: profile.Location,
		LinkedIn: profile.LinkedIn,
	}
}

func buildResumeSections(ranking *types.RankingResult, enh *types.EnhancementResult, profile *types.Profile, opts Options) []types.Section {
	var sections []types.Section

	if opts.IncludeSummary {
		summary := profile.Summary
		if enh != nil && enh.EnhancedSummary != "" {
			summary = enh.EnhancedSummary
		}
		if summary != "" {
			sections = append(sections, types.Section{
				Kind:  types.SectionSummary,
				Title: "Professional Summary",
				Text:  summary,
			})
		}
	}

	if groups := orderedSkillGroups(ranking, profile); len(groups) > 0 {
		sections = append(sections, types.Section{
			Kind:        types.SectionSkills,
			Title:       "Skills",
			SkillGroups: groups,
		})
	}

	if entries := orderedExperiences(ranking, enh, profile, opts.MaxExperiences); len(entries) > 0 {
		sections = append(sections, types.Section{
			Kind:        types.SectionExperience,
			Title:       "Experience",
			Experiences: entries,
		})
	}

	if entries := orderedProjects(ranking, enh, profile, opts.MaxProjects); len(entries) > 0 {
		sections = append(sections, types.Section{
			Kind:     types.SectionProjects,
			Title:    "Projects",
			Projects: entries,
		})
	}

	if len(profile.Education) > 0 {
		entries := make([]types.EducationEntry, 0, len(profile.Education))
		for _, edu := range profile.Education {
			entries = append(entries, types.EducationEntry{
				Institution: edu.Institution,
				Degree:      edu.Degree,
				Field:       edu.Field,
				EndDate:     edu.EndDate,
				Honors:      edu.Honors,
			})
		}
		sections = append(sections, types.Section{
			Kind:      types.SectionEducation,
			Title:     "Education",
			Education: entries,
		})
	}

	return sections
}

// orderedExperiences emits ranked entries first in ranked order, then any
// profile entries the ranking missed in their original order, truncated to
// max. Nothing the user owns is silently dropped, only deprioritized.
func orderedExperiences(ranking *types.RankingResult, enh *types.EnhancementResult, profile *types.Profile, max int) []types.ExperienceEntry {
	byID := make(map[string]types.Experience, len(profile.Experiences))
	for _, e := range profile.Experiences {
		byID[e.ID] = e
	}

	ordered := make([]types.Experience, 0, len(profile.Experiences))
	used := make(map[string]bool)
	for _, id := range ranking.RankedExperienceIDs {
		if e, ok := byID[id]; ok && !used[id] {
			ordered = append(ordered, e)
			used[id] = true
		}
	}
	for _, e := range profile.Experiences {
		if !used[e.ID] {
			ordered = append(ordered, e)
		}
	}

	if max > 0 && len(ordered) > max {
		ordered = ordered[:max]
	}

	entries := make([]types.ExperienceEntry, 0, len(ordered))
	for _, e := range ordered {
		description := e.Description
		if enh != nil {
			if text := enh.ExperienceText(e.ID); text != "" {
				description = text
			}
		}
		entries = append(entries, types.ExperienceEntry{
			DurableID:   e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			IsCurrent:   e.IsCurrent,
			Description: description,
		})
	}
	return entries
}

func orderedProjects(ranking *types.RankingResult, enh *types.EnhancementResult, profile *types.Profile, max int) []types.ProjectEntry {
	byID := make(map[string]types.Project, len(profile.Projects))
	for _, p := range profile.Projects {
		byID[p.ID] = p
	}

	ordered := make([]types.Project, 0, len(profile.Projects))
	used := make(map[string]bool)
	for _, id := range ranking.RankedProjectIDs {
		if p, ok := byID[id]; ok && !used[id] {
			ordered = append(ordered, p)
			used[id] = true
		}
	}
	for _, p := range profile.Projects {
		if !used[p.ID] {
			ordered = append(ordered, p)
		}
	}

	if max > 0 && len(ordered) > max {
		ordered = ordered[:max]
	}

	entries := make([]types.ProjectEntry, 0, len(ordered))
	for _, p := range ordered {
		description := p.Description
		if enh != nil {
			if text := enh.ProjectText(p.ID); text != "" {
				description = text
			}
		}
		entries = append(entries, types.ProjectEntry{
			DurableID:    p.ID,
			Name:         p.Name,
			Description:  description,
			Technologies: p.Technologies,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		})
	}
	return entries
}

// orderedSkillGroups emits ranked categories first, then remaining categories
// in sorted order for determinism.
func orderedSkillGroups(ranking *types.RankingResult, profile *types.Profile) []types.SkillGroup {
	if len(profile.Skills) == 0 {
		return nil
	}

	identity := types.IdentityRanking(profile.UserID, "", profile)

	groups := make([]types.SkillGroup, 0, len(profile.Skills))
	used := make(map[string]bool)
	appendGroup := func(category string) {
		items, ok := profile.Skills[category]
		if !ok || used[category] {
			return
		}
		used[category] = true
		groups = append(groups, types.SkillGroup{Category: category, Items: items})
	}

	for _, category := range ranking.RankedSkillIDs {
		appendGroup(category)
	}
	for _, category := range identity.RankedSkillIDs {
		appendGroup(category)
	}
	return groups
}

func buildMetadata(doc *types.StructuredDocument, ranking *types.RankingResult, enh *types.EnhancementResult) types.DocumentMetadata {
	meta := types.DocumentMetadata{
		RankingModel: ranking.ModelUsed,
	}
	if enh != nil {
		meta.EnhancementModel = enh.ModelUsed
		meta.EnhancementUsed = true
	}
	for _, section := range doc.Sections {
		switch section.Kind {
		case types.SectionExperience:
			meta.ExperienceCount = len(section.Experiences)
		case types.SectionProjects:
			meta.ProjectCount = len(section.Projects)
		case types.SectionSkills:
			meta.SkillGroupCount = len(section.SkillGroups)
		}
	}
	return meta
}
