// Package types provides type definitions for structured data used throughout the resume-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// DocumentType identifies the kind of document being generated
type DocumentType string

// Document type constants
const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
)

// DocumentStatus is one state of the generation state machine
type DocumentStatus string

// Generation state machine states. Completed, failed and cancelled are
// terminal; cancelled is unreachable once assembly has started.
const (
	StatusPending    DocumentStatus = "pending"
	StatusRanking    DocumentStatus = "ranking"
	StatusEnhancing  DocumentStatus = "enhancing"
	StatusAssembling DocumentStatus = "assembling"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
	StatusCancelled  DocumentStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// GeneratedDocument is the record tracked across a generation run. It is
// created at orchestration start and mutated in place by each stage.
type GeneratedDocument struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	JobID        string              `json:"job_id"`
	DocumentType DocumentType        `json:"document_type"`
	Status       DocumentStatus      `json:"status"`
	Stage        string              `json:"stage,omitempty"`
	Progress     int                 `json:"progress"` // percent, 0-100
	ContentText  string              `json:"content_text,omitempty"`
	Structured   *StructuredDocument `json:"content_structured,omitempty"`
	ATSScore     *ATSScore           `json:"ats_score,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
}

// StructuredDocument is the tagged-section tree form of a generated document.
// The flat ContentText rendering is derived from this tree and must agree
// with it in content.
type StructuredDocument struct {
	Header   DocumentHeader   `json:"header"`
	Sections []Section        `json:"sections"`
	Metadata DocumentMetadata `json:"metadata"`
}

// DocumentHeader holds contact fields; only non-empty fields are populated
type DocumentHeader struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// SectionKind tags a document section variant
type SectionKind string

// Section kind constants
const (
	SectionSummary    SectionKind = "summary"
	SectionSkills     SectionKind = "skills"
	SectionExperience SectionKind = "experience"
	SectionProjects   SectionKind = "projects"
	SectionEducation  SectionKind = "education"
	SectionBody       SectionKind = "body" // cover letter paragraphs
)

// Section is one tagged section of a structured document. Exactly one of the
// variant fields is populated, according to Kind.
type Section struct {
	Kind        SectionKind       `json:"kind"`
	Title       string            `json:"title"`
	Text        string            `json:"text,omitempty"`
	SkillGroups []SkillGroup      `json:"skill_groups,omitempty"`
	Experiences []ExperienceEntry `json:"experiences,omitempty"`
	Projects    []ProjectEntry    `json:"projects,omitempty"`
	Education   []EducationEntry  `json:"education,omitempty"`
	Paragraphs  []string          `json:"paragraphs,omitempty"`
}

// SkillGroup is a named category of skills
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// ExperienceEntry is one experience row in an assembled document
type ExperienceEntry struct {
	DurableID   string `json:"durable_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

// ProjectEntry is one project row in an assembled document
type ProjectEntry struct {
	DurableID    string   `json:"durable_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
}

// EducationEntry is one education row in an assembled document
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Honors      string `json:"honors,omitempty"`
}

// DocumentMetadata records how a document was produced
type DocumentMetadata struct {
	RankingModel     string           `json:"ranking_model,omitempty"`
	EnhancementModel string           `json:"enhancement_model,omitempty"`
	EnhancementUsed  bool             `json:"enhancement_used"`
	ExperienceCount  int              `json:"experience_count"`
	ProjectCount     int              `json:"project_count"`
	SkillGroupCount  int              `json:"skill_group_count"`
	StageDurationsMS map[string]int64 `json:"stage_durations_ms,omitempty"`
	FactWarnings     []string         `json:"fact_warnings,omitempty"`
}

// ATSScore is an approximate keyword-coverage heuristic, not a learned score
type ATSScore struct {
	KeywordCoverage float64 `json:"keyword_coverage"` // 0.0-1.0
	KeywordsMatched int     `json:"keywords_matched"`
	KeywordsTotal   int     `json:"keywords_total"`
}
