// Package types provides type definitions for structured data used throughout the resume-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContentKind identifies which category of profile content an item belongs to
type ContentKind string

// Content kind constants for the three rankable categories
const (
	KindExperience ContentKind = "experience"
	KindProject    ContentKind = "project"
	KindSkill      ContentKind = "skill"
)

// ContentItem is one rankable unit of user content. DurableID is the stable
// identifier owned by the profile store; it never appears in LLM-facing text.
type ContentItem struct {
	Kind         ContentKind `json:"kind"`
	DurableID    string      `json:"durable_id"`
	Title        string      `json:"title,omitempty"`
	Company      string      `json:"company,omitempty"`
	Description  string      `json:"description,omitempty"`
	Technologies []string    `json:"technologies,omitempty"`
}

// Profile represents the read-only view of a user's professional profile
// as supplied by the profile store.
type Profile struct {
	UserID      string              `json:"user_id"`
	FullName    string              `json:"full_name"`
	Email       string              `json:"email,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Location    string              `json:"location,omitempty"`
	LinkedIn    string              `json:"linkedin,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Experiences []Experience        `json:"experiences"`
	Projects    []Project           `json:"projects"`
	Skills      map[string][]string `json:"skills"` // category name -> skill names
	Education   []Education         `json:"education,omitempty"`
}

// Experience represents a single work experience entry
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current,omitempty"`
	Description string `json:"description"`
}

// Project represents a single project entry
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Education represents a single education entry
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Honors      string `json:"honors,omitempty"`
}

// Job represents the read-only view of a job posting as supplied by the job store
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// ExperienceItem converts an Experience into a rankable ContentItem
func ExperienceItem(e Experience) ContentItem {
	return ContentItem{
		Kind:        KindExperience,
		DurableID:   e.ID,
		Title:       e.Title,
		Company:     e.Company,
		Description: e.Description,
	}
}

// ProjectItem converts a Project into a rankable ContentItem
func ProjectItem(p Project) ContentItem {
	return ContentItem{
		Kind:         KindProject,
		DurableID:    p.ID,
		Title:        p.Name,
		Description:  p.Description,
		Technologies: p.Technologies,
	}
}
