package assembly

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-generator/internal/types"
)

// RenderText produces the flat text rendering of a structured document.
// The rendering is deterministic: same tree, same text.
func RenderText(doc *types.StructuredDocument) string {
	var sb strings.Builder

	renderHeader(&sb, doc.Header)
	for _, section := range doc.Sections {
		sb.WriteString("\n")
		renderSection(&sb, section)
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func renderHeader(sb *strings.Builder, header types.DocumentHeader) {
	if header.Name != "" {
		sb.WriteString(header.Name + "\n")
	}
	var contact []string
	for _, field := range []string{header.Email, header.Phone, header.Location, header.LinkedIn} {
		if field != "" {
			contact = append(contact, field)
		}
	}
	if len(contact) > 0 {
		sb.WriteString(strings.Join(contact, " | ") + "\n")
	}
}

func renderSection(sb *strings.Builder, section types.Section) {
	sb.WriteString(strings.ToUpper(section.Title) + "\n")

	switch section.Kind {
	case types.SectionSummary:
		sb.WriteString(section.Text + "\n")
	case types.SectionSkills:
		for _, group := range section.SkillGroups {
			sb.WriteString(fmt.Sprintf("%s: %s\n", group.Category, strings.Join(group.Items, ", ")))
		}
	case types.SectionExperience:
		for _, e := range section.Experiences {
			sb.WriteString(fmt.Sprintf("%s — %s", e.Title, e.Company))
			if dates := dateRange(e.StartDate, e.EndDate, e.IsCurrent); dates != "" {
				sb.WriteString(" (" + dates + ")")
			}
			sb.WriteString("\n")
			if e.Description != "" {
				sb.WriteString(e.Description + "\n")
			}
		}
	case types.SectionProjects:
		for _, p := range section.Projects {
			sb.WriteString(p.Name)
			if dates := dateRange(p.StartDate, p.EndDate, false); dates != "" {
				sb.WriteString(" (" + dates + ")")
			}
			sb.WriteString("\n")
			if p.Description != "" {
				sb.WriteString(p.Description + "\n")
			}
			if len(p.Technologies) > 0 {
				sb.WriteString("Technologies: " + strings.Join(p.Technologies, ", ") + "\n")
			}
		}
	case types.SectionEducation:
		for _, edu := range section.Education {
			line := fmt.Sprintf("%s, %s", edu.Degree, edu.Institution)
			if edu.Field != "" {
				line = fmt.Sprintf("%s in %s, %s", edu.Degree, edu.Field, edu.Institution)
			}
			if edu.EndDate != "" {
				line += " (" + edu.EndDate + ")"
			}
			sb.WriteString(line + "\n")
			if edu.Honors != "" {
				sb.WriteString(edu.Honors + "\n")
			}
		}
	case types.SectionBody:
		for i, paragraph := range section.Paragraphs {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(paragraph + "\n")
		}
	}
}

func dateRange(start, end string, current bool) string {
	switch {
	case start == "" && end == "":
		return ""
	case current || end == "":
		return start + " – Present"
	case start == "":
		return end
	default:
		return start + " – " + end
	}
}
