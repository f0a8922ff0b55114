// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of the target job.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	if job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	}
	if len(job.Keywords) > 0 {
		keywords := strings.Join(job.Keywords, ", ")
		if len(keywords) > 40 {
			keywords = keywords[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", keywords))
	}

	p.printBox("TARGET JOB", sb.String())
}

// PrintRanking outputs the ranked content ids and the model's rationale.
func (p *Printer) PrintRanking(ranking *types.RankingResult) {
	if ranking == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Confidence: %.2f", ranking.Confidence))
	if ranking.ModelUsed != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", ranking.ModelUsed))
	}
	sb.WriteString("\n\n")

	writeIDList := func(label string, ids []string) {
		if len(ids) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(ids), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  #%d  %s\n", i+1, ids[i]))
		}
		if len(ids) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ids)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	writeIDList("Experiences", ranking.RankedExperienceIDs)
	writeIDList("Projects", ranking.RankedProjectIDs)
	writeIDList("Skill categories", ranking.RankedSkillIDs)

	if ranking.Rationale != "" {
		rationale := ranking.Rationale
		if len(rationale) > 120 {
			rationale = rationale[:117] + "..."
		}
		sb.WriteString("Rationale: " + rationale)
	}

	p.printBox("CONTENT RANKING", sb.String())
}

// PrintDocument outputs the terminal state of a generation run.
func (p *Printer) PrintDocument(doc *types.GeneratedDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s (%d%%)\n", doc.Status, doc.Progress))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", doc.DocumentType))
	if doc.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", doc.ErrorMessage))
	}
	if doc.Structured != nil {
		meta := doc.Structured.Metadata
		sb.WriteString(fmt.Sprintf("Sections: %d experiences, %d projects, %d skill groups\n",
			meta.ExperienceCount, meta.ProjectCount, meta.SkillGroupCount))
		if meta.EnhancementUsed {
			sb.WriteString("Enhanced: yes\n")
		} else {
			sb.WriteString("Enhanced: no (original text)\n")
		}
		if len(meta.FactWarnings) > 0 {
			sb.WriteString(fmt.Sprintf("Facts:    %d unsupported claim(s) flagged\n", len(meta.FactWarnings)))
		}
	}
	if doc.ATSScore != nil {
		sb.WriteString(fmt.Sprintf("Coverage: %.0f%% (%d/%d keywords)\n",
			doc.ATSScore.KeywordCoverage*100, doc.ATSScore.KeywordsMatched, doc.ATSScore.KeywordsTotal))
	}

	p.printBox("GENERATED DOCUMENT", sb.String())
}
