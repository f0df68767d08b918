package report

import (
	"fmt"
	"strings"

	"equity-reporter/pkg/utils"
)

// RenderMarkdown serializes an assembled report into the canonical markdown
// layout. Rendering is a pure function of the report value, so rendering a
// frozen report twice produces identical bytes.
func RenderMarkdown(r *Report) string {
	var b strings.Builder

	heading := r.Ticker
	if r.CompanyName != "" {
		heading = fmt.Sprintf("%s (%s)", r.CompanyName, r.Ticker)
	}
	b.WriteString(fmt.Sprintf("# Equity Research Report: %s\n\n", heading))
	b.WriteString(fmt.Sprintf("_Generated: %s_\n", utils.PrettyDate(r.GeneratedAt)))
	if r.Status != StatusOK {
		b.WriteString(fmt.Sprintf("_Status: %s, %s_\n", r.Status, r.StatusReason))
	}
	b.WriteString("\n")

	for _, section := range r.Sections {
		b.WriteString(fmt.Sprintf("## %s\n\n", section.Title))
		for _, line := range section.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if r.Verdict != nil {
		b.WriteString(fmt.Sprintf("## %s\n\n", SectionAnalystVerdict))
		b.WriteString(fmt.Sprintf("Score: %.1f / 100\n", r.Verdict.Score))
		b.WriteString(fmt.Sprintf("Recommendation: %s\n", r.Verdict.Recommendation))
		b.WriteString(fmt.Sprintf("Reasoning: %s\n", r.Verdict.Reasoning))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
