package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
)

var statusMarks = map[models.ItemStatus]string{
	models.StatusCorrect:    "OK",
	models.StatusImprovable: "IMPROVE",
	models.StatusMissing:    "MISSING",
	models.StatusPending:    "-",
}

// MarkdownFormatter writes a human-readable report.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) ContentType() string { return "text/markdown; charset=utf-8" }

func (f *MarkdownFormatter) Format(w io.Writer, s models.AuditSession) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# SEO audit: %s\n\n", orDash(s.URL))
	fmt.Fprintf(&sb, "- State: %s\n", s.State)
	if !s.AuditedAt.IsZero() {
		fmt.Fprintf(&sb, "- Audited: %s\n", s.AuditedAt.Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(&sb, "- Global score: **%d/100**\n", s.GlobalScore)
	if s.Error != "" {
		fmt.Fprintf(&sb, "- Error: %s\n", s.Error)
	}
	if len(s.TopKeywords) > 0 {
		fmt.Fprintf(&sb, "- Top keywords: %s\n", strings.Join(s.TopKeywords, ", "))
	}

	sb.WriteString("\n## Categories\n\n")
	sb.WriteString("| Category | Weight | Score |\n|---|---:|---:|\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&sb, "| %s (%s) | %.0f | %.0f |\n", escapeCell(c.Name), checklist.Lookup(c.ID).Short, c.Weight, c.Score)
	}

	if len(s.QuickWins) > 0 {
		sb.WriteString("\n## Quick wins\n\n")
		for i, qw := range s.QuickWins {
			fmt.Fprintf(&sb, "%d. **%s** (%s, impact %d, effort %s)", i+1, qw.Label, qw.CategoryName, qw.Impact, qw.Effort)
			if qw.Recommendation != "" {
				fmt.Fprintf(&sb, ": %s", qw.Recommendation)
			}
			sb.WriteString("\n")
		}
	}

	if len(s.Recommendations) > 0 {
		sb.WriteString("\n## Recommendations\n\n")
		for _, r := range s.Recommendations {
			fmt.Fprintf(&sb, "### [%s] %s\n\n%s\n\n", strings.ToUpper(string(r.Priority)), r.Title, r.Description)
		}
	}

	sb.WriteString("\n## Checklist\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&sb, "\n### %s\n\n| Item | Status | Note |\n|---|---|---|\n", c.Name)
		for _, it := range c.Items {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(it.Label), statusMarks[it.Status], escapeCell(it.Note))
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
