// Package report renders the weekly Markdown document.
package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

const reportTemplate = `# Overall Summary

{{ .Overview }}

# Weekly PR Summary

**Date Range:** {{ .Range }}

## Summary by Author

{{ if .PullRequests }}| Author | Open | Closed | Merged | Total |
|--------|------|--------|--------|-------|
{{ range .AuthorBreakdown }}| {{ .Author }} | {{ .Open }} | {{ .Closed }} | {{ .Merged }} | {{ .Total }} |
{{ end }}{{ else }}No pull requests were created in this period.
{{ end }}
# Weekly PR Dashboard

**Date Range:** {{ .Range }}

{{ if .PullRequests }}| Repo | PR Number | Title | Author | Created At | Status |
|------|-----------|-------|--------|------------|--------|
{{ range .PullRequests }}| {{ .Repo }} | {{ prlink . }} | {{ escape .Title }} | {{ .Author }} | {{ date .CreatedAt }} | {{ .Status }} |
{{ end }}{{ else }}No pull requests were created in this period.
{{ end }}
# Detailed PR Summaries

{{ range .PullRequests }}## PR {{ .Number }}: {{ escape .Title }}{{ if .URL }} ([Link]({{ .URL }})){{ end }}

{{ .Summary }}

---

{{ end }}`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"escape": escapeCell,
	"date":   func(t time.Time) string { return t.Format("2006-01-02") },
	"prlink": prLink,
}).Parse(reportTemplate))

// Render assembles the Markdown document. Record order is preserved; an
// empty record set still yields a valid document.
func Render(rep model.Report) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, rep); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

// escapeCell keeps titles from breaking Markdown table rows.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func prLink(pr model.PullRequest) string {
	if pr.URL == "" {
		return fmt.Sprintf("%d", pr.Number)
	}
	return fmt.Sprintf("[%d](%s)", pr.Number, pr.URL)
}
