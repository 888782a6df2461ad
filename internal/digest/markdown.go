package digest

import (
	"fmt"
	"io"

	"github.com/ppiankov/secdigest/internal/source"
)

// MarkdownFormatter formats a report as Markdown.
type MarkdownFormatter struct{}

// NewMarkdown creates a Markdown formatter.
func NewMarkdown() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as Markdown to w.
func (f *MarkdownFormatter) Format(w io.Writer, report Report) error {
	fmt.Fprintf(w, "# Security digest\n\n")
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "Generated %s\n\n", report.GeneratedAt.Format(loginTimeForm))
	}

	for _, s := range report.Sections {
		fmt.Fprintf(w, "## %s\n\n", s.Source.Name)
		if s.Notice != "" {
			fmt.Fprintf(w, "*%s*\n\n", s.Notice)
			continue
		}
		for _, e := range s.Entries {
			f.writeEntry(w, e)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// writeEntry renders the emphasized field as the bullet headline and the
// remaining fields nested under it.
func (f *MarkdownFormatter) writeEntry(w io.Writer, e source.Entry) {
	if e.Placeholder != "" {
		fmt.Fprintf(w, "- *%s*\n", e.Placeholder)
		return
	}
	if len(e.Fields) == 0 {
		return
	}

	head := 0
	for i, field := range e.Fields {
		if field.Emphasis {
			head = i
			break
		}
	}

	fmt.Fprintf(w, "- **%s:** %s\n", e.Fields[head].Label, e.Fields[head].Value)
	for i, field := range e.Fields {
		if i == head {
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", field.Label, field.Value)
	}
}
