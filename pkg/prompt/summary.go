package prompt

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-profileflow/pkg/fieldspec"
	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

//go:embed templates/*.tpl
var templateFS embed.FS

var (
	summaryOnce sync.Once
	summaryTpl  *pongo2.Template
	summaryErr  error
)

func summaryTemplate() (*pongo2.Template, error) {
	summaryOnce.Do(func() {
		set := pongo2.NewSet("profileflow", pongo2.NewFSLoader(templateFS))
		summaryTpl, summaryErr = set.FromFile("templates/summary.tpl")
	})
	return summaryTpl, summaryErr
}

// SummaryRow is one labelled value.
type SummaryRow struct {
	Label string
	Value string
}

// SummarySection groups the rows of one step.
type SummarySection struct {
	Title string
	Rows  []SummaryRow
}

// Summary lists the non-blank values of every step, with select values
// shown by their option names.
func (s *Session) Summary() []SummarySection {
	snapshot := s.flow.State().Snapshot()
	var sections []SummarySection
	for _, step := range profile.Steps {
		spec, ok := s.specs.Step(step)
		if !ok {
			continue
		}
		section := SummarySection{Title: spec.Title}
		if spec.Collection != "" {
			for idx, line := range recordLines(spec, snapshot) {
				section.Rows = append(section.Rows, SummaryRow{Label: fmt.Sprintf("#%d", idx+1), Value: line})
			}
		}
		for _, field := range spec.Fields {
			value := strings.TrimSpace(snapshot.Get(field.Name))
			if value == "" {
				continue
			}
			if field.HasOptions() {
				value = option.Label(s.flow.Choices(field), value)
			}
			section.Rows = append(section.Rows, SummaryRow{Label: field.Label, Value: value})
		}
		sections = append(sections, section)
	}
	return sections
}

// WriteSummary renders Summary to w.
func (s *Session) WriteSummary(w io.Writer) error {
	tpl, err := summaryTemplate()
	if err != nil {
		return fmt.Errorf("prompt: summary template: %w", err)
	}
	if err := tpl.ExecuteWriter(pongo2.Context{"sections": s.Summary()}, w); err != nil {
		return fmt.Errorf("prompt: render summary: %w", err)
	}
	return nil
}

// recordLines describes each record of the step's collection on one line,
// listing the non-blank columns in definition order.
func recordLines(spec fieldspec.StepSpec, snapshot profile.Snapshot) []string {
	var records []map[string]string
	switch spec.Collection {
	case fieldspec.CollectionEducation:
		for _, r := range snapshot.Education {
			records = append(records, map[string]string{
				"institute": r.Institute, "degree": r.Degree, "field_of_study": r.FieldOfStudy,
				"start": r.Start, "end": r.End,
			})
		}
	case fieldspec.CollectionCareer:
		for _, r := range snapshot.Career {
			records = append(records, map[string]string{
				"designation": r.Designation, "company": r.Company, "location": r.Location,
				"start": r.Start, "end": r.End,
			})
		}
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		var parts []string
		for _, column := range spec.Columns {
			if value := strings.TrimSpace(record[column.Name]); value != "" {
				parts = append(parts, column.Label+": "+value)
			}
		}
		if len(parts) == 0 {
			parts = append(parts, "(empty)")
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return lines
}
