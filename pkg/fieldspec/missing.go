package fieldspec

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Missing lists the required inputs of step that are blank in snapshot.
// Scalar fields are reported by name, record columns as
// "education[0].institute", and a collection below its minimum size by the
// collection name. An unknown step yields nil.
func (s *Store) Missing(step profile.Step, snapshot profile.Snapshot) []string {
	spec, ok := s.Step(step)
	if !ok {
		return nil
	}

	var missing []string
	for _, field := range spec.Fields {
		if field.Required && strings.TrimSpace(snapshot.Get(field.Name)) == "" {
			missing = append(missing, field.Name)
		}
	}

	rows := records(spec.Collection, snapshot)
	filled := 0
	for _, row := range rows {
		if row != nil {
			filled++
		}
	}
	if spec.Collection != "" && filled < spec.MinRecords {
		missing = append(missing, spec.Collection)
	}
	for idx, row := range rows {
		if row == nil {
			continue
		}
		for _, column := range spec.Columns {
			if column.Required && strings.TrimSpace(row[column.Name]) == "" {
				missing = append(missing, fmt.Sprintf("%s[%d].%s", spec.Collection, idx, column.Name))
			}
		}
	}
	return missing
}

// records flattens the collection rows into column maps. Rows where every
// column is blank are kept as nil so indexes match the state.
func records(collection string, snapshot profile.Snapshot) []map[string]string {
	var rows []map[string]string
	switch collection {
	case CollectionEducation:
		for _, r := range snapshot.Education {
			if r.Empty() {
				rows = append(rows, nil)
				continue
			}
			rows = append(rows, map[string]string{
				"institute":      r.Institute,
				"degree":         r.Degree,
				"field_of_study": r.FieldOfStudy,
				"start":          r.Start,
				"end":            r.End,
			})
		}
	case CollectionCareer:
		for _, r := range snapshot.Career {
			if r.Empty() {
				rows = append(rows, nil)
				continue
			}
			rows = append(rows, map[string]string{
				"designation": r.Designation,
				"company":     r.Company,
				"location":    r.Location,
				"start":       r.Start,
				"end":         r.End,
			})
		}
	}
	return rows
}
