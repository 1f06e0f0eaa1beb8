package fieldspec

import (
	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Kind is the input control used for a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
	KindList     Kind = "list"
)

// Option sources resolved at runtime from the dropdown bundle or the
// dependent field graph.
const (
	SourceReligions       = "religions"
	SourceCastes          = "castes"
	SourceCountries       = "countries"
	SourceStates          = "states"
	SourceCities          = "cities"
	SourceMaritalStatuses = "marital_statuses"
)

// Collection names for the record-list steps.
const (
	CollectionEducation = "education"
	CollectionCareer    = "career"
)

// Store holds the parsed step definitions. Treat it as immutable after
// construction; it is then safe for concurrent readers.
type Store struct {
	steps map[profile.Step]StepSpec
}

// StepSpec describes one wizard page.
type StepSpec struct {
	Step       profile.Step
	Slug       string
	Title      string
	Fields     []FieldSpec
	Collection string
	Columns    []FieldSpec
	MinRecords int
}

// FieldSpec describes a single input. For collection steps it describes a
// record column.
type FieldSpec struct {
	Name     string
	Label    string
	Help     string
	Kind     Kind
	Required bool
	Source   string
	Choices  []option.Option
}

// HasOptions reports whether the field is picked from a list.
func (f FieldSpec) HasOptions() bool {
	return f.Source != "" || len(f.Choices) > 0
}

type documentFile struct {
	Steps map[string]stepFile `json:"steps" yaml:"steps"`
}

type stepFile struct {
	Title      string      `json:"title" yaml:"title"`
	Fields     []fieldFile `json:"fields" yaml:"fields"`
	Collection string      `json:"collection" yaml:"collection"`
	Columns    []fieldFile `json:"columns" yaml:"columns"`
	MinRecords int         `json:"minRecords" yaml:"minRecords"`
}

type fieldFile struct {
	Name     string       `json:"name" yaml:"name"`
	Label    string       `json:"label" yaml:"label"`
	Help     string       `json:"help" yaml:"help"`
	Kind     string       `json:"kind" yaml:"kind"`
	Required bool         `json:"required" yaml:"required"`
	Source   string       `json:"source" yaml:"source"`
	Choices  []choiceFile `json:"choices" yaml:"choices"`
}

type choiceFile struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
