package fieldspec

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

//go:embed data/steps.yaml
var defaultFS embed.FS

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// Default returns the embedded step definitions.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadFS(defaultFS)
	})
	return defaultStore, defaultErr
}

// LoadFS walks fsys and merges every JSON/YAML definition file it finds.
// Defining the same step twice is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{steps: make(map[profile.Step]StepSpec)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldspec: read %s: %w", path, err)
		}
		return store.merge(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse builds a store from a single JSON or YAML document.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{steps: make(map[profile.Step]StepSpec)}
	if err := store.merge(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) merge(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for slug, raw := range doc.Steps {
		step, err := profile.ParseStep(slug)
		if err != nil {
			return fmt.Errorf("fieldspec: file %s: %w", source, err)
		}
		if _, exists := s.steps[step]; exists {
			return fmt.Errorf("fieldspec: duplicate step %q (file %s)", slug, source)
		}
		spec, err := normaliseStep(step, raw, source)
		if err != nil {
			return err
		}
		s.steps[step] = spec
	}
	return nil
}

// Step returns the definition for step.
func (s *Store) Step(step profile.Step) (StepSpec, bool) {
	if s == nil {
		return StepSpec{}, false
	}
	spec, ok := s.steps[step]
	return spec, ok
}

// Empty reports whether the store holds no steps.
func (s *Store) Empty() bool {
	return s == nil || len(s.steps) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fieldspec: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("fieldspec: parse %s: invalid JSON or YAML", source)
}

func normaliseStep(step profile.Step, raw stepFile, source string) (StepSpec, error) {
	spec := StepSpec{
		Step:       step,
		Slug:       step.Slug(),
		Title:      strings.TrimSpace(raw.Title),
		Collection: strings.TrimSpace(raw.Collection),
		MinRecords: raw.MinRecords,
	}
	if spec.Title == "" {
		spec.Title = DefaultLabel(spec.Slug)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, f := range raw.Fields {
		field, err := normaliseField(f, source, step, idx)
		if err != nil {
			return StepSpec{}, err
		}
		if !profile.IsField(field.Name) {
			return StepSpec{}, fmt.Errorf("fieldspec: file %s step %s: unknown field %q", source, step, field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return StepSpec{}, fmt.Errorf("fieldspec: file %s step %s: duplicate field %q", source, step, field.Name)
		}
		seen[field.Name] = struct{}{}
		spec.Fields = append(spec.Fields, field)
	}

	switch spec.Collection {
	case "":
		if len(raw.Columns) > 0 {
			return StepSpec{}, fmt.Errorf("fieldspec: file %s step %s: columns require a collection", source, step)
		}
	case CollectionEducation, CollectionCareer:
		known := collectionColumns[spec.Collection]
		for idx, c := range raw.Columns {
			column, err := normaliseField(c, source, step, idx)
			if err != nil {
				return StepSpec{}, err
			}
			if _, ok := known[column.Name]; !ok {
				return StepSpec{}, fmt.Errorf("fieldspec: file %s step %s: unknown %s column %q", source, step, spec.Collection, column.Name)
			}
			spec.Columns = append(spec.Columns, column)
		}
	default:
		return StepSpec{}, fmt.Errorf("fieldspec: file %s step %s: unknown collection %q", source, step, spec.Collection)
	}
	return spec, nil
}

func normaliseField(raw fieldFile, source string, step profile.Step, idx int) (FieldSpec, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return FieldSpec{}, fmt.Errorf("fieldspec: file %s step %s: field %d has no name", source, step, idx)
	}
	field := FieldSpec{
		Name:     name,
		Label:    strings.TrimSpace(raw.Label),
		Help:     strings.TrimSpace(raw.Help),
		Kind:     Kind(strings.ToLower(strings.TrimSpace(raw.Kind))),
		Required: raw.Required,
		Source:   strings.TrimSpace(raw.Source),
	}
	if field.Label == "" {
		field.Label = DefaultLabel(name)
	}
	for _, choice := range raw.Choices {
		field.Choices = append(field.Choices, option.Option{ID: strings.TrimSpace(choice.ID), Name: strings.TrimSpace(choice.Name)})
	}
	field.Choices = option.Dedupe(field.Choices)

	switch field.Kind {
	case "":
		field.Kind = KindText
		if field.HasOptions() {
			field.Kind = KindSelect
		}
	case KindText, KindTextArea, KindNumber, KindDate, KindList:
	case KindSelect:
		if !field.HasOptions() {
			return FieldSpec{}, fmt.Errorf("fieldspec: file %s step %s: select %q needs a source or choices", source, step, name)
		}
	default:
		return FieldSpec{}, fmt.Errorf("fieldspec: file %s step %s: field %q has unknown kind %q", source, step, name, raw.Kind)
	}
	return field, nil
}

var collectionColumns = map[string]map[string]struct{}{
	CollectionEducation: {"institute": {}, "degree": {}, "field_of_study": {}, "start": {}, "end": {}},
	CollectionCareer:    {"designation": {}, "company": {}, "location": {}, "start": {}, "end": {}},
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
