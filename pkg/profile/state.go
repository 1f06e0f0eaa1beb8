package profile

import (
	"fmt"
	"sync"
)

// State is the form state owned by a single wizard screen. Scalar fields are
// kept as strings; education and career are independent record lists.
// State is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	values    map[string]string
	education []EducationRecord
	career    []CareerRecord
}

// NewState returns a state seeded with the provided values.
func NewState(values map[string]string) *State {
	s := &State{values: make(map[string]string, len(Fields))}
	for key, value := range values {
		s.values[key] = value
	}
	return s
}

// Get returns the current value of a field ("" when unset).
func (s *State) Get(field string) string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[field]
}

// Set stores a field value.
func (s *State) Set(field, value string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string, len(Fields))
	}
	s.values[field] = value
}

// Values returns a copy of the scalar field map.
func (s *State) Values() map[string]string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Education returns a copy of the education records.
func (s *State) Education() []EducationRecord {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]EducationRecord(nil), s.education...)
}

// Career returns a copy of the career records.
func (s *State) Career() []CareerRecord {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CareerRecord(nil), s.career...)
}

// AddEducation appends a record and returns its index.
func (s *State) AddEducation(record EducationRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.education = append(s.education, record)
	return len(s.education) - 1
}

// UpdateEducation replaces the record at index.
func (s *State) UpdateEducation(index int, record EducationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.education) {
		return fmt.Errorf("profile: education index %d out of range", index)
	}
	s.education[index] = record
	return nil
}

// RemoveEducation deletes the record at index.
func (s *State) RemoveEducation(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.education) {
		return fmt.Errorf("profile: education index %d out of range", index)
	}
	s.education = append(s.education[:index:index], s.education[index+1:]...)
	return nil
}

// AddCareer appends a record and returns its index.
func (s *State) AddCareer(record CareerRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.career = append(s.career, record)
	return len(s.career) - 1
}

// UpdateCareer replaces the record at index.
func (s *State) UpdateCareer(index int, record CareerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.career) {
		return fmt.Errorf("profile: career index %d out of range", index)
	}
	s.career[index] = record
	return nil
}

// RemoveCareer deletes the record at index.
func (s *State) RemoveCareer(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.career) {
		return fmt.Errorf("profile: career index %d out of range", index)
	}
	s.career = append(s.career[:index:index], s.career[index+1:]...)
	return nil
}

// Snapshot is an immutable copy of the state handed to pure consumers such
// as the step assembler.
type Snapshot struct {
	Values    map[string]string
	Education []EducationRecord
	Career    []CareerRecord
}

// Get returns a field value from the snapshot.
func (s Snapshot) Get(field string) string {
	return s.Values[field]
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make(map[string]string, len(s.values))
	for key, value := range s.values {
		values[key] = value
	}
	return Snapshot{
		Values:    values,
		Education: append([]EducationRecord(nil), s.education...),
		Career:    append([]CareerRecord(nil), s.career...),
	}
}
