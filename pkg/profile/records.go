package profile

import "strings"

// EducationRecord is one degree in the education section.
type EducationRecord struct {
	Institute    string `json:"institute"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Start        string `json:"start"`
	End          string `json:"end"`
}

// Empty reports whether every column of the record is blank.
func (r EducationRecord) Empty() bool {
	return blank(r.Institute, r.Degree, r.FieldOfStudy, r.Start, r.End)
}

// CareerRecord is one job in the career section.
type CareerRecord struct {
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Empty reports whether every column of the record is blank.
func (r CareerRecord) Empty() bool {
	return blank(r.Designation, r.Company, r.Location, r.Start, r.End)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
