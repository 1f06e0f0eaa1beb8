package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStep(t *testing.T) {
	cases := map[string]Step{
		"basic-info":          StepBasicInfo,
		" Education-Info ":    StepEducation,
		"6":                   StepPartnerExpectation,
		"physical-attributes": StepPhysicalAttributes,
	}
	for raw, want := range cases {
		got, err := ParseStep(raw)
		if err != nil {
			t.Fatalf("ParseStep(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseStep(%q) = %v, want %v", raw, got, want)
		}
	}
	for _, raw := range []string{"", "0", "7", "hobbies"} {
		if _, err := ParseStep(raw); err == nil {
			t.Fatalf("ParseStep(%q) expected error", raw)
		}
	}
}

func TestStepStringAndValid(t *testing.T) {
	if StepCareer.String() != "career-info" {
		t.Fatalf("unexpected slug %q", StepCareer.String())
	}
	if Step(9).Valid() || Step(9).String() != "step(9)" {
		t.Fatalf("step 9 should be invalid, got %q", Step(9).String())
	}
	if len(Steps) != int(LastStep) {
		t.Fatalf("expected %d steps, got %d", LastStep, len(Steps))
	}
}

func TestStateRecords(t *testing.T) {
	state := NewState(map[string]string{FieldFirstName: "Asha"})
	state.AddEducation(EducationRecord{Institute: "IIT"})
	idx := state.AddEducation(EducationRecord{Institute: "MIT"})
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if err := state.UpdateEducation(1, EducationRecord{Institute: "MIT", Degree: "MS"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := state.RemoveEducation(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := state.RemoveEducation(4); err == nil {
		t.Fatalf("expected out of range error")
	}
	if err := state.UpdateCareer(0, CareerRecord{}); err == nil {
		t.Fatalf("expected out of range error on empty career list")
	}

	snap := state.Snapshot()
	state.Set(FieldFirstName, "Changed")
	state.AddCareer(CareerRecord{Company: "Acme"})

	want := Snapshot{
		Values:    map[string]string{FieldFirstName: "Asha"},
		Education: []EducationRecord{{Institute: "MIT", Degree: "MS"}},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordEmpty(t *testing.T) {
	if !(EducationRecord{Institute: "  "}).Empty() {
		t.Fatalf("whitespace record should be empty")
	}
	if (CareerRecord{End: "2020"}).Empty() {
		t.Fatalf("record with end year should not be empty")
	}
}

func TestFromRegistration(t *testing.T) {
	state := FromRegistration(map[string]any{
		"firstname": " Asha ",
		"lastname":  "Nair",
		"dob":       "1995-04-12",
		"religion":  map[string]any{"id": float64(1), "name": "Hindu"},
		"password":  "secret",
	})
	want := map[string]string{
		FieldFirstName: "Asha",
		FieldLastName:  "Nair",
		FieldBirthDate: "1995-04-12",
		FieldReligion:  "1",
	}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyProfileFillsBlanksOnly(t *testing.T) {
	state := NewState(map[string]string{FieldFirstName: "Asha"})
	ApplyProfile(state, map[string]any{
		"first_name": "Server",
		"basic_info": map[string]any{
			"country_id": float64(101),
			"languages":  []any{"English", "Malayalam"},
		},
		"family_info": map[string]any{"father_name": "Ravi"},
		"partner_expectation": map[string]any{
			"min_age": float64(25),
			"max_age": "30",
			"unknown": "x",
		},
		"education": []any{
			map[string]any{"institute": "IIT", "degree": "BTech", "start": float64(2012)},
		},
		"career_info": []any{
			map[string]any{"designation": "Engineer", "company": "Acme"},
		},
	})

	want := map[string]string{
		FieldFirstName:     "Asha",
		FieldCountry:       "101",
		FieldLanguages:     "English, Malayalam",
		FieldFatherName:    "Ravi",
		FieldPartnerMinAge: "25",
		FieldPartnerMaxAge: "30",
	}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]EducationRecord{{Institute: "IIT", Degree: "BTech", Start: "2012"}}, state.Education()); diff != "" {
		t.Fatalf("education mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]CareerRecord{{Designation: "Engineer", Company: "Acme"}}, state.Career()); diff != "" {
		t.Fatalf("career mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyProfileKeepsExistingRecords(t *testing.T) {
	state := NewState(nil)
	state.AddEducation(EducationRecord{Institute: "Local"})
	ApplyProfile(state, map[string]any{
		"education": []any{map[string]any{"institute": "Remote"}},
	})
	if got := state.Education(); len(got) != 1 || got[0].Institute != "Local" {
		t.Fatalf("expected local records to win, got %+v", got)
	}
}
