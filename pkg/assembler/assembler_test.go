package assembler_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileflow/pkg/assembler"
	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

func snapshot(values map[string]string) profile.Snapshot {
	return profile.NewState(values).Snapshot()
}

func TestAssemble_BasicInfo(t *testing.T) {
	state := snapshot(map[string]string{
		profile.FieldFirstName:      "Asha",
		profile.FieldLanguages:      "English, Tamil, ,",
		profile.FieldCaste:          "7",
		profile.FieldMaritalStatus:  "1",
		profile.FieldDrinkingStatus: "2",
	})
	lookups := assembler.Lookups{
		Castes:          []option.Option{{ID: "7", Name: "Brahmin"}},
		MaritalStatuses: []option.Option{{ID: "1", Name: "Never Married"}},
	}

	payload, err := assembler.Assemble(profile.StepBasicInfo, state, lookups)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if diff := cmp.Diff([]string{"English", "Tamil"}, payload["languages"]); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	checks := map[string]any{
		"first_name":      "Asha",
		"caste":           "Brahmin",
		"marital_status":  "Never Married",
		"drinking_status": 1,
	}
	for key, want := range checks {
		if diff := cmp.Diff(want, payload[key]); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestAssemble_DrinkingStatusOnlyRemapsTwo(t *testing.T) {
	state := snapshot(map[string]string{profile.FieldDrinkingStatus: "3"})
	payload, err := assembler.Assemble(profile.StepBasicInfo, state, assembler.Lookups{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if payload["drinking_status"] != "3" {
		t.Fatalf("expected untouched drinking status, got %#v", payload["drinking_status"])
	}
}

func TestAssemble_EducationIsColumnar(t *testing.T) {
	st := profile.NewState(nil)
	st.AddEducation(profile.EducationRecord{Institute: "A", Degree: "B", FieldOfStudy: "C", Start: "2016", End: "2020"})

	payload, err := assembler.Assemble(profile.StepEducation, st.Snapshot(), assembler.Lookups{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := assembler.Payload{
		"institute":      []string{"A"},
		"degree":         []string{"B"},
		"field_of_study": []string{"C"},
		"start":          []string{"2016"},
		"end":            []string{"2020"},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("education payload mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_CareerIsColumnar(t *testing.T) {
	st := profile.NewState(nil)
	st.AddCareer(profile.CareerRecord{Designation: "Engineer", Company: "Acme", Location: "Pune", Start: "2020", End: ""})
	st.AddCareer(profile.CareerRecord{Designation: "Lead", Company: "Globex", Start: "2023"})

	payload, err := assembler.Assemble(profile.StepCareer, st.Snapshot(), assembler.Lookups{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := assembler.Payload{
		"designation": []string{"Engineer", "Lead"},
		"company":     []string{"Acme", "Globex"},
		"location":    []string{"Pune", ""},
		"start":       []string{"2020", "2023"},
		"end":         []string{"", ""},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("career payload mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_PartnerExpectationCoercesNumbers(t *testing.T) {
	state := snapshot(map[string]string{
		profile.FieldPartnerMinAge:         "25",
		profile.FieldPartnerMaxAge:         "thirty",
		profile.FieldPartnerMinHeight:      "5.4",
		profile.FieldPartnerMaxHeight:      "Infinity",
		profile.FieldPartnerDrinkingStatus: "2",
		profile.FieldPartnerLanguage:       "Hindi,  English",
	})

	payload, err := assembler.Assemble(profile.StepPartnerExpectation, state, assembler.Lookups{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	checks := map[string]any{
		"min_age":         25,
		"max_age":         "",
		"min_height":      5.4,
		"max_height":      "",
		"drinking_status": 2,
		"smoking_status":  "",
		"language":        []string{"Hindi", "English"},
	}
	for key, want := range checks {
		if diff := cmp.Diff(want, payload[key]); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
	if _, err := json.Marshal(payload); err != nil {
		t.Fatalf("payload must encode: %v", err)
	}
}

func TestNumber_RejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "inf", "+Inf", "-Infinity", "1e400"} {
		if got := assembler.Number(raw); got != "" {
			t.Fatalf("Number(%q) = %v, want empty", raw, got)
		}
	}
	if got := assembler.Number(" 42 "); got != 42 {
		t.Fatalf("Number(42) = %v", got)
	}
}

func TestAssemble_IsPure(t *testing.T) {
	st := profile.NewState(map[string]string{
		profile.FieldLanguages: "English, Tamil",
		profile.FieldCaste:     "7",
	})
	st.AddEducation(profile.EducationRecord{Institute: "A"})
	snap := st.Snapshot()
	before := st.Snapshot()
	lookups := assembler.Lookups{Castes: []option.Option{{ID: "7", Name: "Brahmin"}}}

	for _, step := range profile.Steps {
		first, err := assembler.Assemble(step, snap, lookups)
		if err != nil {
			t.Fatalf("%s: %v", step, err)
		}
		second, err := assembler.Assemble(step, snap, lookups)
		if err != nil {
			t.Fatalf("%s: %v", step, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s: outputs differ (-first +second):\n%s", step, diff)
		}
	}
	if diff := cmp.Diff(before, snap); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestAssemble_UnknownStep(t *testing.T) {
	if _, err := assembler.Assemble(profile.Step(9), profile.Snapshot{}, assembler.Lookups{}); !errors.Is(err, assembler.ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
}
