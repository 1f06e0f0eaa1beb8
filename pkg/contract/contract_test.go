package contract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-profileflow/pkg/assembler"
	"github.com/goliatone/go-profileflow/pkg/contract"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

func sampleState() *profile.State {
	state := profile.NewState(map[string]string{
		profile.FieldFirstName:            "Asha",
		profile.FieldLastName:             "Menon",
		profile.FieldGender:               "female",
		profile.FieldBirthDate:            "1994-03-02",
		profile.FieldReligion:             "1",
		profile.FieldCountry:              "101",
		profile.FieldLanguages:            "Malayalam, English",
		profile.FieldDrinkingStatus:       "2",
		profile.FieldFatherName:           "Ravi",
		profile.FieldMotherName:           "Lata",
		profile.FieldHeight:               "160",
		profile.FieldPartnerMinAge:        "27",
		profile.FieldPartnerMaxAge:        "33",
		profile.FieldPartnerMinHeight:     "165.5",
		profile.FieldPartnerLanguage:      "Malayalam",
		profile.FieldPartnerSmokingStatus: "1",
	})
	state.AddEducation(profile.EducationRecord{Institute: "IIT", Degree: "BTech"})
	state.AddCareer(profile.CareerRecord{Designation: "Engineer", Company: "Acme"})
	return state
}

func TestDefault_AcceptsAssembledPayloads(t *testing.T) {
	c, err := contract.Default()
	if err != nil {
		t.Fatalf("default contract: %v", err)
	}
	snapshot := sampleState().Snapshot()
	for _, step := range profile.Steps {
		if !c.Has(step) {
			t.Fatalf("no schema for %s", step)
		}
		payload, err := assembler.Assemble(step, snapshot, assembler.Lookups{})
		if err != nil {
			t.Fatalf("assemble %s: %v", step, err)
		}
		if err := c.ValidateStep(step, payload); err != nil {
			t.Fatalf("step %s rejected: %v", step, err)
		}
	}
}

func TestValidateStep_ReportsViolations(t *testing.T) {
	c, err := contract.Default()
	if err != nil {
		t.Fatalf("default contract: %v", err)
	}
	payload := map[string]any{
		"min_age":  "twenty",
		"max_age":  30,
		"language": []string{"Tamil"},
		"nickname": "x",
	}
	err = c.ValidateStep(profile.StepPartnerExpectation, payload)
	var violation *contract.Violation
	if !errors.As(err, &violation) {
		t.Fatalf("expected violation, got %v", err)
	}
	if violation.Step != profile.StepPartnerExpectation || len(violation.Issues) < 2 {
		t.Fatalf("unexpected violation: %#v", violation)
	}
	if !strings.Contains(err.Error(), "partner-expectation") {
		t.Fatalf("error should name the step: %v", err)
	}
}

func TestValidateStep_EducationColumnsMustBeLists(t *testing.T) {
	c, err := contract.Default()
	if err != nil {
		t.Fatalf("default contract: %v", err)
	}
	payload := map[string]any{
		"institute":      "IIT",
		"degree":         []string{"BTech"},
		"field_of_study": []string{""},
		"start":          []string{""},
		"end":            []string{""},
	}
	var violation *contract.Violation
	if err := c.ValidateStep(profile.StepEducation, payload); !errors.As(err, &violation) {
		t.Fatalf("expected violation, got %v", err)
	}
}

func TestLoad_MissingStepSchema(t *testing.T) {
	doc := `
openapi: 3.0.3
info: {title: partial, version: "1"}
paths:
  /profile/family-info:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [father_name]
      responses:
        '200':
          description: ok
`
	c, err := contract.Load(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.ValidateStep(profile.StepBasicInfo, map[string]any{}); !errors.Is(err, contract.ErrNoSchema) {
		t.Fatalf("expected ErrNoSchema, got %v", err)
	}
	var violation *contract.Violation
	if err := c.ValidateStep(profile.StepFamilyInfo, map[string]any{}); !errors.As(err, &violation) {
		t.Fatalf("expected violation, got %v", err)
	}
}

func TestLoad_RejectsEmptyDocument(t *testing.T) {
	if _, err := contract.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error")
	}
}
