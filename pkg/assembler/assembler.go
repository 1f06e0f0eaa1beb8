// Package assembler projects the wizard's form state into the request body
// each step endpoint expects. Assemble is pure: it only reads its inputs.
package assembler

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

// ErrUnknownStep is returned for steps outside 1..6.
var ErrUnknownStep = errors.New("assembler: unknown step")

// Payload is the JSON body sent to a step endpoint.
type Payload map[string]any

// Lookups carries the option lists needed to turn ids into labels.
type Lookups struct {
	Castes          []option.Option
	MaritalStatuses []option.Option
}

// Assemble builds the payload for step.
func Assemble(step profile.Step, state profile.Snapshot, lookups Lookups) (Payload, error) {
	switch step {
	case profile.StepBasicInfo:
		return basicInfo(state, lookups), nil
	case profile.StepFamilyInfo:
		return project(state, familyFields), nil
	case profile.StepEducation:
		return education(state.Education), nil
	case profile.StepCareer:
		return career(state.Career), nil
	case profile.StepPhysicalAttributes:
		return project(state, physicalFields), nil
	case profile.StepPartnerExpectation:
		return partnerExpectation(state), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
}

var familyFields = []string{
	profile.FieldFatherName,
	profile.FieldFatherProfession,
	profile.FieldFatherContact,
	profile.FieldMotherName,
	profile.FieldMotherProfession,
	profile.FieldMotherContact,
	profile.FieldTotalBrothers,
	profile.FieldTotalSisters,
	profile.FieldFamilyType,
	profile.FieldFamilyStatus,
}

var physicalFields = []string{
	profile.FieldHeight,
	profile.FieldWeight,
	profile.FieldComplexion,
	profile.FieldBloodGroup,
	profile.FieldEyeColor,
	profile.FieldHairColor,
	profile.FieldBodyType,
	profile.FieldDisability,
}

func basicInfo(state profile.Snapshot, lookups Lookups) Payload {
	payload := project(state, []string{
		profile.FieldFirstName,
		profile.FieldLastName,
		profile.FieldGender,
		profile.FieldBirthDate,
		profile.FieldReligion,
		profile.FieldSubCaste,
		profile.FieldMotherTongue,
		profile.FieldCountry,
		profile.FieldState,
		profile.FieldCity,
		profile.FieldSmokingStatus,
		profile.FieldDiet,
		profile.FieldAboutMe,
	})
	payload["languages"] = SplitList(state.Get(profile.FieldLanguages))
	payload["caste"] = option.Label(lookups.Castes, state.Get(profile.FieldCaste))
	payload["marital_status"] = option.Label(lookups.MaritalStatuses, state.Get(profile.FieldMaritalStatus))
	payload["drinking_status"] = drinkingStatus(state.Get(profile.FieldDrinkingStatus))
	return payload
}

// drinkingStatus keeps the server-side remap of the client's "2" to 1; the
// two enumerations disagree and the server expects this value.
func drinkingStatus(raw string) any {
	if raw == "2" {
		return 1
	}
	return raw
}

func education(records []profile.EducationRecord) Payload {
	columns := map[string][]string{
		"institute":      make([]string, 0, len(records)),
		"degree":         make([]string, 0, len(records)),
		"field_of_study": make([]string, 0, len(records)),
		"start":          make([]string, 0, len(records)),
		"end":            make([]string, 0, len(records)),
	}
	for _, rec := range records {
		columns["institute"] = append(columns["institute"], rec.Institute)
		columns["degree"] = append(columns["degree"], rec.Degree)
		columns["field_of_study"] = append(columns["field_of_study"], rec.FieldOfStudy)
		columns["start"] = append(columns["start"], rec.Start)
		columns["end"] = append(columns["end"], rec.End)
	}
	return columnar(columns)
}

func career(records []profile.CareerRecord) Payload {
	columns := map[string][]string{
		"designation": make([]string, 0, len(records)),
		"company":     make([]string, 0, len(records)),
		"location":    make([]string, 0, len(records)),
		"start":       make([]string, 0, len(records)),
		"end":         make([]string, 0, len(records)),
	}
	for _, rec := range records {
		columns["designation"] = append(columns["designation"], rec.Designation)
		columns["company"] = append(columns["company"], rec.Company)
		columns["location"] = append(columns["location"], rec.Location)
		columns["start"] = append(columns["start"], rec.Start)
		columns["end"] = append(columns["end"], rec.End)
	}
	return columnar(columns)
}

func columnar(columns map[string][]string) Payload {
	payload := make(Payload, len(columns))
	for key, values := range columns {
		payload[key] = values
	}
	return payload
}

func partnerExpectation(state profile.Snapshot) Payload {
	return Payload{
		"general_requirement": state.Get(profile.FieldGeneralRequirement),
		"min_age":             Number(state.Get(profile.FieldPartnerMinAge)),
		"max_age":             Number(state.Get(profile.FieldPartnerMaxAge)),
		"min_height":          Number(state.Get(profile.FieldPartnerMinHeight)),
		"max_height":          Number(state.Get(profile.FieldPartnerMaxHeight)),
		"marital_status":      state.Get(profile.FieldPartnerMaritalStatus),
		"religion":            state.Get(profile.FieldPartnerReligion),
		"caste":               state.Get(profile.FieldPartnerCaste),
		"language":            SplitList(state.Get(profile.FieldPartnerLanguage)),
		"education":           state.Get(profile.FieldPartnerEducation),
		"profession":          state.Get(profile.FieldPartnerProfession),
		"smoking_status":      Number(state.Get(profile.FieldPartnerSmokingStatus)),
		"drinking_status":     Number(state.Get(profile.FieldPartnerDrinkingStatus)),
		"complexion":          state.Get(profile.FieldPartnerComplexion),
		"country":             state.Get(profile.FieldPartnerCountry),
	}
}

func project(state profile.Snapshot, fields []string) Payload {
	payload := make(Payload, len(fields))
	for _, field := range fields {
		payload[field] = state.Get(field)
	}
	return payload
}

// SplitList splits a comma separated string, trimming entries and dropping
// empty ones. The result is never nil so it encodes as [].
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Number parses raw as an int, then as a finite float. Unparsable, blank,
// NaN or infinite input yields "".
func Number(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return ""
}
