package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldAliases maps server-side keys onto form fields. Keys that already
// match a field name need no entry.
var fieldAliases = map[string]string{
	"dob":               FieldBirthDate,
	"date_of_birth":     FieldBirthDate,
	"firstname":         FieldFirstName,
	"lastname":          FieldLastName,
	"religion_id":       FieldReligion,
	"caste_id":          FieldCaste,
	"country_id":        FieldCountry,
	"state_id":          FieldState,
	"city_id":           FieldCity,
	"marital_status_id": FieldMaritalStatus,
	"language":          FieldLanguages,
	"known_languages":   FieldLanguages,
	"min_age":           FieldPartnerMinAge,
	"max_age":           FieldPartnerMaxAge,
	"min_height":        FieldPartnerMinHeight,
	"max_height":        FieldPartnerMaxHeight,
}

// partnerKeys maps keys found under the partner expectation section.
var partnerKeys = map[string]string{
	"general_requirement": FieldGeneralRequirement,
	"min_age":             FieldPartnerMinAge,
	"max_age":             FieldPartnerMaxAge,
	"min_height":          FieldPartnerMinHeight,
	"max_height":          FieldPartnerMaxHeight,
	"marital_status":      FieldPartnerMaritalStatus,
	"religion":            FieldPartnerReligion,
	"caste":               FieldPartnerCaste,
	"language":            FieldPartnerLanguage,
	"education":           FieldPartnerEducation,
	"profession":          FieldPartnerProfession,
	"smoking_status":      FieldPartnerSmokingStatus,
	"drinking_status":     FieldPartnerDrinkingStatus,
	"complexion":          FieldPartnerComplexion,
	"country":             FieldPartnerCountry,
}

// FromRegistration builds a state from the registration payload passed into
// the wizard. Unknown keys are ignored.
func FromRegistration(payload map[string]any) *State {
	state := NewState(nil)
	applyFlat(state, payload, false)
	return state
}

// ApplyProfile fills fields that are still blank from a server profile
// document. Section objects (basic_info, family_info, physical_attributes,
// partner_expectation) are flattened; education and career lists seed the
// record lists when the state holds none.
func ApplyProfile(state *State, doc map[string]any) {
	if state == nil || len(doc) == 0 {
		return
	}
	applyFlat(state, doc, true)

	for _, section := range []string{"basic_info", "family_info", "physical_attributes", "physical_attribute", "user"} {
		if nested, ok := doc[section].(map[string]any); ok {
			applyFlat(state, nested, true)
		}
	}

	for _, section := range []string{"partner_expectation", "partner"} {
		nested, ok := doc[section].(map[string]any)
		if !ok {
			continue
		}
		for key, raw := range nested {
			field, ok := partnerKeys[key]
			if !ok {
				continue
			}
			setIfBlank(state, field, scalarString(raw))
		}
	}

	if len(state.Education()) == 0 {
		for _, item := range listOfMaps(doc["education"], doc["education_info"]) {
			state.AddEducation(EducationRecord{
				Institute:    scalarString(item["institute"]),
				Degree:       scalarString(item["degree"]),
				FieldOfStudy: scalarString(item["field_of_study"]),
				Start:        scalarString(item["start"]),
				End:          scalarString(item["end"]),
			})
		}
	}
	if len(state.Career()) == 0 {
		for _, item := range listOfMaps(doc["career"], doc["career_info"]) {
			state.AddCareer(CareerRecord{
				Designation: scalarString(item["designation"]),
				Company:     scalarString(item["company"]),
				Location:    scalarString(item["location"]),
				Start:       scalarString(item["start"]),
				End:         scalarString(item["end"]),
			})
		}
	}
}

func applyFlat(state *State, payload map[string]any, onlyBlank bool) {
	for key, raw := range payload {
		field := strings.ToLower(strings.TrimSpace(key))
		if alias, ok := fieldAliases[field]; ok {
			field = alias
		}
		if field == "" || !IsField(field) {
			continue
		}
		value := scalarString(raw)
		if value == "" {
			continue
		}
		if onlyBlank {
			setIfBlank(state, field, value)
			continue
		}
		state.Set(field, value)
	}
}

func setIfBlank(state *State, field, value string) {
	if value == "" || state.Get(field) != "" {
		return
	}
	state.Set(field, value)
}

// scalarString renders scalars and string lists as form values. Objects
// carrying an id (for example {"id": 3, "name": "Hindu"}) collapse to it.
func scalarString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := scalarString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	case map[string]any:
		if id, ok := v["id"]; ok {
			return scalarString(id)
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func listOfMaps(candidates ...any) []map[string]any {
	for _, candidate := range candidates {
		list, ok := candidate.([]any)
		if !ok || len(list) == 0 {
			continue
		}
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
