package profile

// Basic information (step 1).
const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldGender         = "gender"
	FieldBirthDate      = "birth_date"
	FieldReligion       = "religion"
	FieldCaste          = "caste"
	FieldSubCaste       = "sub_caste"
	FieldMotherTongue   = "mother_tongue"
	FieldLanguages      = "languages"
	FieldMaritalStatus  = "marital_status"
	FieldCountry        = "country"
	FieldState          = "state"
	FieldCity           = "city"
	FieldSmokingStatus  = "smoking_status"
	FieldDrinkingStatus = "drinking_status"
	FieldDiet           = "diet"
	FieldAboutMe        = "about_me"
)

// Family information (step 2).
const (
	FieldFatherName       = "father_name"
	FieldFatherProfession = "father_profession"
	FieldFatherContact    = "father_contact"
	FieldMotherName       = "mother_name"
	FieldMotherProfession = "mother_profession"
	FieldMotherContact    = "mother_contact"
	FieldTotalBrothers    = "total_brothers"
	FieldTotalSisters     = "total_sisters"
	FieldFamilyType       = "family_type"
	FieldFamilyStatus     = "family_status"
)

// Physical attributes (step 5).
const (
	FieldHeight     = "height"
	FieldWeight     = "weight"
	FieldComplexion = "complexion"
	FieldBloodGroup = "blood_group"
	FieldEyeColor   = "eye_color"
	FieldHairColor  = "hair_color"
	FieldBodyType   = "body_type"
	FieldDisability = "disability"
)

// Partner expectation (step 6).
const (
	FieldGeneralRequirement    = "general_requirement"
	FieldPartnerMinAge         = "partner_min_age"
	FieldPartnerMaxAge         = "partner_max_age"
	FieldPartnerMinHeight      = "partner_min_height"
	FieldPartnerMaxHeight      = "partner_max_height"
	FieldPartnerMaritalStatus  = "partner_marital_status"
	FieldPartnerReligion       = "partner_religion"
	FieldPartnerCaste          = "partner_caste"
	FieldPartnerLanguage       = "partner_language"
	FieldPartnerEducation      = "partner_education"
	FieldPartnerProfession     = "partner_profession"
	FieldPartnerSmokingStatus  = "partner_smoking_status"
	FieldPartnerDrinkingStatus = "partner_drinking_status"
	FieldPartnerComplexion     = "partner_complexion"
	FieldPartnerCountry        = "partner_country"
)

// Fields lists every scalar field name in section order.
var Fields = []string{
	FieldFirstName, FieldLastName, FieldGender, FieldBirthDate,
	FieldReligion, FieldCaste, FieldSubCaste, FieldMotherTongue,
	FieldLanguages, FieldMaritalStatus, FieldCountry, FieldState, FieldCity,
	FieldSmokingStatus, FieldDrinkingStatus, FieldDiet, FieldAboutMe,

	FieldFatherName, FieldFatherProfession, FieldFatherContact,
	FieldMotherName, FieldMotherProfession, FieldMotherContact,
	FieldTotalBrothers, FieldTotalSisters, FieldFamilyType, FieldFamilyStatus,

	FieldHeight, FieldWeight, FieldComplexion, FieldBloodGroup,
	FieldEyeColor, FieldHairColor, FieldBodyType, FieldDisability,

	FieldGeneralRequirement, FieldPartnerMinAge, FieldPartnerMaxAge,
	FieldPartnerMinHeight, FieldPartnerMaxHeight, FieldPartnerMaritalStatus,
	FieldPartnerReligion, FieldPartnerCaste, FieldPartnerLanguage,
	FieldPartnerEducation, FieldPartnerProfession, FieldPartnerSmokingStatus,
	FieldPartnerDrinkingStatus, FieldPartnerComplexion, FieldPartnerCountry,
}

var knownFields = func() map[string]struct{} {
	out := make(map[string]struct{}, len(Fields))
	for _, name := range Fields {
		out[name] = struct{}{}
	}
	return out
}()

// IsField reports whether name is one of the scalar form fields.
func IsField(name string) bool {
	_, ok := knownFields[name]
	return ok
}
