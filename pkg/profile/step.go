package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// Step positions the wizard on one of its six pages.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepFamilyInfo
	StepEducation
	StepCareer
	StepPhysicalAttributes
	StepPartnerExpectation
)

const (
	FirstStep = StepBasicInfo
	LastStep  = StepPartnerExpectation
)

// Steps lists every step in wizard order.
var Steps = []Step{
	StepBasicInfo,
	StepFamilyInfo,
	StepEducation,
	StepCareer,
	StepPhysicalAttributes,
	StepPartnerExpectation,
}

var stepSlugs = map[Step]string{
	StepBasicInfo:          "basic-info",
	StepFamilyInfo:         "family-info",
	StepEducation:          "education-info",
	StepCareer:             "career-info",
	StepPhysicalAttributes: "physical-attributes",
	StepPartnerExpectation: "partner-expectation",
}

// Valid reports whether s is within 1..6.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Slug returns the endpoint segment used by the remote API for the step.
func (s Step) Slug() string {
	return stepSlugs[s]
}

func (s Step) String() string {
	if slug, ok := stepSlugs[s]; ok {
		return slug
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep resolves a slug or its numeric form into a Step.
func ParseStep(raw string) (Step, error) {
	for step, slug := range stepSlugs {
		if strings.EqualFold(slug, strings.TrimSpace(raw)) {
			return step, nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && Step(n).Valid() {
		return Step(n), nil
	}
	return 0, fmt.Errorf("profile: unknown step %q", raw)
}
