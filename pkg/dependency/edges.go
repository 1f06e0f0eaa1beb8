package dependency

import (
	"context"

	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Source provides the dependent option lists used by the profile form.
type Source interface {
	Castes(ctx context.Context, religionID string) ([]option.Option, error)
	States(ctx context.Context, countryID string) ([]option.Option, error)
	Cities(ctx context.Context, stateID string) ([]option.Option, error)
}

// ProfileEdges wires religion -> caste and country -> state -> city.
func ProfileEdges(src Source) []Edge {
	return []Edge{
		{
			Parent:    profile.FieldReligion,
			Child:     profile.FieldCaste,
			Fetch:     src.Castes,
			CarryOver: true,
		},
		{
			Parent: profile.FieldCountry,
			Child:  profile.FieldState,
			Fetch:  src.States,
		},
		{
			Parent: profile.FieldState,
			Child:  profile.FieldCity,
			Fetch:  src.Cities,
		},
	}
}
