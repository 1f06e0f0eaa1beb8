package apiclient

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Endpoints holds the path templates used by the client. Placeholders in
// braces are replaced with escaped values.
type Endpoints struct {
	Dropdowns string
	Countries string
	States    string
	Cities    string
	Castes    string
	Profile   string
	Step      string
	Skip      string
}

// DefaultEndpoints returns the paths served by the profile API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Dropdowns: "/profile/dropdowns",
		Countries: "/countries",
		States:    "/states/{country_id}",
		Cities:    "/cities/{state_id}",
		Castes:    "/castes/{religion_id}",
		Profile:   "/profile",
		Step:      "/profile/{step}",
		Skip:      "/profile/{step}/skip",
	}
}

func (e Endpoints) withDefaults() Endpoints {
	def := DefaultEndpoints()
	if e.Dropdowns == "" {
		e.Dropdowns = def.Dropdowns
	}
	if e.Countries == "" {
		e.Countries = def.Countries
	}
	if e.States == "" {
		e.States = def.States
	}
	if e.Cities == "" {
		e.Cities = def.Cities
	}
	if e.Castes == "" {
		e.Castes = def.Castes
	}
	if e.Profile == "" {
		e.Profile = def.Profile
	}
	if e.Step == "" {
		e.Step = def.Step
	}
	if e.Skip == "" {
		e.Skip = def.Skip
	}
	return e
}

func expand(template string, params map[string]string) string {
	out := template
	for key, value := range params {
		out = strings.ReplaceAll(out, "{"+key+"}", url.PathEscape(value))
	}
	return out
}

func stepPath(template string, step profile.Step) string {
	return expand(template, map[string]string{"step": step.Slug()})
}
