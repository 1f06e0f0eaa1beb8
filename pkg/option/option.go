package option

import "strings"

// UnknownName is the placeholder label the API uses for missing entries.
const UnknownName = "Unknown"

// Option is a normalised selectable value.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultCountry is served when no country list can be resolved.
var DefaultCountry = Option{ID: "101", Name: "India"}

// FindByID returns the option whose id equals id.
func FindByID(opts []Option, id string) (Option, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Option{}, false
	}
	for _, opt := range opts {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// FindByName returns the first option whose name matches case-insensitively.
func FindByName(opts []Option, name string) (Option, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Option{}, false
	}
	for _, opt := range opts {
		if strings.EqualFold(opt.Name, name) {
			return opt, true
		}
	}
	return Option{}, false
}

// Label returns the display name for a value that may hold either an id or a
// name. Unresolvable values are returned unchanged.
func Label(opts []Option, value string) string {
	if opt, ok := FindByID(opts, value); ok {
		return opt.Name
	}
	if opt, ok := FindByName(opts, value); ok {
		return opt.Name
	}
	return value
}

// Reconcile maps value onto an option id. A value that already is a known id
// is returned as-is; a value matching an option name case-insensitively is
// replaced by that option's id. Otherwise the raw value is returned with
// ok=false so callers can keep legacy free-text data untouched.
func Reconcile(opts []Option, value string) (string, bool) {
	if opt, ok := FindByID(opts, value); ok {
		return opt.ID, true
	}
	if opt, ok := FindByName(opts, value); ok {
		return opt.ID, true
	}
	return value, false
}

// Names returns the display names in order.
func Names(opts []Option) []string {
	out := make([]string, len(opts))
	for i, opt := range opts {
		out[i] = opt.Name
	}
	return out
}
