package lookups

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/catalog.json
var defaultCatalogJSON []byte

// Catalog holds the raw option payloads served by the component. Dependent
// lists are keyed by the parent id.
type Catalog struct {
	Religions       json.RawMessage            `json:"religions"`
	MaritalStatuses json.RawMessage            `json:"marital_statuses"`
	Countries       json.RawMessage            `json:"countries"`
	States          map[string]json.RawMessage `json:"states"`
	Cities          map[string]json.RawMessage `json:"cities"`
	Castes          map[string]json.RawMessage `json:"castes"`
	Profile         map[string]any             `json:"profile"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
	defaultErr     error
)

// DefaultCatalog returns the embedded sample catalog.
func DefaultCatalog() (Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = ParseCatalog(defaultCatalogJSON)
	})
	if defaultErr != nil {
		return Catalog{}, defaultErr
	}
	return defaultCatalog.clone(), nil
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("lookups: parse catalog: %w", err)
	}
	return catalog, nil
}

func (c Catalog) clone() Catalog {
	out := c
	out.States = cloneRaw(c.States)
	out.Cities = cloneRaw(c.Cities)
	out.Castes = cloneRaw(c.Castes)
	out.Profile = cloneDoc(c.Profile)
	return out
}

func cloneRaw(in map[string]json.RawMessage) map[string]json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(in))
	for key, value := range in {
		out[key] = append(json.RawMessage(nil), value...)
	}
	return out
}

// cloneDoc deep copies a decoded JSON document through a JSON round trip.
func cloneDoc(in map[string]any) map[string]any {
	out := map[string]any{}
	if len(in) == 0 {
		return out
	}
	data, err := json.Marshal(in)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}
