package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goliatone/go-profileflow/pkg/option"
)

// Bundle is the combined dropdown payload loaded when the wizard mounts.
type Bundle struct {
	Religions       []option.Option
	MaritalStatuses []option.Option
	Countries       []option.Option
}

// Dropdowns fetches the religion, marital status and country lists in one
// call. Each list is normalised independently so a malformed list only
// empties itself.
func (c *Client) Dropdowns(ctx context.Context) (Bundle, error) {
	env, err := c.do(ctx, "dropdowns", http.MethodGet, c.endpoints.Dropdowns, nil)
	if err != nil {
		return Bundle{}, err
	}
	var lists map[string]json.RawMessage
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &lists); err != nil {
			return Bundle{}, fmt.Errorf("apiclient: decode dropdowns: %w", err)
		}
	}
	return Bundle{
		Religions:       option.FromJSON(lists["religions"]),
		MaritalStatuses: option.FromJSON(lists["marital_statuses"]),
		Countries:       option.FromJSON(lists["countries"]),
	}, nil
}

// Countries fetches the country list.
func (c *Client) Countries(ctx context.Context) ([]option.Option, error) {
	return c.list(ctx, "countries", c.endpoints.Countries)
}

// States fetches the states of a country.
func (c *Client) States(ctx context.Context, countryID string) ([]option.Option, error) {
	return c.list(ctx, "states", expand(c.endpoints.States, map[string]string{"country_id": countryID}))
}

// Cities fetches the cities of a state.
func (c *Client) Cities(ctx context.Context, stateID string) ([]option.Option, error) {
	return c.list(ctx, "cities", expand(c.endpoints.Cities, map[string]string{"state_id": stateID}))
}

// Castes fetches the castes of a religion.
func (c *Client) Castes(ctx context.Context, religionID string) ([]option.Option, error) {
	return c.list(ctx, "castes", expand(c.endpoints.Castes, map[string]string{"religion_id": religionID}))
}

func (c *Client) list(ctx context.Context, name, path string) ([]option.Option, error) {
	env, err := c.do(ctx, name, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return option.FromJSON(env.Data), nil
}
