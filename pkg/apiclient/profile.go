package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Profile fetches the stored profile document used to seed the wizard. An
// empty response yields an empty map.
func (c *Client) Profile(ctx context.Context) (map[string]any, error) {
	env, err := c.do(ctx, "profile", http.MethodGet, c.endpoints.Profile, nil)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("apiclient: decode profile: %w", err)
	}
	return doc, nil
}

// SubmitStep posts body to the endpoint of step and returns the server's
// messages.
func (c *Client) SubmitStep(ctx context.Context, step profile.Step, body any) ([]string, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("apiclient: invalid step %d", int(step))
	}
	if body == nil {
		body = map[string]any{}
	}
	env, err := c.do(ctx, "submit_"+step.Slug(), http.MethodPost, stepPath(c.endpoints.Step, step), body)
	if err != nil {
		return nil, err
	}
	return env.Messages(), nil
}

// SkipStep marks step as skipped. No body is sent.
func (c *Client) SkipStep(ctx context.Context, step profile.Step) error {
	if !step.Valid() {
		return fmt.Errorf("apiclient: invalid step %d", int(step))
	}
	_, err := c.do(ctx, "skip_"+step.Slug(), http.MethodPost, stepPath(c.endpoints.Skip, step), nil)
	return err
}
