// Package contract checks assembled step payloads against the request
// schemas of the profile API, described as an OpenAPI document.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

//go:embed openapi.yaml
var defaultDocument []byte

// ErrNoSchema is returned when the document has no request schema for a
// step.
var ErrNoSchema = errors.New("contract: no schema for step")

// Violation lists the schema failures of one payload.
type Violation struct {
	Step   profile.Step
	Issues []string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("contract: %s payload rejected: %s", v.Step.Slug(), strings.Join(v.Issues, "; "))
}

// Contract maps each step to the request schema of its endpoint.
type Contract struct {
	schemas map[profile.Step]*openapi3.Schema
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default returns the embedded contract.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), defaultDocument)
	})
	return defaultContract, defaultErr
}

// Load parses and validates an OpenAPI document. Each step's schema is read
// from the POST request body of "/profile/<slug>".
func Load(ctx context.Context, data []byte) (*Contract, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	c := &Contract{schemas: make(map[profile.Step]*openapi3.Schema, len(profile.Steps))}
	if doc.Paths == nil {
		return c, nil
	}
	for _, step := range profile.Steps {
		if schema := requestSchema(doc.Paths.Value("/profile/" + step.Slug())); schema != nil {
			c.schemas[step] = schema
		}
	}
	return c, nil
}

func requestSchema(item *openapi3.PathItem) *openapi3.Schema {
	if item == nil || item.Post == nil || item.Post.RequestBody == nil || item.Post.RequestBody.Value == nil {
		return nil
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

// Has reports whether step has a schema.
func (c *Contract) Has(step profile.Step) bool {
	if c == nil {
		return false
	}
	_, ok := c.schemas[step]
	return ok
}

// ValidateStep checks payload against the schema of step. The payload is
// encoded to JSON first so the check sees what the server would receive.
// Failures are reported as *Violation.
func (c *Contract) ValidateStep(step profile.Step, payload any) error {
	if c == nil {
		return fmt.Errorf("%w %s", ErrNoSchema, step)
	}
	schema, ok := c.schemas[step]
	if !ok {
		return fmt.Errorf("%w %s", ErrNoSchema, step)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("contract: encode %s payload: %w", step.Slug(), err)
	}
	var value any
	if err := json.Unmarshal(encoded, &value); err != nil {
		return fmt.Errorf("contract: decode %s payload: %w", step.Slug(), err)
	}

	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return &Violation{Step: step, Issues: issues(err)}
	}
	return nil
}

func issues(err error) []string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []string{describe(err)}
	}
	out := make([]string, 0, len(multi))
	for _, item := range multi {
		out = append(out, issues(item)...)
	}
	return out
}

func describe(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := strings.Join(schemaErr.JSONPointer(), ".")
		if path == "" {
			return schemaErr.Reason
		}
		return path + ": " + schemaErr.Reason
	}
	return err.Error()
}
