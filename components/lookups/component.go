package lookups

import (
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Submission is one recorded step call.
type Submission struct {
	Step    profile.Step
	Skipped bool
	Body    map[string]any
}

// Component serves the profile API from a catalog and keeps the submitted
// profile in memory.
type Component struct {
	opts    Options
	handler http.Handler

	mu          sync.Mutex
	base        Catalog
	doc         map[string]any
	submissions []Submission
}

// New constructs a component. Without WithCatalog the embedded sample
// catalog is served.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	var cat Catalog
	if opts.Catalog != nil {
		cat = opts.Catalog.clone()
	} else {
		loaded, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	c := &Component{opts: opts, base: cat, doc: cloneDoc(cat.Profile)}
	c.handler = c.routes()
	return c, nil
}

// Handler returns the HTTP handler serving every route.
func (c *Component) Handler() http.Handler {
	return c.handler
}

// Submissions returns the recorded step calls in arrival order.
func (c *Component) Submissions() []Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Submission(nil), c.submissions...)
}

// Profile returns a copy of the stored profile document.
func (c *Component) Profile() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneDoc(c.doc)
}

func (c *Component) catalog() Catalog {
	return c.base
}

func (c *Component) record(sub Submission) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submissions = append(c.submissions, sub)
	if sub.Skipped || sub.Body == nil {
		return
	}
	section := strings.ReplaceAll(sub.Step.Slug(), "-", "_")
	switch sub.Step {
	case profile.StepEducation, profile.StepCareer:
		c.doc[section] = rows(sub.Body)
	default:
		c.doc[section] = sub.Body
	}
}

// rows turns a columnar body ({"degree": ["BSc", "MSc"], ...}) back into a
// list of records.
func rows(body map[string]any) []any {
	count := 0
	for _, column := range body {
		if values, ok := column.([]any); ok && len(values) > count {
			count = len(values)
		}
	}
	out := make([]any, 0, count)
	for idx := 0; idx < count; idx++ {
		record := map[string]any{}
		for key, column := range body {
			values, ok := column.([]any)
			if !ok || idx >= len(values) {
				continue
			}
			record[key] = values[idx]
		}
		out = append(out, record)
	}
	return out
}
