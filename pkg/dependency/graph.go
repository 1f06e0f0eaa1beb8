package dependency

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileflow/pkg/option"
)

// Fetcher loads the child options for a parent value.
type Fetcher func(ctx context.Context, parentID string) ([]option.Option, error)

// Edge declares that Child's options depend on Parent's value.
type Edge struct {
	Parent string
	Child  string
	Fetch  Fetcher
	// CarryOver re-selects the previously held child, matched by name,
	// when it also exists in the list loaded for the new parent value.
	CarryOver bool
}

// Values is the field store the graph reads and writes.
type Values interface {
	Get(field string) string
	Set(field, value string)
}

// Graph tracks option lists and resolves dependent fields.
type Graph struct {
	mu         sync.Mutex
	values     Values
	edges      []Edge
	byChild    map[string]int
	byParent   map[string][]int
	options    map[string][]option.Option
	generation map[string]uint64
	reconciled map[string]bool
	logger     *zap.Logger
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithLogger routes fetch failures and stale responses to logger.
func WithLogger(logger *zap.Logger) GraphOption {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New validates edges and returns a graph bound to values. Edges must be
// listed parents-first; every child has exactly one parent and cycles are
// rejected.
func New(values Values, edges []Edge, opts ...GraphOption) (*Graph, error) {
	if values == nil {
		return nil, errors.New("dependency: values store is required")
	}
	g := &Graph{
		values:     values,
		edges:      append([]Edge(nil), edges...),
		byChild:    make(map[string]int, len(edges)),
		byParent:   make(map[string][]int, len(edges)),
		options:    make(map[string][]option.Option),
		generation: make(map[string]uint64),
		reconciled: make(map[string]bool),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(g)
	}

	for idx, edge := range g.edges {
		if edge.Parent == "" || edge.Child == "" {
			return nil, fmt.Errorf("dependency: edge %d missing parent or child", idx)
		}
		if edge.Fetch == nil {
			return nil, fmt.Errorf("dependency: edge %s -> %s missing fetcher", edge.Parent, edge.Child)
		}
		if _, exists := g.byChild[edge.Child]; exists {
			return nil, fmt.Errorf("dependency: field %s has more than one parent", edge.Child)
		}
		g.byChild[edge.Child] = idx
		g.byParent[edge.Parent] = append(g.byParent[edge.Parent], idx)
	}
	for _, edge := range g.edges {
		if g.reaches(edge.Child, edge.Parent) {
			return nil, fmt.Errorf("dependency: cycle through %s -> %s", edge.Parent, edge.Child)
		}
	}
	return g, nil
}

func (g *Graph) reaches(from, target string) bool {
	for _, idx := range g.byParent[from] {
		child := g.edges[idx].Child
		if child == target || g.reaches(child, target) {
			return true
		}
	}
	return false
}

// Options returns a copy of the option list currently loaded for field.
func (g *Graph) Options(field string) []option.Option {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]option.Option(nil), g.options[field]...)
}

// Parent returns the field that field depends on.
func (g *Graph) Parent(field string) (string, bool) {
	idx, ok := g.byChild[field]
	if !ok {
		return "", false
	}
	return g.edges[idx].Parent, true
}

// Dependents returns the direct children of field.
func (g *Graph) Dependents(field string) []string {
	indices := g.byParent[field]
	if len(indices) == 0 {
		return nil
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		out = append(out, g.edges[idx].Child)
	}
	return out
}

// SetOptions records a freshly loaded list for field. The first list that
// arrives for a field triggers a one-time reconciliation: a held value that
// is not a known id but matches an option name is replaced by that id.
// Unmatched values are left untouched.
func (g *Graph) SetOptions(field string, opts []option.Option) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.options[field] = append([]option.Option(nil), opts...)
	g.reconcileOnce(field)
}

// Change applies a new value to field. Setting the value it already holds is
// a no-op. Otherwise every descendant is cleared and the direct children's
// options are fetched for the new value. Fetch failures are logged and leave
// the child list empty.
func (g *Graph) Change(ctx context.Context, field, value string) {
	g.mu.Lock()
	if g.values.Get(field) == value {
		g.mu.Unlock()
		return
	}
	g.values.Set(field, value)
	g.reconciled[field] = true
	jobs := g.invalidate(field, value)
	g.mu.Unlock()

	for _, job := range jobs {
		g.run(ctx, job)
	}
}

// Refresh loads child options for the parent's current value without
// clearing the held child value, reconciling it once when it arrives as a
// name.
func (g *Graph) Refresh(ctx context.Context, child string) {
	idx, ok := g.byChild[child]
	if !ok {
		return
	}
	edge := g.edges[idx]

	g.mu.Lock()
	parentID := g.values.Get(edge.Parent)
	if parentID == "" {
		g.options[child] = nil
		g.mu.Unlock()
		return
	}
	g.generation[child]++
	job := fetchJob{edge: edge, parentID: parentID, generation: g.generation[child]}
	g.mu.Unlock()

	g.run(ctx, job)
}

// Hydrate walks every edge parents-first and loads the child lists for the
// values seeded into the store, so names coming from profile data resolve
// to ids before the next level is fetched.
func (g *Graph) Hydrate(ctx context.Context) {
	for _, edge := range g.edges {
		if err := ctx.Err(); err != nil {
			return
		}
		g.Refresh(ctx, edge.Child)
	}
}

type fetchJob struct {
	edge       Edge
	parentID   string
	generation uint64
	carry      string
}

// invalidate clears the descendants of parent and returns fetch jobs for its
// direct children. Callers hold g.mu.
func (g *Graph) invalidate(parent, parentID string) []fetchJob {
	var jobs []fetchJob
	for _, idx := range g.byParent[parent] {
		edge := g.edges[idx]
		child := edge.Child

		carry := ""
		if edge.CarryOver {
			if held := g.values.Get(child); held != "" {
				carry = option.Label(g.options[child], held)
			}
		}

		g.values.Set(child, "")
		g.options[child] = nil
		g.generation[child]++
		g.reconciled[child] = false
		g.invalidate(child, "")

		if parentID != "" {
			jobs = append(jobs, fetchJob{
				edge:       edge,
				parentID:   parentID,
				generation: g.generation[child],
				carry:      carry,
			})
		}
	}
	return jobs
}

func (g *Graph) run(ctx context.Context, job fetchJob) {
	child := job.edge.Child
	opts, err := job.edge.Fetch(ctx, job.parentID)
	if err != nil {
		g.logger.Warn("dependent options fetch failed",
			zap.String("parent", job.edge.Parent),
			zap.String("child", child),
			zap.String("parent_id", job.parentID),
			zap.Error(err),
		)
		opts = nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generation[child] != job.generation {
		g.logger.Debug("discarding stale dependent options",
			zap.String("child", child),
			zap.Uint64("generation", job.generation),
			zap.Uint64("current", g.generation[child]),
		)
		return
	}

	g.options[child] = option.Dedupe(opts)
	if job.carry != "" && g.values.Get(child) == "" {
		if id, ok := option.Reconcile(g.options[child], job.carry); ok {
			g.values.Set(child, id)
		}
		g.reconciled[child] = true
		return
	}
	g.reconcileOnce(child)
}

// reconcileOnce runs the one-time name-to-id reconciliation for field.
// Callers hold g.mu.
func (g *Graph) reconcileOnce(field string) {
	if g.reconciled[field] {
		return
	}
	opts := g.options[field]
	if len(opts) == 0 {
		return
	}
	g.reconciled[field] = true

	held := g.values.Get(field)
	if held == "" {
		return
	}
	if _, ok := option.FindByID(opts, held); ok {
		return
	}
	if id, ok := option.Reconcile(opts, held); ok {
		g.values.Set(field, id)
	}
}
