// Package profileflow wires the profile completion wizard together. A Screen
// owns the form state for one wizard session, loads option lists and the
// stored profile when mounted, keeps dependent dropdowns consistent and
// routes step actions to the submission controller.
package profileflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-profileflow/pkg/apiclient"
	"github.com/goliatone/go-profileflow/pkg/assembler"
	"github.com/goliatone/go-profileflow/pkg/dependency"
	"github.com/goliatone/go-profileflow/pkg/fieldspec"
	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
	"github.com/goliatone/go-profileflow/pkg/wizard"
)

// Backend is the remote API as seen by a Screen. *apiclient.Client
// implements it.
type Backend interface {
	dependency.Source
	wizard.Gateway
	Dropdowns(ctx context.Context) (apiclient.Bundle, error)
	Countries(ctx context.Context) ([]option.Option, error)
	Profile(ctx context.Context) (map[string]any, error)
}

var _ Backend = (*apiclient.Client)(nil)

// sourceFields maps option sources to the field whose list backs them.
var sourceFields = map[string]string{
	fieldspec.SourceReligions:       profile.FieldReligion,
	fieldspec.SourceCastes:          profile.FieldCaste,
	fieldspec.SourceCountries:       profile.FieldCountry,
	fieldspec.SourceStates:          profile.FieldState,
	fieldspec.SourceCities:          profile.FieldCity,
	fieldspec.SourceMaritalStatuses: profile.FieldMaritalStatus,
}

// Screen is one profile wizard session.
type Screen struct {
	backend  Backend
	state    *profile.State
	graph    *dependency.Graph
	ctrl     *wizard.Controller
	specs    *fieldspec.Store
	resolver *option.Resolver
	logger   *zap.Logger

	mu      sync.Mutex
	mounted bool
}

type settings struct {
	registration map[string]any
	specs        *fieldspec.Store
	checker      wizard.Checker
	navigator    wizard.Navigator
	notifier     wizard.Notifier
	startStep    profile.Step
	logger       *zap.Logger
}

// Option configures a Screen.
type Option func(*settings)

// WithRegistration seeds the form from the registration payload.
func WithRegistration(payload map[string]any) Option {
	return func(s *settings) { s.registration = payload }
}

// WithFieldSpecs replaces the embedded field definitions.
func WithFieldSpecs(store *fieldspec.Store) Option {
	return func(s *settings) { s.specs = store }
}

// WithChecker validates payloads before they are sent.
func WithChecker(checker wizard.Checker) Option {
	return func(s *settings) { s.checker = checker }
}

// WithNavigator is called when the last step is left.
func WithNavigator(n wizard.Navigator) Option {
	return func(s *settings) { s.navigator = n }
}

// WithNotifier receives blocking alerts.
func WithNotifier(n wizard.Notifier) Option {
	return func(s *settings) { s.notifier = n }
}

// WithStartStep resumes the wizard on step.
func WithStartStep(step profile.Step) Option {
	return func(s *settings) { s.startStep = step }
}

// WithLogger sets the logger shared by the screen's components.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// New builds a screen over backend. Call Mount before use.
func New(backend Backend, opts ...Option) (*Screen, error) {
	if backend == nil {
		return nil, errors.New("profileflow: backend is required")
	}
	cfg := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.specs == nil {
		store, err := fieldspec.Default()
		if err != nil {
			return nil, fmt.Errorf("profileflow: field definitions: %w", err)
		}
		cfg.specs = store
	}

	s := &Screen{
		backend:  backend,
		state:    profile.FromRegistration(cfg.registration),
		specs:    cfg.specs,
		resolver: option.NewResolver(option.WithLogger(cfg.logger.Named("options"))),
		logger:   cfg.logger,
	}

	graph, err := dependency.New(s.state, dependency.ProfileEdges(backend),
		dependency.WithLogger(cfg.logger.Named("dependency")))
	if err != nil {
		return nil, fmt.Errorf("profileflow: %w", err)
	}
	s.graph = graph

	ctrlOpts := []wizard.Option{
		wizard.WithValidator(cfg.specs),
		wizard.WithLookups(s.lookups),
		wizard.WithLogger(cfg.logger.Named("wizard")),
	}
	if cfg.checker != nil {
		ctrlOpts = append(ctrlOpts, wizard.WithChecker(cfg.checker))
	}
	if cfg.navigator != nil {
		ctrlOpts = append(ctrlOpts, wizard.WithNavigator(cfg.navigator))
	}
	if cfg.notifier != nil {
		ctrlOpts = append(ctrlOpts, wizard.WithNotifier(cfg.notifier))
	}
	if cfg.startStep.Valid() {
		ctrlOpts = append(ctrlOpts, wizard.WithStartStep(cfg.startStep))
	}
	ctrl, err := wizard.New(backend, ctrlOpts...)
	if err != nil {
		return nil, fmt.Errorf("profileflow: %w", err)
	}
	s.ctrl = ctrl
	return s, nil
}

// Mount loads the dropdown bundle and the stored profile concurrently, seeds
// blank fields from the profile and resolves dependent lists top-down.
// Fetch failures are logged and leave the affected lists empty; countries
// fall back to the dedicated endpoint and then to India. Once a mount has
// succeeded, further calls are no-ops; a cancelled mount can be retried.
func (s *Screen) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return nil
	}
	s.mounted = true
	s.mu.Unlock()

	var (
		bundle apiclient.Bundle
		doc    map[string]any
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loaded, err := s.backend.Dropdowns(gctx)
		if err != nil {
			s.logger.Warn("dropdown bundle unavailable", zap.Error(err))
			return nil
		}
		bundle = loaded
		return nil
	})
	group.Go(func() error {
		loaded, err := s.backend.Profile(gctx)
		if err != nil {
			s.logger.Warn("stored profile unavailable", zap.Error(err))
			return nil
		}
		doc = loaded
		return nil
	})
	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.mounted = false
		s.mu.Unlock()
		return err
	}

	countries := bundle.Countries
	if len(countries) == 0 {
		countries = s.resolver.Resolve(ctx, "countries", func(ctx context.Context) (any, error) {
			return s.backend.Countries(ctx)
		}, option.DefaultCountry)
	}

	profile.ApplyProfile(s.state, doc)
	s.graph.SetOptions(profile.FieldReligion, bundle.Religions)
	s.graph.SetOptions(profile.FieldMaritalStatus, bundle.MaritalStatuses)
	s.graph.SetOptions(profile.FieldCountry, countries)
	s.graph.Hydrate(ctx)

	s.logger.Debug("wizard mounted",
		zap.Int("religions", len(bundle.Religions)),
		zap.Int("countries", len(countries)),
		zap.Int("step", int(s.ctrl.Step())),
	)
	return nil
}

// State returns the form state owned by the screen.
func (s *Screen) State() *profile.State {
	return s.state
}

// Specs returns the field definitions in use.
func (s *Screen) Specs() *fieldspec.Store {
	return s.specs
}

// Step returns the current wizard step.
func (s *Screen) Step() profile.Step {
	return s.ctrl.Step()
}

// Done reports whether the wizard has completed.
func (s *Screen) Done() bool {
	return s.ctrl.Done()
}

// Options returns the current option list of a field.
func (s *Screen) Options(field string) []option.Option {
	return s.graph.Options(field)
}

// Choices returns the options for a field definition: its static choices,
// or the live list of the field backing its source.
func (s *Screen) Choices(field fieldspec.FieldSpec) []option.Option {
	if len(field.Choices) > 0 {
		return append([]option.Option(nil), field.Choices...)
	}
	if backing, ok := sourceFields[field.Source]; ok {
		return s.graph.Options(backing)
	}
	return nil
}

// SetField updates a field. Changing a parent of dependent fields clears
// them and reloads their options before returning.
func (s *Screen) SetField(ctx context.Context, field, value string) error {
	if !profile.IsField(field) {
		return fmt.Errorf("profileflow: unknown field %q", field)
	}
	s.graph.Change(ctx, field, value)
	return nil
}

// Next submits the current step.
func (s *Screen) Next(ctx context.Context) (wizard.Outcome, error) {
	return s.ctrl.Submit(ctx, s.state.Snapshot())
}

// Skip skips the current step.
func (s *Screen) Skip(ctx context.Context) (wizard.Outcome, error) {
	return s.ctrl.Skip(ctx)
}

// Back returns to the previous step.
func (s *Screen) Back() (profile.Step, error) {
	return s.ctrl.Previous()
}

func (s *Screen) lookups() assembler.Lookups {
	return assembler.Lookups{
		Castes:          s.graph.Options(profile.FieldCaste),
		MaritalStatuses: s.graph.Options(profile.FieldMaritalStatus),
	}
}
