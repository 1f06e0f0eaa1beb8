package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileflow/pkg/assembler"
	"github.com/goliatone/go-profileflow/pkg/profile"
)

// Phase is the controller's activity within a step.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Gateway posts step payloads to the server.
type Gateway interface {
	SubmitStep(ctx context.Context, step profile.Step, body any) ([]string, error)
	SkipStep(ctx context.Context, step profile.Step) error
}

// Validator reports the blank required inputs of a step.
type Validator interface {
	Missing(step profile.Step, snapshot profile.Snapshot) []string
}

// Checker verifies an assembled payload before it is sent.
type Checker interface {
	ValidateStep(step profile.Step, payload any) error
}

// Navigator is told when the wizard leaves through its last step.
type Navigator interface {
	Complete(ctx context.Context)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context)

// Complete implements Navigator.
func (f NavigatorFunc) Complete(ctx context.Context) { f(ctx) }

// Notifier shows a blocking alert to the user.
type Notifier interface {
	Alert(title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string)

// Alert implements Notifier.
func (f NotifierFunc) Alert(title, message string) { f(title, message) }

// Outcome describes a completed transition.
type Outcome struct {
	From      profile.Step
	To        profile.Step
	Completed bool
	Messages  []string
}

// Controller is the step submission state machine.
type Controller struct {
	mu    sync.Mutex
	step  profile.Step
	phase Phase

	gateway   Gateway
	validator Validator
	checker   Checker
	navigator Navigator
	notifier  Notifier
	lookups   func() assembler.Lookups
	logger    *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithValidator enables required-field checks before submission.
func WithValidator(v Validator) Option {
	return func(c *Controller) { c.validator = v }
}

// WithChecker enables payload contract checks before submission.
func WithChecker(ch Checker) Option {
	return func(c *Controller) { c.checker = ch }
}

// WithNavigator sets the completion target.
func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.navigator = n }
}

// WithNotifier sets the alert sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLookups supplies the option lists used to label ids in payloads.
func WithLookups(fn func() assembler.Lookups) Option {
	return func(c *Controller) { c.lookups = fn }
}

// WithLogger sets the controller logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStartStep positions the controller on step instead of the first one.
func WithStartStep(step profile.Step) Option {
	return func(c *Controller) {
		if step.Valid() {
			c.step = step
		}
	}
}

// New constructs a controller on the first step.
func New(gateway Gateway, opts ...Option) (*Controller, error) {
	if gateway == nil {
		return nil, errors.New("wizard: gateway is required")
	}
	c := &Controller{
		step:    profile.FirstStep,
		gateway: gateway,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Step returns the current step.
func (c *Controller) Step() profile.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Done reports whether the last step has been left.
func (c *Controller) Done() bool {
	return c.Phase() == PhaseCompleted
}

// Submit validates, assembles and posts the current step. Validation and
// server failures raise an alert and keep the controller on its step; the
// user decides whether to try again.
func (c *Controller) Submit(ctx context.Context, snapshot profile.Snapshot) (Outcome, error) {
	step, err := c.begin()
	if err != nil {
		return Outcome{}, err
	}
	logger := c.logger.With(zap.String("step", step.Slug()))

	if c.validator != nil {
		if missing := c.validator.Missing(step, snapshot); len(missing) > 0 {
			c.finish(step, false)
			verr := &ValidationError{Step: step, Fields: missing}
			c.alert("Missing information", "Please fill in: "+strings.Join(missing, ", "))
			logger.Debug("step validation failed", zap.Strings("missing", missing))
			return Outcome{From: step, To: step}, verr
		}
	}

	var lookups assembler.Lookups
	if c.lookups != nil {
		lookups = c.lookups()
	}
	payload, err := assembler.Assemble(step, snapshot, lookups)
	if err != nil {
		c.finish(step, false)
		c.alert("Error", err.Error())
		return Outcome{From: step, To: step}, fmt.Errorf("wizard: assemble: %w", err)
	}

	if c.checker != nil {
		if err := c.checker.ValidateStep(step, payload); err != nil {
			c.finish(step, false)
			c.alert("Invalid details", err.Error())
			logger.Warn("step payload failed contract check", zap.Error(err))
			return Outcome{From: step, To: step}, err
		}
	}

	messages, err := c.gateway.SubmitStep(ctx, step, payload)
	if err != nil {
		c.finish(step, false)
		c.alert("Error", userMessage(err))
		logger.Warn("step submission failed", zap.Error(err))
		return Outcome{From: step, To: step}, err
	}

	outcome := c.finish(step, true)
	outcome.Messages = messages
	logger.Info("step submitted", zap.Int("next", int(outcome.To)), zap.Bool("completed", outcome.Completed))
	if outcome.Completed {
		c.complete(ctx)
	}
	return outcome, nil
}

// Skip tells the server the current step was skipped and advances. Skip
// errors are logged and never block the user.
func (c *Controller) Skip(ctx context.Context) (Outcome, error) {
	step, err := c.begin()
	if err != nil {
		return Outcome{}, err
	}
	if err := c.gateway.SkipStep(ctx, step); err != nil {
		c.logger.Warn("step skip failed", zap.String("step", step.Slug()), zap.Error(err))
	}
	outcome := c.finish(step, true)
	if outcome.Completed {
		c.complete(ctx)
	}
	return outcome, nil
}

// Previous moves back one step without contacting the server. The first
// step is a floor. It returns the resulting step.
func (c *Controller) Previous() (profile.Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseSubmitting:
		return c.step, ErrBusy
	case PhaseCompleted:
		return c.step, ErrCompleted
	}
	if c.step > profile.FirstStep {
		c.step--
	}
	return c.step, nil
}

func (c *Controller) begin() (profile.Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseSubmitting:
		return c.step, ErrBusy
	case PhaseCompleted:
		return c.step, ErrCompleted
	}
	c.phase = PhaseSubmitting
	return c.step, nil
}

func (c *Controller) finish(step profile.Step, advance bool) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	outcome := Outcome{From: step, To: step}
	c.phase = PhaseIdle
	if !advance {
		return outcome
	}
	if step >= profile.LastStep {
		c.phase = PhaseCompleted
		outcome.Completed = true
		return outcome
	}
	c.step = step + 1
	outcome.To = c.step
	return outcome
}

func (c *Controller) alert(title, message string) {
	if c.notifier != nil {
		c.notifier.Alert(title, message)
	}
}

func (c *Controller) complete(ctx context.Context) {
	if c.navigator != nil {
		c.navigator.Complete(ctx)
	}
}
