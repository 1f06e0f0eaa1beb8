package prompt

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileflow/pkg/assembler"
	"github.com/goliatone/go-profileflow/pkg/fieldspec"
	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
	"github.com/goliatone/go-profileflow/pkg/wizard"
)

// Flow is the wizard screen a session drives.
type Flow interface {
	Step() profile.Step
	Done() bool
	State() *profile.State
	Choices(field fieldspec.FieldSpec) []option.Option
	SetField(ctx context.Context, field, value string) error
	Next(ctx context.Context) (wizard.Outcome, error)
	Skip(ctx context.Context) (wizard.Outcome, error)
	Back() (profile.Step, error)
}

const (
	actionSave = "Save and continue"
	actionSkip = "Skip this step"
	actionBack = "Back"
	actionQuit = "Quit"

	recordAdd    = "Add entry"
	recordRemove = "Remove entry"
	recordDone   = "Done"

	notSet = "(not set)"
)

// Session walks a Flow step by step.
type Session struct {
	flow   Flow
	specs  *fieldspec.Store
	driver PromptDriver
	out    io.Writer
	logger *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDriver replaces the survey driver.
func WithDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the final summary is written.
func WithOutput(out io.Writer) SessionOption {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession constructs a session over flow using specs for field
// definitions.
func NewSession(flow Flow, specs *fieldspec.Store, opts ...SessionOption) (*Session, error) {
	if flow == nil {
		return nil, errors.New("prompt: flow is required")
	}
	if specs.Empty() {
		return nil, errors.New("prompt: field definitions are required")
	}
	s := &Session{
		flow:   flow,
		specs:  specs,
		out:    os.Stdout,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s, nil
}

// Notifier returns a wizard notifier that prints alerts through driver.
func Notifier(driver PromptDriver) wizard.NotifierFunc {
	return func(title, message string) {
		_ = driver.Info(context.Background(), fmt.Sprintf("! %s: %s", title, message))
	}
}

// Run prompts until the wizard completes or the user quits, then prints
// the summary. Quitting returns ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	for !s.flow.Done() {
		step := s.flow.Step()
		spec, ok := s.specs.Step(step)
		if !ok {
			return fmt.Errorf("prompt: no field definitions for step %s", step)
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("\nStep %d of %d: %s", int(step), int(profile.LastStep), spec.Title)); err != nil {
			return err
		}
		if err := s.fill(ctx, spec); err != nil {
			return err
		}

		actions := []string{actionSave, actionSkip}
		if step > profile.FirstStep {
			actions = append(actions, actionBack)
		}
		actions = append(actions, actionQuit)
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: actions})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case actionSave:
			if _, err := s.flow.Next(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Debug("step not saved", zap.String("step", step.Slug()), zap.Error(err))
			}
		case actionSkip:
			if _, err := s.flow.Skip(ctx); err != nil {
				return err
			}
		case actionBack:
			if _, err := s.flow.Back(); err != nil {
				return err
			}
		case actionQuit:
			return ErrAborted
		}
	}
	return s.WriteSummary(s.out)
}

func (s *Session) fill(ctx context.Context, spec fieldspec.StepSpec) error {
	if spec.Collection != "" {
		return s.fillRecords(ctx, spec)
	}
	state := s.flow.State()
	for _, field := range spec.Fields {
		current := state.Get(field.Name)
		value, err := s.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if value == current {
			continue
		}
		if err := s.flow.SetField(ctx, field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) ask(ctx context.Context, field fieldspec.FieldSpec, current string) (string, error) {
	message := field.Label
	if field.Required {
		message += " *"
	}

	if field.HasOptions() {
		if opts := s.flow.Choices(field); len(opts) > 0 {
			return s.choose(ctx, field, message, opts, current)
		}
	}

	switch field.Kind {
	case fieldspec.KindTextArea:
		raw, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: field.Help})
		if err != nil {
			return "", err
		}
		return sanitize(raw), nil
	case fieldspec.KindList:
		raw, err := s.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: field.Help, Validator: validator(field)})
		if err != nil {
			return "", err
		}
		return strings.Join(assembler.SplitList(raw), ", "), nil
	default:
		raw, err := s.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: field.Help, Validator: validator(field)})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(raw), nil
	}
}

// choose offers the option list for a field. A held value that matches no
// option is listed after the options under its raw text and preselected, so
// accepting the default keeps it.
func (s *Session) choose(ctx context.Context, field fieldspec.FieldSpec, message string, opts []option.Option, current string) (string, error) {
	labels := make([]string, 0, len(opts)+2)
	offset := 0
	if !field.Required {
		labels = append(labels, notSet)
		offset = 1
	}
	defaultIndex := 0
	matched := false
	for idx, opt := range opts {
		labels = append(labels, opt.Name)
		if current != "" && (opt.ID == current || strings.EqualFold(opt.Name, current)) {
			defaultIndex = idx + offset
			matched = true
		}
	}
	legacy := -1
	if current != "" && !matched {
		legacy = len(labels)
		labels = append(labels, current)
		defaultIndex = legacy
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         field.Help,
		PageSize:     12,
	})
	if err != nil {
		return "", err
	}
	if legacy >= 0 && idx == legacy {
		return current, nil
	}
	idx -= offset
	if idx < 0 || idx >= len(opts) {
		return "", nil
	}
	return opts[idx].ID, nil
}

func (s *Session) fillRecords(ctx context.Context, spec fieldspec.StepSpec) error {
	state := s.flow.State()
	for {
		rows := recordLines(spec, state.Snapshot())
		for idx, row := range rows {
			if err := s.driver.Info(ctx, fmt.Sprintf("  %d. %s", idx+1, row)); err != nil {
				return err
			}
		}

		choices := []string{recordAdd}
		if len(rows) > 0 {
			choices = append(choices, recordRemove)
		}
		choices = append(choices, recordDone)
		idx, err := s.driver.Select(ctx, SelectConfig{Message: spec.Title, Options: choices})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(choices) {
			continue
		}

		switch choices[idx] {
		case recordAdd:
			values := make(map[string]string, len(spec.Columns))
			for _, column := range spec.Columns {
				value, err := s.ask(ctx, column, "")
				if err != nil {
					return err
				}
				values[column.Name] = value
			}
			addRecord(state, spec.Collection, values)
		case recordRemove:
			pick, err := s.driver.Select(ctx, SelectConfig{Message: "Remove which entry?", Options: rows})
			if err != nil {
				return err
			}
			if err := removeRecord(state, spec.Collection, pick); err != nil {
				s.logger.Debug("record not removed", zap.Error(err))
			}
		case recordDone:
			return nil
		}
	}
}

func addRecord(state *profile.State, collection string, values map[string]string) {
	switch collection {
	case fieldspec.CollectionEducation:
		state.AddEducation(profile.EducationRecord{
			Institute:    values["institute"],
			Degree:       values["degree"],
			FieldOfStudy: values["field_of_study"],
			Start:        values["start"],
			End:          values["end"],
		})
	case fieldspec.CollectionCareer:
		state.AddCareer(profile.CareerRecord{
			Designation: values["designation"],
			Company:     values["company"],
			Location:    values["location"],
			Start:       values["start"],
			End:         values["end"],
		})
	}
}

func removeRecord(state *profile.State, collection string, index int) error {
	switch collection {
	case fieldspec.CollectionEducation:
		return state.RemoveEducation(index)
	case fieldspec.CollectionCareer:
		return state.RemoveCareer(index)
	default:
		return fmt.Errorf("prompt: unknown collection %q", collection)
	}
}

func validator(field fieldspec.FieldSpec) func(string) error {
	return func(raw string) error {
		value := strings.TrimSpace(raw)
		if value == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.Label)
			}
			return nil
		}
		switch field.Kind {
		case fieldspec.KindNumber:
			if n := assembler.Number(value); n == "" {
				return fmt.Errorf("%s must be a number", field.Label)
			}
		case fieldspec.KindDate:
			if _, err := time.Parse("2006-01-02", value); err != nil {
				return fmt.Errorf("%s must look like YYYY-MM-DD", field.Label)
			}
		}
		return nil
	}
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitize strips markup from free text. The policy escapes entities, which
// are turned back into plain characters.
func sanitize(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}
