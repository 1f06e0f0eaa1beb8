package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileflow/pkg/fieldspec"
	"github.com/goliatone/go-profileflow/pkg/option"
	"github.com/goliatone/go-profileflow/pkg/profile"
	"github.com/goliatone/go-profileflow/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	textAreas    []string
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", ErrNoAnswer
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, ErrNoAnswer
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", ErrNoAnswer
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type fakeFlow struct {
	order    []profile.Step
	pos      int
	done     bool
	state    *profile.State
	choices  map[string][]option.Option
	nextErrs []error
	sets     []string
}

func (f *fakeFlow) Step() profile.Step    { return f.order[f.pos] }
func (f *fakeFlow) Done() bool            { return f.done }
func (f *fakeFlow) State() *profile.State { return f.state }

func (f *fakeFlow) Choices(field fieldspec.FieldSpec) []option.Option {
	if len(field.Choices) > 0 {
		return field.Choices
	}
	return f.choices[field.Source]
}

func (f *fakeFlow) SetField(_ context.Context, field, value string) error {
	f.sets = append(f.sets, field)
	f.state.Set(field, value)
	return nil
}

func (f *fakeFlow) advance() wizard.Outcome {
	from := f.Step()
	if f.pos == len(f.order)-1 {
		f.done = true
		return wizard.Outcome{From: from, To: from, Completed: true}
	}
	f.pos++
	return wizard.Outcome{From: from, To: f.Step()}
}

func (f *fakeFlow) Next(context.Context) (wizard.Outcome, error) {
	if len(f.nextErrs) > 0 {
		err := f.nextErrs[0]
		f.nextErrs = f.nextErrs[1:]
		return wizard.Outcome{From: f.Step(), To: f.Step()}, err
	}
	return f.advance(), nil
}

func (f *fakeFlow) Skip(context.Context) (wizard.Outcome, error) {
	return f.advance(), nil
}

func (f *fakeFlow) Back() (profile.Step, error) {
	if f.pos > 0 {
		f.pos--
	}
	return f.Step(), nil
}

const testSpecs = `
steps:
  basic-info:
    title: Basics
    fields:
      - name: first_name
        required: true
      - name: religion
        source: religions
      - name: about_me
        kind: textarea
  education-info:
    title: Education
    collection: education
    columns:
      - name: institute
        required: true
      - name: degree
`

func newTestSession(t *testing.T, flow Flow, driver PromptDriver, out *bytes.Buffer) *Session {
	t.Helper()
	store, err := fieldspec.Parse([]byte(testSpecs), "test.yaml")
	if err != nil {
		t.Fatalf("parse specs: %v", err)
	}
	session, err := NewSession(flow, store, WithDriver(driver), WithOutput(out))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestSession_RunWalksStepsAndRetriesFailedSave(t *testing.T) {
	flow := &fakeFlow{
		order: []profile.Step{profile.StepBasicInfo, profile.StepEducation},
		state: profile.NewState(nil),
		choices: map[string][]option.Option{
			fieldspec.SourceReligions: {{ID: "1", Name: "Hindu"}, {ID: "3", Name: "Christian"}},
		},
		nextErrs: []error{&wizard.ValidationError{Step: profile.StepBasicInfo, Fields: []string{"gender"}}},
	}
	driver := &stubDriver{
		inputs:    []string{"Asha", "Asha", "IIT", "BTech"},
		selectIdx: []int{1, 0, 1, 0, 0, 2, 1},
		textAreas: []string{"<b>Hi</b> & welcome", "Hi & welcome"},
	}
	var out bytes.Buffer
	session := newTestSession(t, flow, driver, &out)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !flow.done {
		t.Fatalf("flow should be completed")
	}
	if diff := cmp.Diff([]string{profile.FieldFirstName, profile.FieldReligion, profile.FieldAboutMe}, flow.sets); diff != "" {
		t.Fatalf("field updates mismatch:\n%s", diff)
	}
	if got := flow.state.Get(profile.FieldAboutMe); got != "Hi & welcome" {
		t.Fatalf("about_me not sanitised: %q", got)
	}
	if diff := cmp.Diff([]profile.EducationRecord{{Institute: "IIT", Degree: "BTech"}}, flow.state.Education()); diff != "" {
		t.Fatalf("education mismatch:\n%s", diff)
	}

	religionPrompt := driver.selects[0]
	if diff := cmp.Diff([]string{notSet, "Hindu", "Christian"}, religionPrompt.Options); diff != "" {
		t.Fatalf("religion options mismatch:\n%s", diff)
	}
	if driver.selects[2].DefaultIndex != 1 {
		t.Fatalf("second pass should default to the held religion, got %d", driver.selects[2].DefaultIndex)
	}
	lastActions := driver.selects[len(driver.selects)-1].Options
	if diff := cmp.Diff([]string{actionSave, actionSkip, actionBack, actionQuit}, lastActions); diff != "" {
		t.Fatalf("actions mismatch:\n%s", diff)
	}

	summary := out.String()
	for _, want := range []string{"== Basics ==", "First Name: Asha", "Religion: Hindu", "About Me: Hi & welcome", "Institute: IIT, Degree: BTech"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestSession_QuitAborts(t *testing.T) {
	flow := &fakeFlow{
		order: []profile.Step{profile.StepBasicInfo},
		state: profile.NewState(map[string]string{profile.FieldFirstName: "Ravi"}),
	}
	driver := &stubDriver{
		inputs:    []string{"Ravi"},
		textAreas: []string{""},
		selectIdx: []int{2},
	}
	var out bytes.Buffer
	session := newTestSession(t, flow, driver, &out)

	// No religion options, so the select falls back to a text input.
	driver.inputs = append(driver.inputs, "")

	if err := session.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if diff := cmp.Diff([]string{actionSave, actionSkip, actionQuit}, driver.selects[0].Options); diff != "" {
		t.Fatalf("first step must not offer back:\n%s", diff)
	}
	if out.Len() != 0 {
		t.Fatalf("no summary expected after quitting")
	}
}

func TestSession_RemoveRecord(t *testing.T) {
	state := profile.NewState(nil)
	state.AddEducation(profile.EducationRecord{Institute: "A"})
	state.AddEducation(profile.EducationRecord{Institute: "B"})
	flow := &fakeFlow{order: []profile.Step{profile.StepEducation}, state: state}
	driver := &stubDriver{selectIdx: []int{1, 0, 2, 1}}
	var out bytes.Buffer
	session := newTestSession(t, flow, driver, &out)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]profile.EducationRecord{{Institute: "B"}}, state.Education()); diff != "" {
		t.Fatalf("records mismatch:\n%s", diff)
	}
}

func TestChoose_KeepsUnmatchedHeldValue(t *testing.T) {
	religions := []option.Option{{ID: "1", Name: "Hindu"}}
	cases := []struct {
		name      string
		field     fieldspec.FieldSpec
		wantLabel []string
		wantIndex int
	}{
		{
			name:      "optional",
			field:     fieldspec.FieldSpec{Name: profile.FieldReligion, Label: "Religion", Source: fieldspec.SourceReligions},
			wantLabel: []string{notSet, "Hindu", "Zoroastrian"},
			wantIndex: 2,
		},
		{
			name:      "required",
			field:     fieldspec.FieldSpec{Name: profile.FieldReligion, Label: "Religion", Source: fieldspec.SourceReligions, Required: true},
			wantLabel: []string{"Hindu", "Zoroastrian"},
			wantIndex: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flow := &fakeFlow{
				order:   []profile.Step{profile.StepBasicInfo},
				state:   profile.NewState(map[string]string{profile.FieldReligion: "Zoroastrian"}),
				choices: map[string][]option.Option{fieldspec.SourceReligions: religions},
			}
			driver := &stubDriver{selectIdx: []int{tc.wantIndex}}
			var out bytes.Buffer
			session := newTestSession(t, flow, driver, &out)

			spec := fieldspec.StepSpec{Step: profile.StepBasicInfo, Fields: []fieldspec.FieldSpec{tc.field}}
			if err := session.fill(context.Background(), spec); err != nil {
				t.Fatalf("fill: %v", err)
			}
			if got := flow.state.Get(profile.FieldReligion); got != "Zoroastrian" {
				t.Fatalf("held religion lost, got %q", got)
			}
			if len(flow.sets) != 0 {
				t.Fatalf("keeping the held value must not update the field, got %v", flow.sets)
			}
			if diff := cmp.Diff(tc.wantLabel, driver.selects[0].Options); diff != "" {
				t.Fatalf("options mismatch:\n%s", diff)
			}
			if driver.selects[0].DefaultIndex != tc.wantIndex {
				t.Fatalf("default index = %d, want %d", driver.selects[0].DefaultIndex, tc.wantIndex)
			}
		})
	}
}

func TestChoose_ReplacesUnmatchedHeldValue(t *testing.T) {
	flow := &fakeFlow{
		order:   []profile.Step{profile.StepBasicInfo},
		state:   profile.NewState(map[string]string{profile.FieldReligion: "Zoroastrian"}),
		choices: map[string][]option.Option{fieldspec.SourceReligions: {{ID: "1", Name: "Hindu"}}},
	}
	driver := &stubDriver{selectIdx: []int{1}}
	var out bytes.Buffer
	session := newTestSession(t, flow, driver, &out)

	field := fieldspec.FieldSpec{Name: profile.FieldReligion, Label: "Religion", Source: fieldspec.SourceReligions}
	got, err := session.choose(context.Background(), field, "Religion", flow.choices[fieldspec.SourceReligions], "Zoroastrian")
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got != "1" {
		t.Fatalf("expected the picked option id, got %q", got)
	}
}

func TestNotifier_PrintsThroughDriver(t *testing.T) {
	driver := &stubDriver{}
	Notifier(driver).Alert("Error", "Birth date is invalid")
	if diff := cmp.Diff([]string{"! Error: Birth date is invalid"}, driver.infoMessages); diff != "" {
		t.Fatalf("alert mismatch:\n%s", diff)
	}
}

func TestValidator(t *testing.T) {
	age := validator(fieldspec.FieldSpec{Label: "Age", Kind: fieldspec.KindNumber, Required: true})
	if age("") == nil || age("abc") == nil || age(" 31 ") != nil || age("5.4") != nil {
		t.Fatalf("number validation mismatch")
	}
	for _, raw := range []string{"NaN", "inf", "-Infinity"} {
		if age(raw) == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	dob := validator(fieldspec.FieldSpec{Label: "DOB", Kind: fieldspec.KindDate})
	if dob("") != nil || dob("02/03/1994") == nil || dob("1994-03-02") != nil {
		t.Fatalf("date validation mismatch")
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("  <script>x()</script>Tea &amp; <i>books</i> "); got != "Tea & books" {
		t.Fatalf("unexpected sanitised text: %q", got)
	}
}
