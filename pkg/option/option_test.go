package option_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileflow/pkg/option"
)

func TestFromJSON_ArrayOfObjects(t *testing.T) {
	payload := []byte(`[
		{"id": 1, "name": "Hindu"},
		{"value": "2", "label": "Muslim"},
		{"key": "3", "title": "Christian"},
		{"id": 4, "name": "hindu"},
		{"id": 5, "name": "Unknown"},
		{"id": 6, "name": ""}
	]`)

	got := option.FromJSON(payload)
	want := []option.Option{
		{ID: "1", Name: "Hindu"},
		{ID: "2", Name: "Muslim"},
		{ID: "3", Name: "Christian"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_ObjectMapPreservesKeyOrder(t *testing.T) {
	payload := []byte(`{"9": "Single", "2": "Married", "5": "Divorced", "7": "single"}`)

	got := option.FromJSON(payload)
	want := []option.Option{
		{ID: "9", Name: "Single"},
		{ID: "2", Name: "Married"},
		{ID: "5", Name: "Divorced"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_ObjectMapWithNestedName(t *testing.T) {
	payload := []byte(`{
		"10": {"name": {"en": "Tamil Nadu", "ta": "தமிழ்நாடு"}},
		"11": {"id": 99, "name": {"hi": "केरल"}},
		"12": {"name": {"en": "Unknown"}}
	}`)

	got := option.FromJSON(payload)
	want := []option.Option{
		{ID: "10", Name: "Tamil Nadu"},
		{ID: "99", Name: "केरल"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_UnwrapsEnvelope(t *testing.T) {
	payload := []byte(`{"status": "success", "data": [{"id": 7, "name": "Brahmin"}]}`)

	got := option.FromJSON(payload)
	want := []option.Option{{ID: "7", Name: "Brahmin"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_ScalarElementsAndFirstStringProperty(t *testing.T) {
	payload := []byte(`["English", 42, {"id": 3, "caste_name": "Nair"}]`)

	got := option.FromJSON(payload)
	want := []option.Option{
		{ID: "English", Name: "English"},
		{ID: "3", Name: "Nair"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_MalformedYieldsNil(t *testing.T) {
	for _, payload := range []string{``, `null`, `"oops"`, `{"broken":`, `[]`, `{}`} {
		if got := option.FromJSON([]byte(payload)); got != nil {
			t.Fatalf("payload %q: expected nil, got %#v", payload, got)
		}
	}
}

func TestDetect_Shapes(t *testing.T) {
	cases := []struct {
		name    string
		payload any
		want    option.Shape
	}{
		{name: "nil", payload: nil, want: option.ShapeEmpty},
		{name: "list", payload: []any{"a"}, want: option.ShapeList},
		{name: "map", payload: map[string]any{"1": "a"}, want: option.ShapeMap},
		{name: "scalar", payload: 12.0, want: option.ShapeScalar},
		{name: "envelope", payload: map[string]any{"status": "success", "data": []any{"a"}}, want: option.ShapeList},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := option.Detect(tc.payload).Shape; got != tc.want {
				t.Fatalf("expected shape %s, got %s", tc.want, got)
			}
		})
	}
}

func TestNormalize_DecodedMapSortsNumericKeys(t *testing.T) {
	got := option.Normalize(map[string]any{"10": "Ten", "2": "Two", "1": "One"})
	want := []option.Option{{ID: "1", Name: "One"}, {ID: "2", Name: "Two"}, {ID: "10", Name: "Ten"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Invariants(t *testing.T) {
	payloads := []string{
		`[{"id":1,"name":"A"},{"id":2,"name":"a"},{"id":3,"name":" "},{"id":4,"label":"B"},{"id":5,"name":"UNKNOWN"}]`,
		`{"1":"X","2":"x","3":"Unknown","4":"","5":"Y"}`,
		`{"1":{"name":{"en":"P"}},"2":{"name":{"en":"p"}},"3":{"name":{}}}`,
		`{"status":"success","data":{"1":"Q","2":"R","3":"q"}}`,
	}
	for _, payload := range payloads {
		opts := option.FromJSON([]byte(payload))
		seen := map[string]bool{}
		for _, opt := range opts {
			if strings.TrimSpace(opt.Name) == "" || strings.EqualFold(opt.Name, option.UnknownName) {
				t.Fatalf("payload %s: invalid name in %#v", payload, opt)
			}
			key := strings.ToLower(opt.Name)
			if seen[key] {
				t.Fatalf("payload %s: duplicate name %q", payload, opt.Name)
			}
			seen[key] = true
		}
	}
}

func TestReconcile(t *testing.T) {
	opts := []option.Option{{ID: "7", Name: "Brahmin"}, {ID: "8", Name: "Nair"}}

	cases := []struct {
		value  string
		want   string
		wantOK bool
	}{
		{value: "7", want: "7", wantOK: true},
		{value: "brahmin", want: "7", wantOK: true},
		{value: " Nair ", want: "8", wantOK: true},
		{value: "Legacy free text", want: "Legacy free text", wantOK: false},
	}
	for _, tc := range cases {
		got, ok := option.Reconcile(opts, tc.value)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Reconcile(%q) = %q,%v; want %q,%v", tc.value, got, ok, tc.want, tc.wantOK)
		}
	}

	if label := option.Label(opts, "8"); label != "Nair" {
		t.Fatalf("expected label Nair, got %q", label)
	}
	if label := option.Label(opts, "99"); label != "99" {
		t.Fatalf("expected raw label passthrough, got %q", label)
	}
}

func TestResolver_SwallowsErrorsAndFallsBack(t *testing.T) {
	resolver := option.NewResolver()

	failing := func(context.Context) (any, error) { return nil, errors.New("network down") }
	got := resolver.Resolve(context.Background(), "countries", failing, option.DefaultCountry)
	if diff := cmp.Diff([]option.Option{option.DefaultCountry}, got); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}

	empty := func(context.Context) (any, error) { return []any{}, nil }
	if got := resolver.Resolve(context.Background(), "castes", empty); got != nil {
		t.Fatalf("expected nil without fallback, got %#v", got)
	}

	ok := func(context.Context) (any, error) {
		return []any{map[string]any{"id": "1", "name": "India"}}, nil
	}
	got = resolver.Resolve(context.Background(), "countries", ok, option.DefaultCountry)
	if diff := cmp.Diff([]option.Option{{ID: "1", Name: "India"}}, got); diff != "" {
		t.Fatalf("resolved mismatch (-want +got):\n%s", diff)
	}
}
