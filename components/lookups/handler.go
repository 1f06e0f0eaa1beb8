package lookups

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message any    `json:"message,omitempty"`
}

func (c *Component) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(c.guard)

	r.Get("/profile/dropdowns", c.handleDropdowns)
	r.Get("/countries", c.handleRaw(func(cat Catalog, _ *http.Request) (json.RawMessage, bool) {
		return cat.Countries, true
	}))
	r.Get("/states/{country_id}", c.handleRaw(func(cat Catalog, r *http.Request) (json.RawMessage, bool) {
		return keyed(cat.States, chi.URLParam(r, "country_id"))
	}))
	r.Get("/cities/{state_id}", c.handleRaw(func(cat Catalog, r *http.Request) (json.RawMessage, bool) {
		return keyed(cat.Cities, chi.URLParam(r, "state_id"))
	}))
	r.Get("/castes/{religion_id}", c.handleRaw(func(cat Catalog, r *http.Request) (json.RawMessage, bool) {
		return keyed(cat.Castes, chi.URLParam(r, "religion_id"))
	}))
	r.Get("/profile", c.handleProfile)
	r.Post("/profile/{step}", c.handleSubmit)
	r.Post("/profile/{step}/skip", c.handleSkip)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func (c *Component) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.opts.Guard != nil {
			if err := c.opts.Guard(r); err != nil {
				code := http.StatusForbidden
				var httpErr HTTPError
				if errors.As(err, &httpErr) && httpErr != nil {
					code = httpErr.StatusCode()
				}
				writeError(w, code, http.StatusText(code))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Component) handleDropdowns(w http.ResponseWriter, _ *http.Request) {
	cat := c.catalog()
	writeJSON(w, http.StatusOK, envelope{
		Status: "success",
		Data: map[string]json.RawMessage{
			"religions":        orEmpty(cat.Religions),
			"marital_statuses": orEmpty(cat.MaritalStatuses),
			"countries":        orEmpty(cat.Countries),
		},
	})
}

func (c *Component) handleRaw(pick func(Catalog, *http.Request) (json.RawMessage, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := pick(c.catalog(), r)
		if !ok {
			payload = json.RawMessage("[]")
		}
		writeJSON(w, http.StatusOK, envelope{Status: "success", Data: orEmpty(payload)})
	}
}

func (c *Component) handleProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: c.Profile()})
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	step, ok := c.step(w, r)
	if !ok {
		return
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if messages, rejected := c.opts.Reject[step.Slug()]; rejected {
		c.opts.Logger.Info("rejecting step submission", zap.String("step", step.Slug()))
		writeJSON(w, http.StatusUnprocessableEntity, envelope{
			Status:  "error",
			Message: map[string][]string{"error": messages},
		})
		return
	}

	c.record(Submission{Step: step, Body: body})
	c.opts.Logger.Debug("step submitted", zap.String("step", step.Slug()))
	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: "Profile updated successfully"})
}

func (c *Component) handleSkip(w http.ResponseWriter, r *http.Request) {
	step, ok := c.step(w, r)
	if !ok {
		return
	}
	c.record(Submission{Step: step, Skipped: true})
	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: "Step skipped"})
}

func (c *Component) step(w http.ResponseWriter, r *http.Request) (profile.Step, bool) {
	raw := chi.URLParam(r, "step")
	step, err := profile.ParseStep(raw)
	if err != nil || step.Slug() != strings.ToLower(raw) {
		writeError(w, http.StatusNotFound, "Unknown step")
		return 0, false
	}
	return step, true
}

func keyed(lists map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	payload, ok := lists[key]
	return payload, ok
}

func orEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("[]")
	}
	return raw
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
