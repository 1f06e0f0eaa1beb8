package lookups

import (
	"net/http"

	"go.uber.org/zap"
)

// GuardFunc authorises a request before it is handled. Returning a
// StatusError selects the response code.
type GuardFunc func(r *http.Request) error

type Options struct {
	Catalog *Catalog
	Guard   GuardFunc
	// Reject maps step slugs to the messages returned when that step is
	// submitted. Rejected submissions are answered with an error envelope.
	Reject map[string][]string
	Logger *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Reject != nil {
		reject := make(map[string][]string, len(opts.Reject))
		for step, messages := range opts.Reject {
			reject[step] = append([]string(nil), messages...)
		}
		opts.Reject = reject
	}
	return opts
}

func WithCatalog(catalog Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		c := catalog.clone()
		o.Catalog = &c
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithBearerToken rejects requests that do not carry token.
func WithBearerToken(token string) OptionFn {
	return WithGuard(func(r *http.Request) error {
		if r.Header.Get("Authorization") != "Bearer "+token {
			return StatusError{Code: http.StatusUnauthorized}
		}
		return nil
	})
}

// WithRejectedStep makes submissions of step fail with messages.
func WithRejectedStep(step string, messages ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if o.Reject == nil {
			o.Reject = map[string][]string{}
		}
		o.Reject[step] = append([]string(nil), messages...)
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
