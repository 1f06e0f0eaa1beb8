package option

import (
	"context"

	"go.uber.org/zap"
)

// FetchFunc retrieves a raw option payload.
type FetchFunc func(ctx context.Context) (any, error)

// Resolver fetches option payloads and normalises them, swallowing failures.
type Resolver struct {
	logger *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger routes fetch failures to logger.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve runs fetch and normalises its result. Errors and empty results are
// logged and replaced by fallback (nil when no fallback is given); Resolve
// itself never fails.
func (r *Resolver) Resolve(ctx context.Context, name string, fetch FetchFunc, fallback ...Option) []Option {
	logger := zap.NewNop()
	if r != nil && r.logger != nil {
		logger = r.logger
	}
	if fetch == nil {
		return cloneOptions(fallback)
	}

	payload, err := fetch(ctx)
	if err != nil {
		logger.Warn("option list fetch failed", zap.String("list", name), zap.Error(err))
		return cloneOptions(fallback)
	}

	opts := Normalize(payload)
	if len(opts) == 0 {
		if len(fallback) > 0 {
			logger.Debug("option list empty, using fallback", zap.String("list", name))
		}
		return cloneOptions(fallback)
	}
	return opts
}

func cloneOptions(opts []Option) []Option {
	if len(opts) == 0 {
		return nil
	}
	return append([]Option(nil), opts...)
}
