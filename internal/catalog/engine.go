package catalog

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"moviedb/internal/logging"
)

const (
	// fuzzyLimit caps how many fuzzy candidates Search returns.
	fuzzyLimit = 5
	// fuzzyCutoff is the minimum similarity a fuzzy candidate needs.
	fuzzyCutoff = 0.5
)

// Engine runs queries and validated mutations against a Store.
type Engine struct {
	store  Store
	lookup Lookup
	logger *slog.Logger
	intn   func(n int) int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for mutation and lookup events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logging.NewComponentLogger(logger, "catalog")
		}
	}
}

// WithLookup enables AddFromLookup using the supplied metadata source.
func WithLookup(lookup Lookup) Option {
	return func(e *Engine) {
		e.lookup = lookup
	}
}

// WithRand overrides the random source used by Random.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.intn = r.IntN
		}
	}
}

// New creates an Engine over store.
func New(store Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("catalog engine requires a store")
	}
	e := &Engine{
		store:  store,
		logger: logging.NewComponentLogger(nil, "catalog"),
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// HasLookup reports whether AddFromLookup is available.
func (e *Engine) HasLookup() bool {
	return e.lookup != nil
}

// List returns a fresh snapshot of the collection in store order.
func (e *Engine) List(ctx context.Context) ([]Movie, error) {
	return e.snapshot(ctx)
}

func (e *Engine) snapshot(ctx context.Context) ([]Movie, error) {
	movies, err := e.store.List(ensureContext(ctx))
	if err != nil {
		return nil, Wrap(nil, "list", "read collection", err)
	}
	return movies, nil
}

func (e *Engine) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, e.logger)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
