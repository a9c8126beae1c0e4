package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"moviedb/internal/catalog"
	"moviedb/internal/config"
	"moviedb/internal/filestore"
	"moviedb/internal/logging"
	"moviedb/internal/omdb"
	"moviedb/internal/sqlstore"
)

const (
	lookupBaseDelay = 500 * time.Millisecond
	lookupMaxDelay  = 5 * time.Second
)

// session bundles the per-invocation engine with the resources backing it.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	engine  *catalog.Engine
	closer  func() error
	baseCtx context.Context
}

func openSession(cfg *config.Config) (*session, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{catalog.WithLogger(logger)}
	if cfg.HasOMDbKey() {
		client, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL,
			omdb.WithTimeout(cfg.OMDbTimeout()),
			omdb.WithRetry(cfg.OMDb.RetryAttempts, lookupBaseDelay, lookupMaxDelay),
			omdb.WithRateLimit(cfg.OMDb.RequestsPerSecond),
			omdb.WithLogger(logger),
		)
		if err != nil {
			_ = closer()
			return nil, fmt.Errorf("init omdb client: %w", err)
		}
		opts = append(opts, catalog.WithLookup(client))
	}

	engine, err := catalog.New(store, opts...)
	if err != nil {
		_ = closer()
		return nil, err
	}

	logger.Debug("session opened",
		logging.String("backend", cfg.Storage.Backend),
		logging.String("data_path", cfg.DataPath()),
		logging.Bool("lookup", engine.HasLookup()))

	return &session{
		cfg:     cfg,
		logger:  logger,
		engine:  engine,
		closer:  closer,
		baseCtx: context.Background(),
	}, nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (catalog.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		var seed []catalog.Movie
		if cfg.Storage.SeedMemory {
			seed = catalog.SeedMovies()
		}
		return catalog.NewMemoryStore(seed...), noop, nil
	case config.BackendJSON:
		store, err := filestore.Open(cfg.Storage.JSONPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open json store: %w", err)
		}
		return store, store.Close, nil
	case config.BackendSQLite:
		store, err := sqlstore.Open(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// requestContext tags one user action with a fresh request id.
func (s *session) requestContext() context.Context {
	return logging.WithRequestID(s.baseCtx, uuid.NewString())
}

func (s *session) close() {
	if s.closer == nil {
		return
	}
	if err := s.closer(); err != nil {
		s.logger.Warn("store close failed",
			logging.String(logging.FieldEventType, "store_close_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the data file permissions"),
			logging.String(logging.FieldImpact, "the data file lock may linger until the process exits"))
	}
}
