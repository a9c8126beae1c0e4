package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"moviedb/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults to the memory backend without seeding and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Storage.Backend = config.BackendMemory
	cfgVal.Storage.SeedMemory = false
	cfgVal.Storage.JSONPath = filepath.Join(base, "data", "data.json")
	cfgVal.Storage.SQLitePath = filepath.Join(base, "data", "movies.db")
	cfgVal.Output.HistogramPath = filepath.Join(base, "out", "ratings.png")
	cfgVal.Output.WebsitePath = filepath.Join(base, "out", "index.html")
	cfgVal.OMDb.APIKey = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithBackend selects the storage backend on the test config.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Backend = backend
	}
}

// WithSeed enables seeding of the memory backend.
func WithSeed() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.SeedMemory = true
	}
}

// WithOMDb points lookups at baseURL using key.
func WithOMDb(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.BaseURL = baseURL
		b.cfg.OMDb.APIKey = key
		b.cfg.OMDb.RetryAttempts = 0
		b.cfg.OMDb.RequestsPerSecond = 0
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Storage.JSONPath))
}

// WriteConfig serializes cfg as TOML to path so it can be passed to --config.
func WriteConfig(t testing.TB, cfg *config.Config, path string) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
