package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviedb/internal/catalog"
	"moviedb/internal/config"
	"moviedb/internal/testsupport"
)

type cliEnv struct {
	baseDir     string
	configPath  string
	jsonPath    string
	histogram   string
	websitePath string
}

type envSettings struct {
	backend  string
	seed     bool
	omdbURL  string
	omdbKey  string
	template string
}

type envOption func(*envSettings)

func withBackend(backend string) envOption {
	return func(s *envSettings) { s.backend = backend }
}

func withoutSeed() envOption {
	return func(s *envSettings) { s.seed = false }
}

func withOMDb(url, key string) envOption {
	return func(s *envSettings) {
		s.omdbURL = url
		s.omdbKey = key
	}
}

func withTemplate(path string) envOption {
	return func(s *envSettings) { s.template = path }
}

// setupCLI writes a config file under a temp home. The default is a seeded
// memory backend with OMDb lookups disabled.
func setupCLI(t *testing.T, opts ...envOption) *cliEnv {
	t.Helper()

	settings := envSettings{backend: config.BackendMemory, seed: true}
	for _, opt := range opts {
		opt(&settings)
	}

	cfgOpts := []testsupport.ConfigOption{testsupport.WithBackend(settings.backend)}
	if settings.seed {
		cfgOpts = append(cfgOpts, testsupport.WithSeed())
	}
	if settings.omdbKey != "" {
		cfgOpts = append(cfgOpts, testsupport.WithOMDb(settings.omdbURL, settings.omdbKey))
	}
	cfg := testsupport.NewConfig(t, cfgOpts...)
	cfg.Output.WebsiteTemplate = settings.template
	cfg.Logging.Level = "error"

	base := testsupport.BaseDir(cfg)
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("NO_COLOR", "1")

	env := &cliEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "moviedb.toml"),
		jsonPath:    cfg.Storage.JSONPath,
		histogram:   cfg.Output.HistogramPath,
		websitePath: cfg.Output.WebsitePath,
	}
	testsupport.WriteConfig(t, cfg, env.configPath)
	return env
}

func runCLI(t *testing.T, env *cliEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func listJSON(t *testing.T, env *cliEnv, extra ...string) []catalog.Movie {
	t.Helper()
	args := append(append([]string{}, extra...), "--json", "list")
	out, _, err := runCLI(t, env, "", args...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var movies []catalog.Movie
	if err := json.Unmarshal([]byte(out), &movies); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	return movies
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
