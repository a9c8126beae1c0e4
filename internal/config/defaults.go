package config

import "time"

// Backend names accepted by storage.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultConfigPath        = "~/.config/moviedb/config.toml"
	projectConfigName        = "moviedb.toml"
	defaultBackend           = BackendJSON
	defaultJSONPath          = "~/.local/share/moviedb/data.json"
	defaultSQLitePath        = "~/.local/share/moviedb/movies.db"
	defaultOMDbBaseURL       = "https://www.omdbapi.com/"
	defaultOMDbTimeout       = 10
	defaultOMDbRetryAttempts = 3
	defaultOMDbRate          = 5
	defaultHistogramPath     = "ratings.png"
	defaultWebsitePath       = "index.html"
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend:    defaultBackend,
			JSONPath:   defaultJSONPath,
			SQLitePath: defaultSQLitePath,
			SeedMemory: true,
		},
		OMDb: OMDb{
			BaseURL:           defaultOMDbBaseURL,
			TimeoutSeconds:    defaultOMDbTimeout,
			RetryAttempts:     defaultOMDbRetryAttempts,
			RequestsPerSecond: defaultOMDbRate,
		},
		Output: Output{
			HistogramPath: defaultHistogramPath,
			WebsitePath:   defaultWebsitePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// OMDbTimeout returns the per-request timeout as a duration.
func (c *Config) OMDbTimeout() time.Duration {
	return time.Duration(c.OMDb.TimeoutSeconds) * time.Second
}
