package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateOMDb(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (want json, sqlite, or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendJSON && c.Storage.JSONPath == "" {
		return errors.New("storage.json_path must be set for the json backend")
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		return errors.New("storage.sqlite_path must be set for the sqlite backend")
	}
	return nil
}

func (c *Config) validateOMDb() error {
	if c.OMDb.TimeoutSeconds <= 0 {
		return errors.New("omdb.timeout_seconds must be positive")
	}
	if c.OMDb.RetryAttempts < 0 {
		return errors.New("omdb.retry_attempts must be zero or positive")
	}
	if c.OMDb.RequestsPerSecond < 0 {
		return errors.New("omdb.requests_per_second must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
