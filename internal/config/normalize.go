package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeOMDb()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeStorage() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	if strings.TrimSpace(c.Storage.JSONPath) == "" {
		c.Storage.JSONPath = defaultJSONPath
	}
	if strings.TrimSpace(c.Storage.SQLitePath) == "" {
		c.Storage.SQLitePath = defaultSQLitePath
	}
	var err error
	if c.Storage.JSONPath, err = expandPath(strings.TrimSpace(c.Storage.JSONPath)); err != nil {
		return fmt.Errorf("storage.json_path: %w", err)
	}
	if c.Storage.SQLitePath, err = expandPath(strings.TrimSpace(c.Storage.SQLitePath)); err != nil {
		return fmt.Errorf("storage.sqlite_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	if c.OMDb.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDb.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
}

func (c *Config) normalizeOutput() error {
	c.Output.HistogramPath = strings.TrimSpace(c.Output.HistogramPath)
	if c.Output.HistogramPath == "" {
		c.Output.HistogramPath = defaultHistogramPath
	}
	c.Output.WebsitePath = strings.TrimSpace(c.Output.WebsitePath)
	if c.Output.WebsitePath == "" {
		c.Output.WebsitePath = defaultWebsitePath
	}
	var err error
	if c.Output.HistogramPath, err = expandPath(c.Output.HistogramPath); err != nil {
		return fmt.Errorf("output.histogram_path: %w", err)
	}
	if c.Output.WebsitePath, err = expandPath(c.Output.WebsitePath); err != nil {
		return fmt.Errorf("output.website_path: %w", err)
	}
	if c.Output.WebsiteTemplate, err = expandPath(strings.TrimSpace(c.Output.WebsiteTemplate)); err != nil {
		return fmt.Errorf("output.website_template: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
