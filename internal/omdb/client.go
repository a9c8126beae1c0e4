package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"moviedb/internal/catalog"
	"moviedb/internal/logging"
)

const (
	defaultHTTPTimeout    = 10 * time.Second
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryMaxDelay  = 5 * time.Second
	notAvailable          = "N/A"
)

// ErrNotFound indicates OMDb answered with Response=False.
var ErrNotFound = errors.New("omdb: movie not found")

// Movie is the normalized subset of an OMDb title record.
type Movie struct {
	Title     string
	Year      int
	Rating    float64
	PosterURL string
}

type titleResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	IMDBRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
}

// Client provides title lookups against the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	retries        int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration
	sleep          func(context.Context, time.Duration) error
}

var _ catalog.Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithRetry sets how many times a transient failure is retried and the
// backoff bounds between attempts. Zero retries disables retrying.
func WithRetry(retries int, baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.retries = retries
		}
		if baseDelay >= 0 {
			c.retryBaseDelay = baseDelay
		}
		if maxDelay > 0 {
			c.retryMaxDelay = maxDelay
		}
	}
}

// WithRateLimit paces requests to perSecond. A non-positive value disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger attaches a logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "omdb")
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/") + "/",
		httpClient:     &http.Client{Timeout: defaultHTTPTimeout},
		logger:         logging.NewComponentLogger(nil, "omdb"),
		retryBaseDelay: defaultRetryBaseDelay,
		retryMaxDelay:  defaultRetryMaxDelay,
		sleep:          sleepWithContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup fetches title and adapts the result to a catalog record.
func (c *Client) Lookup(ctx context.Context, title string) (catalog.Movie, error) {
	movie, err := c.FetchMovie(ctx, title)
	if err != nil {
		return catalog.Movie{}, err
	}
	return catalog.Movie{
		Title:     movie.Title,
		Year:      movie.Year,
		Rating:    movie.Rating,
		PosterURL: movie.PosterURL,
	}, nil
}

// FetchMovie looks up a single title, retrying transient failures.
func (c *Client) FetchMovie(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}

	attempts := c.retries + 1
	for attempt := 1; ; attempt++ {
		movie, err := c.fetchOnce(ctx, title)
		if err == nil {
			return movie, nil
		}
		if ctx.Err() != nil || !transient(err) {
			return nil, err
		}
		if attempt >= attempts {
			return nil, fmt.Errorf("omdb lookup: giving up after %d attempts: %w", attempts, err)
		}
		delay := backoff(attempt, c.retryBaseDelay, c.retryMaxDelay)
		logging.WithContext(ctx, c.logger).Debug("retrying omdb lookup",
			logging.String("title", title),
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
			logging.Error(err))
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *Client) fetchOnce(ctx context.Context, title string) (*Movie, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("omdb rate limit: %w", err)
		}
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("t", title)
	params.Set("apikey", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	var payload titleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(payload.Response, "True") {
		msg := strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = "no result"
		}
		return nil, fmt.Errorf("%w: %q: %s", ErrNotFound, title, msg)
	}
	return normalize(payload)
}

func normalize(payload titleResponse) (*Movie, error) {
	rating, err := parseRating(payload.IMDBRating)
	if err != nil {
		return nil, err
	}
	poster := strings.TrimSpace(payload.Poster)
	if poster == notAvailable {
		poster = ""
	}
	return &Movie{
		Title:     strings.TrimSpace(payload.Title),
		Year:      parseYear(payload.Year),
		Rating:    rating,
		PosterURL: poster,
	}, nil
}

func parseRating(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == notAvailable {
		return 0, nil
	}
	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("decode imdbRating %q: %w", value, err)
	}
	return rating, nil
}

// parseYear reads the leading four digits so ranges like "2010–2013" resolve
// to their first year. Anything else yields 0.
func parseYear(value string) int {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return 0
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return 0
	}
	return year
}
