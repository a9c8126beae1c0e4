package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"moviedb/internal/catalog"
	"moviedb/internal/logging"
)

// Store is a catalog.Store backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ catalog.Store = (*Store)(nil)

const (
	sqliteBusyCode             = 5
	sqliteConstraintUniqueCode = 2067
	busyRetryAttempts          = 5
	busyRetryInitialBackoff    = 10 * time.Millisecond
	busyRetryMaxBackoff        = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteConstraintUniqueCode {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the movie database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlstore: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, logger: logging.NewComponentLogger(logger, "sqlstore")}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) List(ctx context.Context) ([]catalog.Movie, error) {
	ctx = ensureContext(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT title, year, rating, poster_url FROM movies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []catalog.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func (s *Store) Add(ctx context.Context, movie catalog.Movie) error {
	_, err := s.execWithRetry(ctx,
		"INSERT INTO movies (title, year, rating, poster_url) VALUES (?, ?, ?, ?)",
		movie.Title, movie.Year, movie.Rating, nullableString(movie.PosterURL),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Wrap(catalog.ErrDuplicateTitle, "add", fmt.Sprintf("%q already exists", movie.Title), nil)
		}
		return fmt.Errorf("insert movie: %w", err)
	}
	s.logger.Debug("movie added", logging.String("title", movie.Title))
	return nil
}

func (s *Store) Delete(ctx context.Context, title string) error {
	res, err := s.execWithRetry(ctx, "DELETE FROM movies WHERE title = ?", title)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if err := requireAffected(res, "delete", title); err != nil {
		return err
	}
	s.logger.Debug("movie deleted", logging.String("title", title))
	return nil
}

func (s *Store) Update(ctx context.Context, title string, rating float64, year int) error {
	res, err := s.execWithRetry(ctx, "UPDATE movies SET rating = ?, year = ? WHERE title = ?", rating, year, title)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if err := requireAffected(res, "update", title); err != nil {
		return err
	}
	s.logger.Debug("movie updated",
		logging.String("title", title),
		logging.Float64("rating", rating),
		logging.Int("year", year))
	return nil
}

func requireAffected(res sql.Result, operation, title string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return catalog.Wrap(catalog.ErrNotFound, operation, fmt.Sprintf("%q", title), nil)
	}
	return nil
}

func scanMovie(scanner interface{ Scan(dest ...any) error }) (catalog.Movie, error) {
	var (
		title     string
		year      int
		rating    float64
		posterURL sql.NullString
	)
	if err := scanner.Scan(&title, &year, &rating, &posterURL); err != nil {
		return catalog.Movie{}, fmt.Errorf("scan movie: %w", err)
	}
	return catalog.Movie{
		Title:     title,
		Year:      year,
		Rating:    rating,
		PosterURL: posterURL.String,
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
