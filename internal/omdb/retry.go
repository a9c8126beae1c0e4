package omdb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// statusError reports a non-200 response from the API.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	msg := fmt.Sprintf("omdb returned %d %s", e.code, http.StatusText(e.code))
	if e.body != "" {
		msg += ": " + e.body
	}
	return msg
}

// transient reports whether a failed attempt is worth repeating: timeouts,
// throttling, server errors, and transport failures. Lookups that the API
// answered with "not found" and cancelled contexts are final. Client timeouts
// fall through to the net.Error check; FetchMovie stops on the caller's own
// deadline.
func transient(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusRequestTimeout ||
			se.code == http.StatusTooManyRequests ||
			se.code >= http.StatusInternalServerError
	}
	// *url.Error implements net.Error, so this covers dial and read failures.
	var ne net.Error
	return errors.As(err, &ne)
}

// backoff returns the wait before retry number n (1-based): base, 2*base,
// 4*base, ... capped at max.
func backoff(n int, base, max time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base
	for ; n > 1 && d < max; n-- {
		d *= 2
	}
	return min(d, max)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
