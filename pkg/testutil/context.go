package testutil

import (
	"net/http"
	"time"

	"maintain/pkg/requestcontext"
)

// WithSubject adds an authenticated subject to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithSubject(req.Context(), subject))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
