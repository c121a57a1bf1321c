package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError is one structured error object from the provider's error payload.
type APIError struct {
	Code        string `json:"code,omitempty"`
	Message     string `json:"message,omitempty"`
	LongMessage string `json:"long_message,omitempty"`
}

// ClerkError is a non-2xx response from the Clerk Backend API, carrying the
// HTTP status, the decoded error objects, and the rate-limit cooldown hint
// when the provider sent a Retry-After header.
type ClerkError struct {
	Status     int
	RetryAfter time.Duration
	Errors     []APIError
	TraceID    string
}

func (e *ClerkError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("clerk: status %d", e.Status)
	}

	msgs := make([]string, len(e.Errors))
	for i, apiErr := range e.Errors {
		msgs[i] = apiErr.Message
	}
	return fmt.Sprintf("clerk: status %d: %s", e.Status, strings.Join(msgs, "; "))
}

// IsConflict reports whether err is a provider 422 response, which Clerk
// returns for records that already exist (duplicate external ID or email).
func IsConflict(err error) bool {
	var clerkErr *ClerkError
	return errors.As(err, &clerkErr) && clerkErr.Status == http.StatusUnprocessableEntity
}

// IsRateLimited reports whether err is a provider 429 response.
func IsRateLimited(err error) bool {
	var clerkErr *ClerkError
	return errors.As(err, &clerkErr) && clerkErr.Status == http.StatusTooManyRequests
}
