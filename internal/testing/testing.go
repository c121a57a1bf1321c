// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/umx/internal/services"
)

// MockSink is a scriptable test double for [services.Sink].
//
// CreateFn, DeleteFn, and ListFn override individual operations; unset
// functions succeed with zero values. Calls records every CreateUser
// invocation in order.
type MockSink struct {
	CreateFn func(ctx context.Context, params services.CreateUserParams) (*services.RemoteUser, error)
	DeleteFn func(ctx context.Context, userID string) (*services.DeletedUser, error)
	ListFn   func(ctx context.Context, limit, offset int) ([]services.RemoteUser, error)

	Calls   []services.CreateUserParams
	Deletes []string
}

func (m *MockSink) CreateUser(ctx context.Context, params services.CreateUserParams) (*services.RemoteUser, error) {
	m.Calls = append(m.Calls, params)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return &services.RemoteUser{ID: "user_" + params.ExternalID, ExternalID: params.ExternalID}, nil
}

func (m *MockSink) DeleteUser(ctx context.Context, userID string) (*services.DeletedUser, error) {
	m.Deletes = append(m.Deletes, userID)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID)
	}
	return &services.DeletedUser{ID: userID, Object: "user", Deleted: true}, nil
}

func (m *MockSink) ListUsers(ctx context.Context, limit, offset int) ([]services.RemoteUser, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockSink) Name() string { return "mock" }

// ConflictError returns a provider error shaped like Clerk's 422 duplicate response.
func ConflictError() *services.ClerkError {
	return &services.ClerkError{
		Status: http.StatusUnprocessableEntity,
		Errors: []services.APIError{{
			Code:    "form_identifier_exists",
			Message: "That email address is taken. Please try another.",
		}},
	}
}

// RateLimitError returns a provider error shaped like Clerk's 429 response.
func RateLimitError() *services.ClerkError {
	return &services.ClerkError{
		Status: http.StatusTooManyRequests,
		Errors: []services.APIError{{Code: "rate_limit_exceeded", Message: "Too many requests"}},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
