package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/umx/internal/audit"
	"github.com/desertthunder/umx/internal/services"
	"github.com/desertthunder/umx/internal/shared"
	tu "github.com/desertthunder/umx/internal/testing"
)

// pagedList returns a ListFn serving the given users in pages.
func pagedList(users []services.RemoteUser) func(ctx context.Context, limit, offset int) ([]services.RemoteUser, error) {
	return func(ctx context.Context, limit, offset int) ([]services.RemoteUser, error) {
		if offset >= len(users) {
			return nil, nil
		}
		end := offset + limit
		if end > len(users) {
			end = len(users)
		}
		return users[offset:end], nil
	}
}

func remoteUsers(n int) []services.RemoteUser {
	users := make([]services.RemoteUser, n)
	for i := range users {
		users[i] = services.RemoteUser{ID: fmt.Sprintf("user_%d", i)}
	}
	return users
}

func newCleanupAudit(t *testing.T) *audit.Writer {
	t.Helper()
	w, err := audit.NewWriter(t.TempDir(), "cleanup-log", time.Now())
	if err != nil {
		t.Fatalf("failed to create audit writer: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestCleanupEngine(t *testing.T) {
	t.Run("Nil Sink", func(t *testing.T) {
		engine := NewCleanupEngine(nil, nil, nil)

		if _, err := engine.Run(context.Background(), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Deletes Every User And Logs Successes", func(t *testing.T) {
		sink := &tu.MockSink{ListFn: pagedList(remoteUsers(3))}
		auditLog := newCleanupAudit(t)
		engine := NewCleanupEngine(sink, auditLog, nil)

		result, err := engine.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Listed != 3 || result.Deleted != 3 {
			t.Errorf("unexpected counters: %+v", result)
		}
		if len(sink.Deletes) != 3 {
			t.Errorf("expected 3 delete calls, got %d", len(sink.Deletes))
		}

		logged := tu.MustReadFile(t, auditLog.Path())
		for i := 0; i < 3; i++ {
			if !strings.Contains(logged, fmt.Sprintf(`"userId": "user_%d"`, i)) {
				t.Errorf("expected audit entry for user_%d, got: %s", i, logged)
			}
		}
		if !strings.Contains(logged, `"deleted": true`) {
			t.Errorf("expected deletion confirmations in audit log, got: %s", logged)
		}
	})

	t.Run("Pages Through Long Lists", func(t *testing.T) {
		sink := &tu.MockSink{ListFn: pagedList(remoteUsers(cleanupPageSize + 7))}
		engine := NewCleanupEngine(sink, nil, nil)

		result, err := engine.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Listed != cleanupPageSize+7 || result.Deleted != cleanupPageSize+7 {
			t.Errorf("unexpected counters: %+v", result)
		}
	})

	t.Run("Aborts On First Deletion Error", func(t *testing.T) {
		sink := &tu.MockSink{
			ListFn: pagedList(remoteUsers(3)),
			DeleteFn: func(ctx context.Context, userID string) (*services.DeletedUser, error) {
				if userID == "user_1" {
					return nil, &services.ClerkError{Status: http.StatusInternalServerError}
				}
				return &services.DeletedUser{ID: userID, Deleted: true}, nil
			},
		}

		auditLog := newCleanupAudit(t)
		engine := NewCleanupEngine(sink, auditLog, nil)

		result, err := engine.Run(context.Background(), nil)
		if !errors.Is(err, shared.ErrDeletionFailed) {
			t.Fatalf("expected ErrDeletionFailed, got %v", err)
		}

		if result.Deleted != 1 {
			t.Errorf("expected 1 deletion before abort, got %d", result.Deleted)
		}
		if len(sink.Deletes) != 2 {
			t.Errorf("expected abort after second delete, got %d calls", len(sink.Deletes))
		}

		logged := tu.MustReadFile(t, auditLog.Path())
		if !strings.Contains(logged, `"userId": "user_1"`) {
			t.Errorf("expected failure entry for user_1, got: %s", logged)
		}
		if !strings.Contains(logged, `"status": 500`) {
			t.Errorf("expected provider status in failure entry, got: %s", logged)
		}
	})

	t.Run("List Failure Aborts Before Any Deletion", func(t *testing.T) {
		sink := &tu.MockSink{
			ListFn: func(ctx context.Context, limit, offset int) ([]services.RemoteUser, error) {
				return nil, &services.ClerkError{Status: http.StatusUnauthorized}
			},
		}
		engine := NewCleanupEngine(sink, nil, nil)

		_, err := engine.Run(context.Background(), nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if len(sink.Deletes) != 0 {
			t.Errorf("expected no deletions, got %d", len(sink.Deletes))
		}
	})
}
