package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/umx/internal/audit"
	"github.com/desertthunder/umx/internal/services"
	"github.com/desertthunder/umx/internal/shared"
)

// cleanupPageSize is the page size used when listing remote users.
const cleanupPageSize = 100

// CleanupResult contains the counters for one cleanup run.
type CleanupResult struct {
	Listed  int // Remote users found
	Deleted int // Users successfully deleted
}

// CleanupEngine drives the bulk deletion of every remote user.
//
// Unlike the migration driver, cleanup fails fast: the first delete error
// aborts the entire run. Every outcome, success and failure alike, is written
// to the audit log.
type CleanupEngine struct {
	sink   services.Sink
	audit  *audit.Writer
	logger *log.Logger
}

// NewCleanupEngine creates a CleanupEngine with the provided sink and audit writer.
func NewCleanupEngine(sink services.Sink, auditLog *audit.Writer, logger *log.Logger) *CleanupEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CleanupEngine{sink: sink, audit: auditLog, logger: logger}
}

// Run lists all remote users and deletes each one sequentially.
func (e *CleanupEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*CleanupResult, error) {
	if e.sink == nil {
		return nil, fmt.Errorf("%w: sink not initialized", shared.ErrServiceUnavailable)
	}

	result := &CleanupResult{}

	users, err := e.listAll(ctx, progress)
	if err != nil {
		return result, err
	}
	result.Listed = len(users)

	for i, user := range users {
		sendProgress(progress, deleteUserUpdate(i+1, len(users), user.ID))

		deleted, err := e.sink.DeleteUser(ctx, user.ID)
		if err != nil {
			e.appendAudit(audit.EntryForError(user.ID, err))
			e.logger.Error("failed to delete user, aborting", "userId", user.ID, "err", err)
			return result, fmt.Errorf("%w: %s: %v", shared.ErrDeletionFailed, user.ID, err)
		}

		result.Deleted++
		e.appendAudit(audit.Entry{UserID: deleted.ID, Deleted: deleted.Deleted})
	}

	sendProgress(progress, doneUpdate(fmt.Sprintf("Deleted %d users", result.Deleted), result))
	return result, nil
}

// listAll pages through the provider's user list until an empty page.
func (e *CleanupEngine) listAll(ctx context.Context, progress chan<- ProgressUpdate) ([]services.RemoteUser, error) {
	var users []services.RemoteUser

	for {
		page, err := e.sink.ListUsers(ctx, cleanupPageSize, len(users))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list users: %v", shared.ErrAPIRequest, err)
		}
		if len(page) == 0 {
			return users, nil
		}

		users = append(users, page...)
		sendProgress(progress, listUsersUpdate(len(users)))
	}
}

func (e *CleanupEngine) appendAudit(entry audit.Entry) {
	if e.audit == nil {
		return
	}
	if err := e.audit.Append(entry); err != nil {
		e.logger.Error("failed to write audit entry", "userId", entry.UserID, "err", err)
	}
}
