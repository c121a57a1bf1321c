package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Submit Phase = iota
	Retry
	Migrated
	Duplicate
	Skipped
	ListUsers
	DeleteUser
	Done
)

func (p Phase) String() string {
	switch p {
	case Submit:
		return "submit"
	case Retry:
		return "retry"
	case Migrated:
		return "migrated"
	case Duplicate:
		return "duplicate"
	case Skipped:
		return "skipped"
	case ListUsers:
		return "list_users"
	case DeleteUser:
		return "delete_user"
	case Done:
		return "done"
	default:
		return ""
	}
}

func submitUpdate(step, total int, userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Submit,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Migrating %s...", step, total, userID),
	}
}

func retryUpdate(step, total int, userID string, attempt int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Retry,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Rate limited on %s, cooling down (attempt %d)...", step, total, userID, attempt),
	}
}

func migratedUpdate(step, total int, userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Migrated,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, userID),
	}
}

func duplicateUpdate(step, total int, userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Duplicate,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ≡ %s already exists", step, total, userID),
	}
}

func skippedUpdate(step, total int, userID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Skipped,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, userID, err),
	}
}

func listUsersUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListUsers,
		Message: fmt.Sprintf("Fetched %d users...", count),
	}
}

func deleteUserUpdate(step, total int, userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteUser,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Deleting %s...", step, total, userID),
	}
}

func doneUpdate(message string, data any) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Message: message,
		Data:    data,
	}
}
