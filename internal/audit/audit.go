// package audit implements the per-run append-only outcome log.
//
// Each run opens its own file named with an ISO-timestamp suffix. Entries are
// written as a newline followed by pretty-printed JSON; the file is never read
// back by the tool and exists for the operator.
package audit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/umx/internal/services"
	"github.com/desertthunder/umx/internal/shared"
)

// Entry is one terminal outcome record. UserID is always present; the
// remaining fields carry the provider error payload or the deletion
// confirmation, whichever applies.
type Entry struct {
	UserID  string              `json:"userId"`
	Status  int                 `json:"status,omitempty"`
	Errors  []services.APIError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
	Deleted bool                `json:"deleted,omitempty"`
}

// EntryForError builds an Entry from a per-record failure, flattening a
// provider error into its status and error objects when err is one.
func EntryForError(userID string, err error) Entry {
	entry := Entry{UserID: userID}

	var clerkErr *services.ClerkError
	if errors.As(err, &clerkErr) {
		entry.Status = clerkErr.Status
		entry.Errors = clerkErr.Errors
		return entry
	}

	entry.Error = err.Error()
	return entry
}

// Writer appends outcome entries to a single run-scoped file.
// Owned by one driver for the duration of a run; not safe for concurrent use.
type Writer struct {
	file *os.File
	path string
}

// NewWriter creates the audit log file for one run inside dir, named
// <prefix>-<RFC3339 timestamp>.json.
func NewWriter(dir, prefix string, start time.Time) (*Writer, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", prefix, start.UTC().Format(time.RFC3339))
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit log: %w", err)
	}

	return &Writer{file: file, path: path}, nil
}

// Path returns the audit log file path.
func (w *Writer) Path() string { return w.path }

// Append writes one entry as a newline followed by pretty-printed JSON.
func (w *Writer) Append(entry Entry) error {
	data, err := shared.MarshalJSON(entry, true)
	if err != nil {
		return err
	}

	if _, err := w.file.Write(append([]byte("\n"), data...)); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// Close releases the underlying file handle.
func (w *Writer) Close() error {
	return w.file.Close()
}
