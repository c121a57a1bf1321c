// package services defines interface Sink for the remote identity provider API
package services

import (
	"context"

	"github.com/desertthunder/umx/internal/models"
)

// Sink defines the interface for the remote user store that migration targets.
// The production implementation is [ClerkService]; tests substitute stubs.
type Sink interface {
	// CreateUser submits one user to the provider.
	// Returns the created remote user or a typed provider error.
	CreateUser(ctx context.Context, params CreateUserParams) (*RemoteUser, error)

	// DeleteUser removes a remote user by its provider-side ID.
	DeleteUser(ctx context.Context, userID string) (*DeletedUser, error)

	// ListUsers retrieves a page of remote users. Offset-based pagination;
	// an empty page signals the end of the list.
	ListUsers(ctx context.Context, limit, offset int) ([]RemoteUser, error)

	// Name returns the provider name (e.g., "Clerk")
	Name() string
}

// CreateUserParams carries one validated record in provider terms.
//
// Exactly one of the password fields is meaningful: a non-empty PasswordDigest
// is submitted as a pre-hashed credential tagged with PasswordHasher, while an
// empty digest requests a provider-side password-requirement waiver instead.
type CreateUserParams struct {
	ExternalID   string
	EmailAddress string
	FirstName    string
	LastName     string
	PhoneNumbers []string

	PasswordDigest string
	PasswordHasher models.PasswordHasher
}

// RemoteUser represents a user as the provider stores it.
type RemoteUser struct {
	ID             string
	ExternalID     string
	EmailAddresses []string
	FirstName      string
	LastName       string
}

// DeletedUser is the provider's deletion confirmation.
type DeletedUser struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// ParamsForRecord converts a validated export record into provider parameters,
// applying the configured hasher tag only when a digest is present.
func ParamsForRecord(record models.UserRecord, hasher models.PasswordHasher) CreateUserParams {
	params := CreateUserParams{
		ExternalID:   record.UserID,
		EmailAddress: record.Email,
		FirstName:    record.FirstName,
		LastName:     record.LastName,
		PhoneNumbers: record.PhoneNumber,
	}

	if record.Password != "" {
		params.PasswordDigest = record.Password
		params.PasswordHasher = hasher
	}

	return params
}
