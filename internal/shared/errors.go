package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Safety guard errors
	ErrProductionKey    = fmt.Errorf("production credential not permitted")
	ErrDevInstanceGuard = fmt.Errorf("development credential requires IMPORT_TO_DEV_INSTANCE=true")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrUserExists         = fmt.Errorf("user already exists")
	ErrRateLimited        = fmt.Errorf("rate limited")
	ErrDeletionFailed     = fmt.Errorf("user deletion failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidRecord   = fmt.Errorf("invalid record")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
