package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Remote failure classes, derived from transport status codes
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrNotFound   = fmt.Errorf("not found")
	ErrValidation = fmt.Errorf("validation failed")
	ErrServer     = fmt.Errorf("server error")
	ErrNetwork    = fmt.Errorf("network error")

	// Workflow errors
	ErrMissingSession     = fmt.Errorf("no active upload session")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPublishAborted     = fmt.Errorf("publish aborted")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
