package domain

import "errors"

// Error taxonomy shared by stores, services and handlers. Handlers map these to
// HTTP statuses; everything else wraps them with fmt.Errorf("...: %w", err).
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAlreadyResolved   = errors.New("transaction already resolved")
	ErrValidation        = errors.New("validation failed")
	ErrRemoteUnavailable = errors.New("remote collaborator unavailable")
)
