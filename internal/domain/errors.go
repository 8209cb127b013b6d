package domain

import "errors"

// Domain errors (no external dependencies). Every non-nil error returned by a
// use case corresponds to zero net state change; only a nil error means the
// mutation committed.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrConflict          = errors.New("modified by another user")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
)
