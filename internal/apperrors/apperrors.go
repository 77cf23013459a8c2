// Package apperrors defines the error kinds the workflows report.
// Handlers compare against them with errors.Is to pick HTTP statuses.
package apperrors

import "errors"

var (
	// ErrDuplicateUsername reports a registration with an already-taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail reports a registration with an already-taken email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredentials reports a failed login. The message is the same
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken reports a malformed, tampered, or expired bearer token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotFound reports a task id that does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrForbidden reports a task owned by a different user. The HTTP layer
	// maps it to the same 404 as ErrNotFound so foreign tasks are
	// indistinguishable from absent ones.
	ErrForbidden = errors.New("task not found")
	// ErrValidation reports a request that fails input validation.
	ErrValidation = errors.New("validation failed")
)
