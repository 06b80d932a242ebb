package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionEnded    = errors.New("session already ended")
	ErrNotRunning      = errors.New("session is not running")
	ErrGateLocked      = errors.New("parent gate is locked")
)
