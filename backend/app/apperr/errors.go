// Package apperr holds the error kinds shared by services and handlers.
package apperr

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAuthRequired       = errors.New("authentication required")
)

// ValidationError collects every violated input rule of one submission.
// It matches ErrValidation, and ErrConflict as well when Conflict is set.
type ValidationError struct {
	Messages []string
	Conflict bool
}

func (e *ValidationError) Add(msg string) { e.Messages = append(e.Messages, msg) }

func (e *ValidationError) Empty() bool { return len(e.Messages) == 0 }

func (e *ValidationError) Error() string { return strings.Join(e.Messages, "; ") }

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrConflict:
		return e.Conflict
	}
	return false
}

// Messages returns the user-facing messages carried by err: every message of
// a ValidationError, otherwise err's text.
func Messages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return []string{err.Error()}
}
