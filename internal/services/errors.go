package services

import (
	"errors"
	"fmt"
)

var (
	ErrManagerRoleRequired = errors.New("manager role required")
	ErrPeriodNotFound      = errors.New("period not found")
)

// ValidationError marks a failure caused by the caller's input; the HTTP
// layer renders it as a bad request with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
