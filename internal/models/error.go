package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
)

// FieldViolation describes one failed rule on one request field.
type FieldViolation struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError aggregates every violated rule of a request.
type ValidationError struct {
	Message    string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %d violation(s), first: %s: %s",
		len(e.Violations), e.Violations[0].Field, e.Violations[0].Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrBadRequest
}

// EmailAlreadyExistsError is returned when a registration collides with an
// existing account. Email is kept for logging only.
type EmailAlreadyExistsError struct {
	Email string
}

func (e *EmailAlreadyExistsError) Error() string {
	return "a user with this email already exists"
}

func (e *EmailAlreadyExistsError) Is(target error) bool {
	return target == ErrConflict
}
