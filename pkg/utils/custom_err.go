package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store error")
)

// ValidationError carries every problem found in a request, not only the first one.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type NotFoundError struct {
	Message string
}

func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type storeError struct {
	op  string
	err error
}

func (e *storeError) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }

func (e *storeError) Unwrap() []error { return []error{ErrStore, e.err} }

// StoreFailure tags a record store failure so handlers map it to a 500.
func StoreFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storeError{op: op, err: err}
}

// Problems flattens err into a list of validation messages.
func Problems(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Problems
	}
	if err == nil {
		return nil
	}
	return []string{err.Error()}
}
