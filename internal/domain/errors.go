package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest indicates a missing or malformed input field.
	ErrBadRequest = errors.New("bad request")

	// ErrAlreadyExists indicates a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrRenameAborted marks a category rename whose product cascade failed
	// before the category row was touched.
	ErrRenameAborted = errors.New("category rename aborted")
)

// Cascade steps of a category rename.
const (
	StepProducts   = "products"
	StepCategories = "categories"
)

// StepError tags an upstream failure with the sub-operation that produced it.
type StepError struct {
	Step    string
	Aborted bool
	Err     error
}

func (e *StepError) Error() string {
	if e.Aborted {
		return fmt.Sprintf("%s step failed, category not renamed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Is reports ErrRenameAborted for aborted steps.
func (e *StepError) Is(target error) bool {
	return target == ErrRenameAborted && e.Aborted
}

// BadRequest wraps ErrBadRequest with a human readable reason.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}
