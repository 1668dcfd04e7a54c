package engine

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a referenced entity is absent or not owned by
// the caller.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError indicates a business-rule violation, e.g. starting a
// second session while one is already running.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// InvalidStateError indicates an operation not valid for the entity's
// current lifecycle state.
type InvalidStateError struct {
	Entity string
	ID     string
	Status string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is %s", e.Entity, e.ID, e.Status)
}

// ValidationError indicates malformed or out-of-range input, rejected
// before any mutation.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

func IsNotFound(err error) bool {
	var e NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e ConflictError
	return errors.As(err, &e)
}

func IsInvalidState(err error) bool {
	var e InvalidStateError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e ValidationError
	return errors.As(err, &e)
}
