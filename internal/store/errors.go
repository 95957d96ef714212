package store

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an identifier has no matching record.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// FetchError is returned when the backing store is unreachable or rejects
// a read.
type FetchError struct {
	Entity string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s records: %v", e.Entity, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CreateError is returned when the backing store rejects a create.
type CreateError struct {
	Entity string
	Err    error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create %s record: %v", e.Entity, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// UpdateError is returned when the backing store rejects an update.
type UpdateError struct {
	Entity string
	ID     int
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update %s %d: %v", e.Entity, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// DeleteError is returned when the backing store rejects a delete.
type DeleteError struct {
	Entity string
	ID     int
	Err    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s %d: %v", e.Entity, e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// ValidationError is raised caller-side before an adapter is invoked,
// for example an empty required text field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
