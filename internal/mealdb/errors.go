package mealdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by lookups that return no record.
	ErrNotFound = errors.New("recipe not found")

	// ErrEmptyQuery is returned when the ingredient is blank after trimming.
	ErrEmptyQuery = errors.New("ingredient is required")

	// ErrEmptyID is returned when a lookup id is blank after trimming.
	ErrEmptyID = errors.New("recipe id is required")
)

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// DecodeError reports a response body that is not the expected JSON.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NotFoundError indicates that a lookup returned an empty or null list.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recipe %s not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is a NotFound lookup result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
