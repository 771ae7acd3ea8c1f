package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by the key/value operations.
var (
	// ErrNotFound is returned by Get when no key record matches. It is
	// an expected outcome, not a storage failure.
	ErrNotFound = errors.New("key not found")

	// ErrEmptyKey is returned when an operation that requires a key is
	// given empty text.
	ErrEmptyKey = errors.New("key must be non-empty")

	// ErrEmptyValue is returned by Put when given an empty value.
	ErrEmptyValue = errors.New("value must be non-empty")
)

// ErrorCode categorizes storage failures.
type ErrorCode string

const (
	// CodeUnavailable indicates the underlying file cannot be opened,
	// read, or written: missing permissions, disk full, an incompatible
	// concurrent lock, or a corrupt file.
	CodeUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// CodeConstraint indicates a write would break a schema invariant
	// (duplicate key, duplicate value, dangling valueID). Not reachable
	// through Get/Put/Delete used correctly; it guards raw writes.
	CodeConstraint ErrorCode = "CONSTRAINT_VIOLATION"
)

// StoreError represents a failed storage operation. It wraps the driver
// error and carries the operation name for context.
type StoreError struct {
	Code ErrorCode
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Op)
}

// Unwrap returns the underlying driver error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a missing-key result.
// Uses errors.Is to handle wrapped errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable returns true if the error is a storage-unavailable
// failure. Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodeUnavailable
	}
	return false
}

// IsConstraint returns true if the error is a constraint violation.
// Uses errors.As to handle wrapped errors.
func IsConstraint(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodeConstraint
	}
	return false
}

// classify maps a driver error onto the taxonomy. Constraint result
// codes become CodeConstraint; everything else the engine can fail with
// (busy, locked, full, readonly, not-a-database) is a flavor of the
// storage being unavailable.
func classify(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &StoreError{Code: CodeConstraint, Op: op, Err: err}
	}
	return &StoreError{Code: CodeUnavailable, Op: op, Err: err}
}
