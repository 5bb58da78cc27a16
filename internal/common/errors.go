// Package common provides the error taxonomy shared across the ledger packages.
package common

import "fmt"

// ValidationError reports a field that failed an invariant at create or update
// time. Callers surface Field and Rule to the end user verbatim.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule}
}

// NotFoundError reports a lookup by an id that is not present in the collection.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// PersistenceError reports a failed write to the underlying store. The
// attempted in-memory mutation is discarded; the caller must retry or abort.
type PersistenceError struct {
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not persist collection %s: %v", e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(collection string, err error) *PersistenceError {
	return &PersistenceError{Collection: collection, Err: err}
}
