package database

import (
	"context"
	"errors"
)

// Transactor runs fn as one Store transaction. Implemented by *DB and *SQLiteDB.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactor runs fn directly. Used where no Store transaction exists.
type NoopTransactor struct{}

func (NoopTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// StoreError wraps a failure of the underlying Store. Message is the single
// user-facing text for the operation; Err keeps the root cause.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func NewStoreError(op, message string, err error) *StoreError {
	return &StoreError{Op: op, Message: message, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Message
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err carries a StoreError.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// WrapStoreError returns nil for a nil err, err itself when it matches one of
// keep, and a StoreError otherwise.
func WrapStoreError(op, message string, err error, keep ...error) error {
	if err == nil {
		return nil
	}
	for _, target := range keep {
		if errors.Is(err, target) {
			return err
		}
	}
	if IsStoreError(err) {
		return err
	}
	return NewStoreError(op, message, err)
}
