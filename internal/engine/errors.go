package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to callers as 4xx-equivalent conditions. Handlers
// map ErrNotFound to 404 and ErrInvalidState to 400.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

// StorageError wraps a backing-store failure, including an exhausted upsert
// retry budget. It is the 5xx-equivalent condition; the caller decides
// whether to retry the whole request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether any error in err's chain is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
