package cms

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound indicates the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrAboutNotFound indicates the about row is missing. This should
	// not happen after migration seeds the singleton.
	ErrAboutNotFound = errors.New("about entry not found")

	// ErrMissingFields indicates a create/update request failed validation.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidExtension indicates an upload with a disallowed extension.
	ErrInvalidExtension = errors.New("file extension not allowed")

	// ErrBlobNotFound indicates a stored object was not found.
	ErrBlobNotFound = errors.New("object not found")
)

// StorageError represents a failure of a blob store operation.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
