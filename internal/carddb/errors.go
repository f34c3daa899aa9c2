package carddb

import (
	"errors"
	"fmt"
)

// NotFoundError represents a 404 from a card database endpoint.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// StatusError represents any other unexpected HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// CacheCorruptError means a cached card database could not be decoded.
type CacheCorruptError struct {
	Path string
	Err  error
}

func (e *CacheCorruptError) Error() string {
	return fmt.Sprintf("card database cache %s is corrupt (%v); delete it and run again", e.Path, e.Err)
}

func (e *CacheCorruptError) Unwrap() error { return e.Err }

// OverrideShapeError means a local override file is neither a card array
// nor an object with a "cards" array.
type OverrideShapeError struct {
	Path string
	Err  error
}

func (e *OverrideShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("override file %s must be an array of cards or {\"cards\": [...]}: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("override file %s must be an array of cards or {\"cards\": [...]}", e.Path)
}

func (e *OverrideShapeError) Unwrap() error { return e.Err }

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
