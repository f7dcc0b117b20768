package catalog

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrInvalidPage is returned when a page number below 1 is requested.
	ErrInvalidPage = errors.New("page number must be >= 1")
)

// CatalogError represents a catalog API error with additional context.
type CatalogError struct {
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s error (status %d): %s: %v",
			e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog %s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *CatalogError) Unwrap() error {
	return e.Err
}
