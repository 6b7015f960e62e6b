package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound represents an error when a requested resource is not found.
// Searches that return no result report it so callers can tell "nothing matched"
// apart from transport or parse failures.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewSearchNotFoundError creates a specific error for a search that returned no hit.
func NewSearchNotFoundError(query string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "search result",
		ID:       query,
	}
}

// NoMatchFoundError is returned when every alternate name of a record was tried
// and no search result was accepted.
type NoMatchFoundError struct {
	RecordID int64
	Attempts int
}

// Error implements the error interface.
func (e *NoMatchFoundError) Error() string {
	return fmt.Sprintf("no match found for record %d after %d search attempts", e.RecordID, e.Attempts)
}

// Is allows for error checking with errors.Is().
func (e *NoMatchFoundError) Is(target error) bool {
	_, ok := target.(*NoMatchFoundError)
	return ok
}

// UnmappedCategoryLabelError is returned when a free-text category label is not
// present in the label table. Usually means the catalog added a new genre.
type UnmappedCategoryLabelError struct {
	Label string
}

// Error implements the error interface.
func (e *UnmappedCategoryLabelError) Error() string {
	return fmt.Sprintf("unmapped category label %q", e.Label)
}

// Is allows for error checking with errors.Is().
func (e *UnmappedCategoryLabelError) Is(target error) bool {
	_, ok := target.(*UnmappedCategoryLabelError)
	return ok
}

// InvalidYearError is returned when a year string cannot be parsed.
type InvalidYearError struct {
	RecordID int64
	Value    string
}

// Error implements the error interface.
func (e *InvalidYearError) Error() string {
	if e.RecordID != 0 {
		return fmt.Sprintf("invalid year %q for record %d", e.Value, e.RecordID)
	}
	return fmt.Sprintf("invalid year %q", e.Value)
}

// Is allows for error checking with errors.Is().
func (e *InvalidYearError) Is(target error) bool {
	_, ok := target.(*InvalidYearError)
	return ok
}

// InvalidRuntimeError is returned when a runtime string such as "1h 33m" cannot be parsed.
type InvalidRuntimeError struct {
	Value string
	URL   string
}

// Error implements the error interface.
func (e *InvalidRuntimeError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("invalid runtime %q at %s", e.Value, e.URL)
	}
	return fmt.Sprintf("invalid runtime %q", e.Value)
}

// Is allows for error checking with errors.Is().
func (e *InvalidRuntimeError) Is(target error) bool {
	_, ok := target.(*InvalidRuntimeError)
	return ok
}

var (
	// ErrLinkAlreadySet is returned when a record that already has a resolved link
	// is given another one.
	ErrLinkAlreadySet = errors.New("record already has a resolved link")

	// ErrInvalidCredentials is returned when the session cookies do not identify a user.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession is returned when an authenticated API call returns an
	// unexpected payload, typically because the JWT expired.
	ErrInvalidSession = errors.New("session is invalid or expired, log in again and refresh the cookies")

	// ErrInconsistentRecord is returned by the exporter for a record whose rating and
	// list flags cannot occur together.
	ErrInconsistentRecord = errors.New("record has an inconsistent rating/favorite/watch-list combination")
)
