package client

import "fmt"

// StatusError is returned when a catalog answers with a non-200 status.
type StatusError struct {
	URL  string
	Code int
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
}

// Is allows for error checking with errors.Is()
func (e *StatusError) Is(target error) bool {
	_, ok := target.(*StatusError)
	return ok
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return retryableStatus(e.Code)
}
