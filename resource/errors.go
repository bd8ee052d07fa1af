package resource

import (
	"errors"
	"fmt"
)

var ErrTransport = errors.New("transport failure while calling remote authority")
var ErrValidation = errors.New("payload rejected by remote authority")
var ErrNotFound = errors.New("entity not found at remote authority")
var ErrConflict = errors.New("domain rule conflict at remote authority")

// RemoteError carries the verbatim failure reported by the remote authority.
//
// Unwrap returns the taxonomy class (ErrTransport, ErrValidation, ErrNotFound
// or ErrConflict), so errors.Is distinguishes the four classes while the
// human-readable server message stays available for display.
type RemoteError struct {
	Class      error
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Class.Error()
	}
	return fmt.Sprintf("%s: %s", e.Class.Error(), e.Message)
}

// Unwrap returns the taxonomy class for errors.Is matching.
func (e *RemoteError) Unwrap() error {
	return e.Class
}

// NewRemoteError builds a RemoteError for the given taxonomy class.
func NewRemoteError(class error, message string, statusCode int) *RemoteError {
	return &RemoteError{
		Class:      class,
		Message:    message,
		StatusCode: statusCode,
	}
}

// RemoteMessage extracts the verbatim server message from err, or falls back
// to err.Error() when err does not carry a RemoteError.
func RemoteMessage(err error) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
