package httpclient

import (
	goerrors "errors"

	ierr "github.com/chestno/chestno/internal/errors"
)

// Error represents an HTTP client error
type Error struct {
	error
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.error
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		error: ierr.NewError("http client error").
			WithHint("The remote endpoint returned an error").
			Mark(ierr.ErrHTTPClient),
		StatusCode: statusCode,
		Response:   response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
