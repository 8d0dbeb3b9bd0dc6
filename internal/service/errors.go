package service

import "errors"

// ErrInvalidCredentials covers both unknown username and wrong password, so
// login rejections don't reveal which of the two was at fault.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}

func httpError(statusCode int, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Wrapped:    err,
	}
}
