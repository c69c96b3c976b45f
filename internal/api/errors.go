package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every *Error with errors.Is.
var ErrRequestFailed = errors.New("request failed")

// ErrSuperseded is returned for a response that arrived after a newer
// request of the same kind was started. Callers drop it silently.
var ErrSuperseded = errors.New("request superseded")

// ErrTimeout reports that the service did not answer in time, including
// through the login fallback.
var ErrTimeout = errors.New("request timed out: backend is not responding")

// Error is a non-2xx response from the service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrRequestFailed) true for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrRequestFailed
}

// InvalidResponseError is a 2xx response whose body could not be used.
type InvalidResponseError struct {
	Body string
	Err  error
}

func (e *InvalidResponseError) Error() string {
	return e.Err.Error()
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

func invalidResponse(body []byte, format string, args ...any) *InvalidResponseError {
	return &InvalidResponseError{Body: string(body), Err: fmt.Errorf(format, args...)}
}
