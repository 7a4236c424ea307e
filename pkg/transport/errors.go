package transport

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every RequestError with errors.Is.
var ErrRequestFailed = errors.New("bynder: request failed")

// maxErrorBody caps the response body kept in a RequestError.
const maxErrorBody = 2048

// RequestError reports a non-success HTTP status from the API or the storage backend,
// or a request that could not be completed at all (StatusCode is then 0 and Err is set).
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("bynder: %s %s: %v", e.Method, e.URL, e.Err)
	}

	if e.Body == "" {
		return fmt.Sprintf("bynder: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	}

	return fmt.Sprintf("bynder: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrRequestFailed) true for any RequestError.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the failure is worth retrying by the caller.
func (e *RequestError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}

	return string(b)
}
