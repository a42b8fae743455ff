package api

import (
	"encoding/json"
	"fmt"
)

// StatusError indicates the server answered with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Code)
}

// DecodeError indicates the response body could not be turned into the
// expected typed value, either because it is not JSON or because it does
// not match the endpoint's schema.
type DecodeError struct {
	Content json.RawMessage
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
