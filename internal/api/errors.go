package api

import "fmt"

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Message is the JSON "error" field and may
// be empty.
type HTTPError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d %s", e.Status, e.StatusText)
}

// UnexpectedSuccessError is returned by a diagnostic trigger whose request
// was meant to fail but came back 2xx.
type UnexpectedSuccessError struct {
	Trigger  string
	Expected int
	Status   int
}

func (e *UnexpectedSuccessError) Error() string {
	return fmt.Sprintf("unexpected success: expected %d, got %d", e.Expected, e.Status)
}
