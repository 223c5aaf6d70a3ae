package porkbun

import "fmt"

// TransportError indicates the HTTP exchange could not complete at all:
// DNS failure, timeout, connection reset. No response was received.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIHTTPError indicates the API answered with a non-200 status.
// Body carries the raw response text for diagnostics.
type APIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *APIHTTPError) Error() string {
	return fmt.Sprintf("api request failed (code %d): %s", e.StatusCode, e.Body)
}

// DecodeError indicates a well-delivered response that could not be
// interpreted: a body that is not a top-level JSON object, or a field
// that fails to parse as the expected value (such as an IP literal).
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RegistrarError indicates a well-formed response whose status field was
// "ERROR". The registrar does not distinguish causes, so Message has to
// cover every likely one.
type RegistrarError struct {
	Path    string
	Domain  string
	Message string
}

func (e *RegistrarError) Error() string {
	if e.Domain != "" {
		return fmt.Sprintf("%s (domain %q, path %s)", e.Message, e.Domain, e.Path)
	}
	return fmt.Sprintf("%s (path %s)", e.Message, e.Path)
}
