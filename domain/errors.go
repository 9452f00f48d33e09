package domain

import "fmt"

// TransportError wraps a connection or timeout failure while reaching the
// generation server.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports a non-success status from the generation server.
// Body carries the response body as the error detail.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation request failed with status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError reports a success response that could not be parsed
// or that lacks choices[0].message.content.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: %s", e.Reason)
}
