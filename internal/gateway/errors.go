package gateway

import "fmt"

// TransportError reports an exchange that failed at the HTTP level: the
// request never completed, the response body could not be read, or the
// response carried a non-2xx status.
type TransportError struct {
	Status int    // HTTP status code, zero when no response arrived
	Body   string // response body, when one was read
	Err    error  // underlying transport failure, when one occurred
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GitHub API HTTP error: %v", e.Err)
	}
	return fmt.Sprintf("GitHub API HTTP error: status %d - %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a response the API answered with but that cannot
// be used: malformed JSON, a missing data field, or a non-empty errors
// list.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string { return e.Reason }

func (e *ProtocolError) Unwrap() error { return e.Err }
