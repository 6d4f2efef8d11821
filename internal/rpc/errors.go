package rpc

import (
	"errors"
	"fmt"
)

// The pipeline distinguishes four failure classes. Every one of them is
// fatal to the current pipeline state: the active request is dropped, the
// queue is cleared, and the client returns to idle. None are retried.
//
//   - TransportError: socket-level (connect refused, write failed, read
//     failed, unexpected disconnect)
//   - ProtocolError: malformed JSON, call id mismatch, missing result
//   - RemoteError: a well-formed JSON-RPC error object from the node
//   - ValidationError: caller-supplied argument rejected before any bytes
//     reach the transport

// TransportError wraps a socket-level failure.
type TransportError struct {
	Op  string // "connect", "write", "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a malformed or mismatched response. Code is always 0:
// protocol failures have no inherent numeric code.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return e.Reason }

// RemoteError carries the message and numeric code of a JSON-RPC error
// object returned by the node.
type RemoteError struct {
	Message string
	Code    int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("node error %d: %s", e.Code, e.Message)
}

// ValidationError reports a bad caller argument, detected before dispatch.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ErrorCode extracts the numeric code carried by err, defaulting to 0 for
// failure classes that have none.
func ErrorCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Code
	}
	return 0
}
