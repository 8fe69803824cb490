// Package errs defines the error taxonomy shared by the workflow engines and
// the remote capability client.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error.
type Kind string

const (
	// KindValidation is a local input problem. It never reaches the network.
	KindValidation Kind = "VALIDATION"
	// KindTransport is a failed remote call: unreachable service, non-2xx
	// status or a malformed response.
	KindTransport Kind = "TRANSPORT"
	// KindBusy rejects an action while a call for the same workflow is in flight.
	KindBusy Kind = "BUSY"
	// KindInvalidState rejects an action the current state does not accept.
	KindInvalidState Kind = "INVALID_STATE"
	// KindNotFound is returned when a requested resource does not exist.
	KindNotFound Kind = "NOT_FOUND"
)

// Error is the structured error returned by the engines and the client.
type Error struct {
	Kind      Kind
	Op        string
	Message   string
	Status    int
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a non-retryable validation error.
func Validation(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Transport wraps a failed remote call. Transport errors are always retryable
// by the user; the client itself never retries.
func Transport(op string, status int, err error) *Error {
	msg := "remote call failed"
	if status != 0 {
		msg = "unexpected response " + http.StatusText(status)
	}
	return &Error{Kind: KindTransport, Op: op, Message: msg, Status: status, Retryable: true, Err: err}
}

// Malformed marks a response that could not be understood.
func Malformed(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Message: "malformed response", Retryable: true, Err: err}
}

// Busy rejects an action while another one is in flight.
func Busy(op string) *Error {
	return &Error{Kind: KindBusy, Op: op, Message: "a request is already in progress"}
}

// InvalidState rejects an action not accepted in the given state.
func InvalidState(op string, state fmt.Stringer) *Error {
	return &Error{Kind: KindInvalidState, Op: op, Message: fmt.Sprintf("not allowed in state %s", state)}
}

// NotFound reports a missing resource.
func NotFound(op, what string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: what + " not found", Status: http.StatusNotFound}
}

// KindOf returns the kind of the first *Error in err's chain, or an empty Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsTransport(err error) bool    { return IsKind(err, KindTransport) }
func IsBusy(err error) bool         { return IsKind(err, KindBusy) }
func IsInvalidState(err error) bool { return IsKind(err, KindInvalidState) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }

// IsRetryable reports whether the user may retry the failed action.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}
