// Package apperr defines the closed set of error kinds a request can end with.
//
// Every failure that reaches the HTTP boundary is one of three kinds:
//   - KindValidation: the caller sent bad or missing input (400)
//   - KindUpstream:   the market data provider failed or answered with garbage
//   - KindInternal:   anything else (500)
//
// The Message of an Error is the fixed, client-facing text. The wrapped cause
// is only ever logged.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUpstream
)

// String returns the lowercase name of the kind, used as a log attribute.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// GenericMessage is returned to callers for failures that carry no message of their own.
const GenericMessage = "internal server error"

// Error is a classified request failure.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCoder is implemented by upstream errors that know the HTTP status the
// provider answered with.
type StatusCoder interface {
	StatusCode() int
}

// Validation reports bad caller input.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Internal reports an unexpected failure.
func Internal(msg string, cause error) *Error {
	if msg == "" {
		msg = GenericMessage
	}
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

// Upstream reports a provider failure. An error status answered by the provider
// is forwarded as-is, a timeout becomes 504 and everything else becomes 500.
func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Status: upstreamStatus(cause), Message: msg, Err: cause}
}

func upstreamStatus(cause error) int {
	var sc StatusCoder
	if errors.As(cause, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	var ne net.Error
	if errors.As(cause, &ne) && ne.Timeout() {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// From returns err as an *Error, classifying anything unknown as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(GenericMessage, err)
}
