// Package apperrors classifies failures of a polling cycle.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the class of a cycle failure.
type Kind string

const (
	KindTransport        Kind = "TRANSPORT"
	KindHTTPStatus       Kind = "HTTP_STATUS"
	KindMalformedPayload Kind = "MALFORMED_PAYLOAD"
	KindInvalidResponse  Kind = "INVALID_RESPONSE"
	KindUnknownStatus    Kind = "UNKNOWN_STATUS"
	KindInternal         Kind = "INTERNAL"
)

var descriptions = map[Kind]string{
	KindTransport:        "practicum API is unreachable",
	KindHTTPStatus:       "practicum API returned an unexpected status",
	KindMalformedPayload: "practicum API returned a body that is not JSON",
	KindInvalidResponse:  "practicum API response has an unexpected shape",
	KindUnknownStatus:    "homework has an unknown review status",
	KindInternal:         "internal error",
}

// Error is a classified failure. Op names the step that failed.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Msg
	if msg == "" {
		msg = Describe(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind only, so errors.Is(err, New(KindX)) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New returns a bare error of the given kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain,
// or KindInternal when err was never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Describe returns a human readable summary of the kind.
func Describe(kind Kind) string {
	if d, ok := descriptions[kind]; ok {
		return d
	}
	return descriptions[KindInternal]
}
