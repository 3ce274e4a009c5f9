package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the booking engine. Everything except store
// failures is recoverable: the session always stays in a resumable step.
const (
	CodeSessionNotFound       = "sessionNotFound"
	CodeStateError            = "stateError"
	CodeInvalidClientInfo     = "invalidClientInfo"
	CodeNoProviderAvailable   = "noProviderAvailable"
	CodeSlotNoLongerAvailable = "slotNoLongerAvailable"
)

// Error is a coded booking engine error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error with the same code, so wrapped sentinel errors still
// compare with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrSessionNotFound       = &Error{Code: CodeSessionNotFound, Message: "booking session not found or expired"}
	ErrNoProviderAvailable   = &Error{Code: CodeNoProviderAvailable, Message: "no provider offers the selected service"}
	ErrSlotNoLongerAvailable = &Error{Code: CodeSlotNoLongerAvailable, Message: "the selected slot has just been booked"}
	ErrInvalidClientInfo     = &Error{Code: CodeInvalidClientInfo, Message: "client name must be non-empty and phone must contain exactly 11 digits"}
)

// NewStateError reports a transition attempted without its precondition.
func NewStateError(format string, args ...any) error {
	return &Error{Code: CodeStateError, Message: fmt.Sprintf(format, args...)}
}

// Code extracts the engine error code, or "" for non-engine errors.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
