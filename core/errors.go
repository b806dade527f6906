package core

import (
	"errors"
)

// Rejections a pin/unpin invocation can end in. Each one is reported to the
// invoking channel exactly once, by the layer that detects it.
var (
	ErrMissingInput     = errors.New("missing input")
	ErrMalformedURL     = errors.New("malformed message url")
	ErrNoGuildContext   = errors.New("no guild context")
	ErrGuildMismatch    = errors.New("guild mismatch")
	ErrFetchFailed      = errors.New("fetch failed")
	ErrPermissionDenied = errors.New("permission denied")
)

var replies = map[error]string{
	ErrMissingInput:     "Input required: message URL",
	ErrMalformedURL:     "Invalid message URL",
	ErrNoGuildContext:   "Message sent outside of guild?",
	ErrGuildMismatch:    "No. Absolutely not.",
	ErrFetchFailed:      "Couldn't get message",
	ErrPermissionDenied: "Insufficient permissions",
}

// CommandError is a rejection that has already been replied to in the
// invoking channel. Cause is the backend error behind it, if any.
type CommandError struct {
	Kind  error
	Cause error
}

func NewCommandError(kind error, cause error) *CommandError {
	_, known := replies[kind]
	if !known {
		panic("invariant violated - unknown command error kind: " + kind.Error())
	}
	return &CommandError{Kind: kind, Cause: cause}
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return e.Kind.Error() + ": " + e.Cause.Error()
	}
	return e.Kind.Error()
}

func (e *CommandError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Reply is the user-facing text for this rejection.
func (e *CommandError) Reply() string {
	return replies[e.Kind]
}

// ReplyFor returns the user-facing text for a rejection kind, or "" if err is
// not one of the sentinels above.
func ReplyFor(err error) string {
	for kind, reply := range replies {
		if errors.Is(err, kind) {
			return reply
		}
	}
	return ""
}

// IsCommandError reports whether err is a user-facing rejection that was
// already handled by replying.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}
