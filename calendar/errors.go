package calendar

import "errors"

// Sentinel kinds. Every *Error unwraps to exactly one of these.
var (
	ErrOutOfRange    = errors.New("time out of range")
	ErrOverflow      = errors.New("time arithmetic overflow")
	ErrNonFinite     = errors.New("non-finite duration")
	ErrInvalidOffset = errors.New("invalid utc offset")
	ErrUnknownZone   = errors.New("unknown time zone")
)

// Error is a calendar failure. Kind is one of the sentinels above and Msg
// is the display string surfaced to users.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func overflowError() error {
	return newError(ErrOverflow, "Time arithmetic overflow")
}

func outOfRangeError() error {
	return newError(ErrOutOfRange, "time out of range")
}
