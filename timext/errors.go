package timext

import (
	"errors"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// Translate maps a native failure onto the VM exception it surfaces as.
// The mapping is total: the result is either a *vm.RaisedError coming back
// from a nested send, or a *vm.Error whose Kind selects the class.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var raised *vm.RaisedError
	if errors.As(err, &raised) {
		return raised
	}
	var native *vm.Error
	if errors.As(err, &native) {
		return native
	}

	var calErr *calendar.Error
	if errors.As(err, &calErr) {
		return &vm.Error{Kind: calendarKind(calErr.Kind), Message: calErr.Error(), Err: err}
	}
	if errors.Is(err, vm.ErrTypeMismatch) {
		return &vm.Error{Kind: vm.KindType, Message: err.Error(), Err: err}
	}
	return &vm.Error{Kind: vm.KindRuntime, Message: err.Error(), Err: err}
}

func calendarKind(kind error) vm.ErrorKind {
	switch kind {
	case calendar.ErrOverflow:
		return vm.KindOverflow
	case calendar.ErrNonFinite:
		return vm.KindFloatDomain
	case calendar.ErrOutOfRange, calendar.ErrInvalidOffset, calendar.ErrUnknownZone:
		return vm.KindArgument
	default:
		return vm.KindRuntime
	}
}
