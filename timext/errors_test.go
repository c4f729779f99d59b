package timext

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

func TestTranslate(t *testing.T) {
	if Translate(nil) != nil {
		t.Fatal("expected nil to translate to nil")
	}

	tests := []struct {
		name string
		err  error
		kind vm.ErrorKind
		msg  string
	}{
		{"overflow", &calendar.Error{Kind: calendar.ErrOverflow, Msg: "Time arithmetic overflow"}, vm.KindOverflow, "Time arithmetic overflow"},
		{"non-finite", &calendar.Error{Kind: calendar.ErrNonFinite, Msg: "NaN"}, vm.KindFloatDomain, "NaN"},
		{"out of range", &calendar.Error{Kind: calendar.ErrOutOfRange}, vm.KindArgument, "time out of range"},
		{"invalid offset", &calendar.Error{Kind: calendar.ErrInvalidOffset, Msg: "bad"}, vm.KindArgument, "bad"},
		{"unknown zone", &calendar.Error{Kind: calendar.ErrUnknownZone, Msg: "zone"}, vm.KindArgument, "zone"},
		{"wrapped calendar", fmt.Errorf("ctx: %w", &calendar.Error{Kind: calendar.ErrOverflow, Msg: "x"}), vm.KindOverflow, "x"},
		{"type mismatch", fmt.Errorf("%w: expected Time, got Integer", vm.ErrTypeMismatch), vm.KindType, "type mismatch: expected Time, got Integer"},
		{"anything else", io.ErrUnexpectedEOF, vm.KindRuntime, "unexpected EOF"},
		{"native passes through", vm.ArgumentError("nope"), vm.KindArgument, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var native *vm.Error
			if !errors.As(Translate(tt.err), &native) {
				t.Fatalf("expected a *vm.Error, got %T", Translate(tt.err))
			}
			if native.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, native.Kind)
			}
			if native.Message != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, native.Message)
			}
		})
	}
}

func TestTranslateKeepsRaisedErrors(t *testing.T) {
	f := newFixture(t)
	raised := f.sendErr(t, num(1), "no_such_method")
	if got := Translate(raised); got != raised {
		t.Errorf("expected the raised error itself, got %v", got)
	}
}

func TestTranslatedErrorsRaiseMappedClasses(t *testing.T) {
	f := newFixture(t)
	tm := f.b.Box(calendar.Time{})
	tests := []struct {
		err   error
		class *vm.Class
	}{
		{&calendar.Error{Kind: calendar.ErrOverflow}, f.vm.OverflowErrorClass},
		{&calendar.Error{Kind: calendar.ErrNonFinite}, f.vm.FloatDomainErrorClass},
		{&calendar.Error{Kind: calendar.ErrOutOfRange}, f.vm.ArgumentErrorClass},
		{vm.ErrTypeMismatch, f.vm.TypeErrorClass},
		{errors.New("boom"), f.vm.RuntimeErrorClass},
	}
	for _, tt := range tests {
		err := tt.err
		f.b.def0("fail_"+tt.class.Name, func(vm.Value) (vm.Value, error) { return vm.Nil, err })
		f.expectRaise(t, tt.class, "", tm, "fail_"+tt.class.Name)
	}
}
