package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Exception kinds
// ---------------------------------------------------------------------------

// ErrorKind selects the exception class a native failure surfaces as.
type ErrorKind uint8

const (
	KindRuntime ErrorKind = iota
	KindArgument
	KindType
	KindRange
	KindOverflow
	KindFloatDomain
	KindNotImplemented
	KindNoMethod
	KindFatal
)

var kindNames = [...]string{
	KindRuntime:        "RuntimeError",
	KindArgument:       "ArgumentError",
	KindType:           "TypeError",
	KindRange:          "RangeError",
	KindOverflow:       "OverflowError",
	KindFloatDomain:    "FloatDomainError",
	KindNotImplemented: "NotImplementedError",
	KindNoMethod:       "NoMethodError",
	KindFatal:          "fatal",
}

// String returns the name of the exception class for k.
func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a native failure destined to become a VM exception.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ArgumentError returns an ArgumentError-kinded failure.
func ArgumentError(msg string) *Error { return &Error{Kind: KindArgument, Message: msg} }

// TypeError returns a TypeError-kinded failure.
func TypeError(msg string) *Error { return &Error{Kind: KindType, Message: msg} }

// NotImplemented returns the failure raised by operations that exist but
// have no behavior yet.
func NotImplemented(what string) *Error {
	return &Error{Kind: KindNotImplemented, Message: what + " is not implemented"}
}

// ErrTypeMismatch is returned when a value does not carry the expected
// native data type.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrRegistryExhausted is the cause of the fatal error Send returns when a
// registry slab has no IDs left.
var ErrRegistryExhausted = errors.New("object registry exhausted")

// ---------------------------------------------------------------------------
// Exception objects
// ---------------------------------------------------------------------------

// ExceptionObject represents a raised exception instance.
type ExceptionObject struct {
	ExceptionClass *Class
	MessageText    string
	Cause          error
}

// SignaledException is panicked when an exception is raised inside a
// primitive. Send recovers it and returns a RaisedError.
type SignaledException struct {
	Exception Value
	Object    *ExceptionObject
}

// RaisedError is the host-side view of an exception that escaped Send.
// The exception's registry entry is released when Send returns it.
type RaisedError struct {
	Class   *Class
	Message string
	object  *ExceptionObject
	cause   error
}

func (e *RaisedError) Error() string {
	return e.Class.Name + ": " + e.Message
}

func (e *RaisedError) Unwrap() error { return e.cause }

// IsA reports whether the exception's class is c or a subclass of it.
func (e *RaisedError) IsA(c *Class) bool {
	return e.Class.IsSubclassOf(c)
}

// ---------------------------------------------------------------------------
// Exception class registration
// ---------------------------------------------------------------------------

func (vm *VM) bootstrapExceptionClasses() {
	vm.ExceptionClass = vm.createClass("Exception", vm.ObjectClass)
	vm.ScriptErrorClass = vm.createClass("ScriptError", vm.ExceptionClass)
	vm.NotImplementedErrorClass = vm.createClass("NotImplementedError", vm.ScriptErrorClass)
	vm.StandardErrorClass = vm.createClass("StandardError", vm.ExceptionClass)
	vm.ArgumentErrorClass = vm.createClass("ArgumentError", vm.StandardErrorClass)
	vm.TypeErrorClass = vm.createClass("TypeError", vm.StandardErrorClass)
	vm.RuntimeErrorClass = vm.createClass("RuntimeError", vm.StandardErrorClass)
	nameError := vm.createClass("NameError", vm.StandardErrorClass)
	vm.NoMethodErrorClass = vm.createClass("NoMethodError", nameError)
	vm.RangeErrorClass = vm.createClass("RangeError", vm.StandardErrorClass)
	vm.OverflowErrorClass = vm.createClass("OverflowError", vm.RangeErrorClass)
	vm.FloatDomainErrorClass = vm.createClass("FloatDomainError", vm.RangeErrorClass)

	// Not rescuable as StandardError.
	vm.FatalClass = vm.createClass("fatal", vm.ExceptionClass)

	c := vm.ExceptionClass
	c.AddMethod0(vm.Symbols, "message", func(vm *VM, self Value) Value {
		ex := vm.registry.GetException(self)
		if ex == nil {
			return Nil
		}
		return vm.NewString(ex.MessageText)
	})
	c.Alias(vm.Symbols, "to_s", "message")
	c.AddClassPrimitiveMethod(vm.Symbols, "new", 0, 1, func(vm *VM, self Value, args []Value) Value {
		class := vm.registry.GetClass(self)
		msg := class.Name
		if len(args) == 1 {
			s := vm.registry.GetString(args[0])
			if s == nil {
				vm.Raise(TypeError("exception message must be a String"))
			}
			msg = s.String()
		}
		return vm.registry.RegisterException(&ExceptionObject{ExceptionClass: class, MessageText: msg})
	})
}

// classForKind returns the exception class for kind.
func (vm *VM) classForKind(kind ErrorKind) *Class {
	switch kind {
	case KindArgument:
		return vm.ArgumentErrorClass
	case KindType:
		return vm.TypeErrorClass
	case KindRange:
		return vm.RangeErrorClass
	case KindOverflow:
		return vm.OverflowErrorClass
	case KindFloatDomain:
		return vm.FloatDomainErrorClass
	case KindNotImplemented:
		return vm.NotImplementedErrorClass
	case KindNoMethod:
		return vm.NoMethodErrorClass
	case KindFatal:
		return vm.FatalClass
	default:
		return vm.RuntimeErrorClass
	}
}

// ---------------------------------------------------------------------------
// Raising
// ---------------------------------------------------------------------------

// Raise converts err into a VM exception and unwinds to the nearest Send.
// A RaisedError coming back from a nested Send is re-raised unchanged;
// ErrTypeMismatch becomes a TypeError; other Go errors become RuntimeError.
func (vm *VM) Raise(err error) {
	var raised *RaisedError
	if errors.As(err, &raised) {
		ex := raised.object
		if ex == nil {
			ex = &ExceptionObject{ExceptionClass: raised.Class, MessageText: raised.Message, Cause: raised.cause}
		}
		panic(SignaledException{Exception: vm.registry.RegisterException(ex), Object: ex})
	}

	var native *Error
	switch {
	case errors.As(err, &native):
		vm.signal(vm.classForKind(native.Kind), native.Message, err)
	case errors.Is(err, ErrTypeMismatch):
		vm.signal(vm.TypeErrorClass, err.Error(), err)
	default:
		vm.signal(vm.RuntimeErrorClass, err.Error(), err)
	}
}

// RaiseClass raises an instance of class with msg.
func (vm *VM) RaiseClass(class *Class, msg string) {
	vm.signal(class, msg, nil)
}

func (vm *VM) signal(class *Class, msg string, cause error) {
	ex := &ExceptionObject{ExceptionClass: class, MessageText: msg, Cause: cause}
	exVal := vm.registry.RegisterException(ex)
	panic(SignaledException{Exception: exVal, Object: ex})
}

// recoverSignal turns a SignaledException panic into a RaisedError and
// releases the exception's registry entry. An exhausted registry becomes a
// fatal RaisedError. Any other panic is propagated.
func (vm *VM) recoverSignal(r any) *RaisedError {
	switch sig := r.(type) {
	case SignaledException:
		vm.registry.UnregisterException(sig.Exception)
		return &RaisedError{
			Class:   sig.Object.ExceptionClass,
			Message: sig.Object.MessageText,
			object:  sig.Object,
			cause:   sig.Object.Cause,
		}
	case registryExhausted:
		return &RaisedError{
			Class:   vm.FatalClass,
			Message: "object registry exhausted: no free " + sig.slab + " IDs",
			cause:   ErrRegistryExhausted,
		}
	default:
		panic(r)
	}
}

// exceptionClassOf returns the class of the exception v, or nil.
func (vm *VM) exceptionClassOf(v Value) *Class {
	if ex := vm.registry.GetException(v); ex != nil {
		return ex.ExceptionClass
	}
	return nil
}
