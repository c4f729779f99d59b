package vm

import (
	"errors"
	"math"
	"strconv"
)

// ---------------------------------------------------------------------------
// Integers: SmallInt immediates with a boxed int64 overflow form
// ---------------------------------------------------------------------------

// NewInteger returns n as a VM Integer, boxing it when it does not fit the
// 48-bit immediate range.
func (vm *VM) NewInteger(n int64) Value {
	if v, ok := TryFromSmallInt(n); ok {
		return v
	}
	return vm.registry.registerLargeInt(n)
}

// IntegerValue returns the int64 held by a VM Integer.
func (vm *VM) IntegerValue(v Value) (int64, bool) {
	if v.IsSmallInt() {
		return v.SmallInt(), true
	}
	return vm.registry.getLargeInt(v)
}

// IsInteger reports whether v is a VM Integer.
func (vm *VM) IsInteger(v Value) bool {
	_, ok := vm.IntegerValue(v)
	return ok
}

// ImplicitInt converts v to an integer the way arguments that require an
// exact number are converted: Integers pass through, anything answering
// to_int is asked for one. Failures are *Error or *RaisedError values.
func (vm *VM) ImplicitInt(v Value) (int64, error) {
	if n, ok := vm.IntegerValue(v); ok {
		return n, nil
	}
	switch v {
	case Nil:
		return 0, TypeError("no implicit conversion from nil to integer")
	case True, False:
		return 0, TypeError("no implicit conversion of " + vm.TypeName(v) + " into Integer")
	}
	if !vm.RespondTo(v, "to_int") {
		return 0, TypeError("no implicit conversion of " + vm.TypeName(v) + " into Integer")
	}
	result, err := vm.Send(v, "to_int")
	if err != nil {
		return 0, err
	}
	n, ok := vm.IntegerValue(result)
	if !ok {
		name := vm.TypeName(v)
		return 0, TypeError("can't convert " + name + " to Integer (" + name + "#to_int gives " + vm.TypeName(result) + ")")
	}
	return n, nil
}

var errFloatRange = errors.New("float out of range of integer")

// floatToInt truncates f toward zero.
func floatToInt(f float64) (int64, error) {
	switch {
	case math.IsNaN(f):
		return 0, &Error{Kind: KindFloatDomain, Message: "NaN"}
	case math.IsInf(f, 1):
		return 0, &Error{Kind: KindFloatDomain, Message: "Infinity"}
	case math.IsInf(f, -1):
		return 0, &Error{Kind: KindFloatDomain, Message: "-Infinity"}
	}
	t := math.Trunc(f)
	if t >= 9223372036854775807.0 || t < -9223372036854775808.0 {
		return 0, &Error{
			Kind:    KindRange,
			Message: "float " + strconv.FormatFloat(f, 'g', -1, 64) + " out of range of integer",
			Err:     errFloatRange,
		}
	}
	return int64(t), nil
}

func (vm *VM) registerIntegerPrimitives() {
	c := vm.IntegerClass

	identity := func(vm *VM, self Value) Value { return self }
	c.AddMethod0(vm.Symbols, "to_int", identity)
	c.AddMethod0(vm.Symbols, "to_i", identity)
	c.AddMethod0(vm.Symbols, "to_f", func(vm *VM, self Value) Value {
		n, _ := vm.IntegerValue(self)
		return FromFloat64(float64(n))
	})
	c.AddMethod0(vm.Symbols, "to_s", func(vm *VM, self Value) Value {
		n, _ := vm.IntegerValue(self)
		return vm.NewString(strconv.FormatInt(n, 10))
	})
	c.AddMethod1(vm.Symbols, "==", func(vm *VM, self Value, other Value) Value {
		n, _ := vm.IntegerValue(self)
		if m, ok := vm.IntegerValue(other); ok {
			return FromBool(n == m)
		}
		if other.IsFloat() {
			return FromBool(float64(n) == other.Float64())
		}
		return False
	})
	c.AddMethod0(vm.Symbols, "-@", func(vm *VM, self Value) Value {
		n, _ := vm.IntegerValue(self)
		if n == math.MinInt64 {
			vm.Raise(&Error{Kind: KindRange, Message: "integer overflow"})
		}
		return vm.NewInteger(-n)
	})
}

func (vm *VM) registerFloatPrimitives() {
	c := vm.FloatClass

	toInt := func(vm *VM, self Value) Value {
		n, err := floatToInt(self.Float64())
		if err != nil {
			vm.Raise(err)
		}
		return vm.NewInteger(n)
	}
	c.AddMethod0(vm.Symbols, "to_int", toInt)
	c.AddMethod0(vm.Symbols, "to_i", toInt)
	c.AddMethod0(vm.Symbols, "to_f", func(vm *VM, self Value) Value {
		return self
	})
	c.AddMethod0(vm.Symbols, "to_s", func(vm *VM, self Value) Value {
		return vm.NewString(strconv.FormatFloat(self.Float64(), 'g', -1, 64))
	})
	c.AddMethod1(vm.Symbols, "==", func(vm *VM, self Value, other Value) Value {
		f := self.Float64()
		if other.IsFloat() {
			return FromBool(f == other.Float64())
		}
		if m, ok := vm.IntegerValue(other); ok {
			return FromBool(f == float64(m))
		}
		return False
	})
	c.AddMethod0(vm.Symbols, "nan?", func(vm *VM, self Value) Value {
		return FromBool(math.IsNaN(self.Float64()))
	})
}
