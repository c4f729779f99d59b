package vm

import (
	"github.com/chazu/tock/pkg/bytebuf"
)

// ---------------------------------------------------------------------------
// StringObject: VM strings backed by an owned byte buffer
// ---------------------------------------------------------------------------

// StringObject is the heap payload of a VM String. Strings are byte
// sequences; no encoding is enforced at this layer.
type StringObject struct {
	buf *bytebuf.Buffer
}

// String returns the contents, replacing invalid UTF-8.
func (s *StringObject) String() string {
	return s.buf.ToValidString()
}

// Bytes borrows the underlying bytes.
func (s *StringObject) Bytes() []byte {
	return s.buf.Bytes()
}

// Buffer returns the owned buffer.
func (s *StringObject) Buffer() *bytebuf.Buffer {
	return s.buf
}

// NewString allocates a VM String holding s.
func (vm *VM) NewString(s string) Value {
	return vm.registry.RegisterString(&StringObject{buf: bytebuf.FromString(s)})
}

// NewStringBytes allocates a VM String holding a copy of b.
func (vm *VM) NewStringBytes(b []byte) Value {
	return vm.registry.RegisterString(&StringObject{buf: bytebuf.FromBytes(b)})
}

// IsString reports whether v is a VM String.
func (vm *VM) IsString(v Value) bool {
	return vm.registry.GetString(v) != nil
}

// StringValue returns the Go string for a VM String.
func (vm *VM) StringValue(v Value) (string, bool) {
	s := vm.registry.GetString(v)
	if s == nil {
		return "", false
	}
	return s.String(), true
}

// StringBytes returns the raw bytes of a VM String.
func (vm *VM) StringBytes(v Value) ([]byte, bool) {
	s := vm.registry.GetString(v)
	if s == nil {
		return nil, false
	}
	return s.Bytes(), true
}

func (vm *VM) registerStringPrimitives() {
	c := vm.StringClass

	c.AddMethod0(vm.Symbols, "to_s", func(vm *VM, self Value) Value {
		return self
	})
	c.AddMethod0(vm.Symbols, "bytesize", func(vm *VM, self Value) Value {
		return FromSmallInt(int64(vm.registry.GetString(self).buf.Len()))
	})
	c.AddMethod0(vm.Symbols, "empty?", func(vm *VM, self Value) Value {
		return FromBool(vm.registry.GetString(self).buf.IsEmpty())
	})
	c.AddMethod0(vm.Symbols, "to_sym", func(vm *VM, self Value) Value {
		return vm.Symbols.SymbolValue(vm.registry.GetString(self).String())
	})
	c.AddMethod1(vm.Symbols, "<<", func(vm *VM, self Value, other Value) Value {
		s := vm.registry.GetString(self)
		o := vm.registry.GetString(other)
		if o == nil {
			vm.Raise(TypeError("no implicit conversion of " + vm.TypeName(other) + " into String"))
		}
		s.buf.Append(o.Bytes())
		return self
	})
	c.AddMethod1(vm.Symbols, "==", func(vm *VM, self Value, other Value) Value {
		o := vm.registry.GetString(other)
		if o == nil {
			return False
		}
		return FromBool(vm.registry.GetString(self).buf.Equal(o.buf))
	})
}
