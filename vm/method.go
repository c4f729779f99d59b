package vm

// Method is a callable entry in a vtable. Primitives receive the VM, the
// receiver and the already-collected argument list.
type Method interface {
	Invoke(vm *VM, receiver Value, args []Value) Value
	Name() string
	// Arity reports the accepted argument count range; hi < 0 means
	// unbounded.
	Arity() (lo, hi int)
}

// PrimitiveFunc is a Go function that implements a variable-arity primitive.
type PrimitiveFunc func(vm *VM, receiver Value, args []Value) Value

// Method0Func is a primitive taking no arguments.
type Method0Func func(vm *VM, receiver Value) Value

// Method1Func is a primitive taking one argument.
type Method1Func func(vm *VM, receiver Value, arg1 Value) Value

// Method2Func is a primitive taking two arguments.
type Method2Func func(vm *VM, receiver Value, arg1, arg2 Value) Value

// ---------------------------------------------------------------------------
// Arity-specialized method wrappers
// ---------------------------------------------------------------------------

// PrimitiveMethod wraps a PrimitiveFunc with an argument count range.
type PrimitiveMethod struct {
	name   string
	lo, hi int
	fn     PrimitiveFunc
}

func (m *PrimitiveMethod) Invoke(vm *VM, receiver Value, args []Value) Value {
	return m.fn(vm, receiver, args)
}

func (m *PrimitiveMethod) Name() string      { return m.name }
func (m *PrimitiveMethod) Arity() (int, int) { return m.lo, m.hi }

// Method0 wraps a zero-argument primitive.
type Method0 struct {
	name string
	fn   Method0Func
}

func (m *Method0) Invoke(vm *VM, receiver Value, _ []Value) Value {
	return m.fn(vm, receiver)
}

func (m *Method0) Name() string      { return m.name }
func (m *Method0) Arity() (int, int) { return 0, 0 }

// Method1 wraps a one-argument primitive.
type Method1 struct {
	name string
	fn   Method1Func
}

func (m *Method1) Invoke(vm *VM, receiver Value, args []Value) Value {
	return m.fn(vm, receiver, args[0])
}

func (m *Method1) Name() string      { return m.name }
func (m *Method1) Arity() (int, int) { return 1, 1 }

// Method2 wraps a two-argument primitive.
type Method2 struct {
	name string
	fn   Method2Func
}

func (m *Method2) Invoke(vm *VM, receiver Value, args []Value) Value {
	return m.fn(vm, receiver, args[0], args[1])
}

func (m *Method2) Name() string      { return m.name }
func (m *Method2) Arity() (int, int) { return 2, 2 }

// ---------------------------------------------------------------------------
// Factory functions
// ---------------------------------------------------------------------------

// NewPrimitiveMethod creates a primitive accepting lo..hi arguments.
func NewPrimitiveMethod(name string, lo, hi int, fn PrimitiveFunc) Method {
	return &PrimitiveMethod{name: name, lo: lo, hi: hi, fn: fn}
}

// NewMethod0 creates a new zero-argument primitive method.
func NewMethod0(name string, fn Method0Func) Method {
	return &Method0{name: name, fn: fn}
}

// NewMethod1 creates a new one-argument primitive method.
func NewMethod1(name string, fn Method1Func) Method {
	return &Method1{name: name, fn: fn}
}

// NewMethod2 creates a new two-argument primitive method.
func NewMethod2(name string, fn Method2Func) Method {
	return &Method2{name: name, fn: fn}
}

// acceptsArgs reports whether m can be invoked with n arguments.
func acceptsArgs(m Method, n int) bool {
	lo, hi := m.Arity()
	return n >= lo && (hi < 0 || n <= hi)
}
