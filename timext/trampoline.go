package timext

import (
	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

func (b *Binding) now() (vm.Value, error) {
	return b.Box(calendar.Now(b.clock, b.LocalOffset())), nil
}

func (b *Binding) at(args []vm.Value) (vm.Value, error) {
	params, err := b.resolveAtArgs(args[0], args[1:])
	if err != nil {
		return vm.Nil, err
	}
	t, err := calendar.New(params.seconds, params.nanos, params.offset)
	if err != nil {
		return vm.Nil, err
	}
	return b.Box(t), nil
}

func (b *Binding) allocate() (vm.Value, error) {
	return b.Box(calendar.Time{}), nil
}

func (b *Binding) newTime(args []vm.Value) (vm.Value, error) {
	t, _ := b.allocate()
	b.construct(t, "initialize", args...)
	return t, nil
}

// construct sends an initializer to a freshly allocated cell. The cell is
// freed if the initializer raises.
func (b *Binding) construct(t vm.Value, selector string, args ...vm.Value) vm.Value {
	done := false
	defer func() {
		if !done {
			b.data.Free(b.vm, t)
		}
	}()
	result := b.vm.Call(t, selector, args...)
	done = true
	return result
}

func notImplemented(what string) func() (vm.Value, error) {
	return func() (vm.Value, error) {
		return vm.Nil, vm.NotImplemented(what)
	}
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func (b *Binding) toInt(self vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}
	return b.vm.NewInteger(t.ToInt()), nil
}

func (b *Binding) toFloat(self vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}
	return vm.FromFloat64(t.ToFloat()), nil
}

// toString backs to_s and inspect. It never raises so interactive hosts can
// always display a Time.
func (b *Binding) toString(self vm.Value) (vm.Value, error) {
	return b.vm.NewString(inspectPlaceholder), nil
}

// ---------------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------------

func (b *Binding) compare(self, other vm.Value) (int, error) {
	t, err := b.receiver(self)
	if err != nil {
		return 0, err
	}
	op := b.classifyOperand(other)
	switch op.kind {
	case operandTime:
		return t.Compare(op.time), nil
	default:
		return 0, vm.TypeError("comparison of Time with " + b.vm.TypeName(other) + " failed")
	}
}

func (b *Binding) cmp(self, other vm.Value) (vm.Value, error) {
	c, err := b.compare(self, other)
	if err != nil {
		return vm.Nil, err
	}
	return vm.FromSmallInt(int64(c)), nil
}

func (b *Binding) ordered(test func(int) bool) func(self, other vm.Value) (vm.Value, error) {
	return func(self, other vm.Value) (vm.Value, error) {
		c, err := b.compare(self, other)
		if err != nil {
			return vm.Nil, err
		}
		return vm.FromBool(test(c)), nil
	}
}

// eql never raises for a foreign operand; it answers false.
func (b *Binding) eql(self, other vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}
	op := b.classifyOperand(other)
	if op.kind != operandTime {
		return vm.False, nil
	}
	return vm.FromBool(t.Equal(op.time)), nil
}

// ---------------------------------------------------------------------------
// Copying and mutation
// ---------------------------------------------------------------------------

func (b *Binding) initializeCopy(self, from vm.Value) (vm.Value, error) {
	if _, err := b.receiver(self); err != nil {
		return vm.Nil, err
	}
	src, err := b.data.Unbox(b.vm, from)
	if err != nil {
		return vm.Nil, vm.TypeError("initialize_copy should take same class object")
	}
	if err := b.data.Replace(b.vm, self, *src); err != nil {
		return vm.Nil, err
	}
	return self, nil
}

func (b *Binding) dup(self vm.Value) (vm.Value, error) {
	if _, err := b.receiver(self); err != nil {
		return vm.Nil, err
	}
	copied, _ := b.allocate()
	return b.construct(copied, "initialize_copy", self), nil
}

func (b *Binding) mutateToUTC(self vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}
	t.SetUTC()
	return self, nil
}

func (b *Binding) asUTC(self vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}
	return b.Box(t.ToUTC()), nil
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

func (b *Binding) plus(self, other vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}

	var result calendar.Time
	op := b.classifyOperand(other)
	switch op.kind {
	case operandTime:
		return vm.Nil, vm.TypeError("time + time?")
	case operandFloat:
		result, err = t.CheckedAddFloat(op.float)
	case operandInt:
		result, err = t.CheckedAddInt(op.int)
	case operandOther:
		return vm.Nil, vm.TypeError("can't convert " + op.name + " into an exact number")
	}
	if err != nil {
		return vm.Nil, err
	}
	return b.Box(result), nil
}

func (b *Binding) minus(self, other vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}

	var result calendar.Time
	op := b.classifyOperand(other)
	switch op.kind {
	case operandTime:
		return vm.FromFloat64(t.Sub(op.time)), nil
	case operandFloat:
		result, err = t.CheckedSubFloat(op.float)
	case operandInt:
		result, err = t.CheckedSubInt(op.int)
	case operandOther:
		return vm.Nil, vm.TypeError("can't convert " + op.name + " into an exact number")
	}
	if err != nil {
		return vm.Nil, err
	}
	return b.Box(result), nil
}

func (b *Binding) succ(self vm.Value) (vm.Value, error) {
	if _, err := b.receiver(self); err != nil {
		return vm.Nil, err
	}
	b.vm.Warn("warning: Time#succ is obsolete; use time + 1")
	return b.plus(self, vm.FromSmallInt(1))
}

// ---------------------------------------------------------------------------
// Field projections
// ---------------------------------------------------------------------------

// field lifts a pure projection of the receiver into a primitive.
func (b *Binding) field(project func(t *calendar.Time) vm.Value) func(self vm.Value) (vm.Value, error) {
	return func(self vm.Value) (vm.Value, error) {
		t, err := b.receiver(self)
		if err != nil {
			return vm.Nil, err
		}
		return project(t), nil
	}
}

func intField(get func(t *calendar.Time) int) func(t *calendar.Time) vm.Value {
	return func(t *calendar.Time) vm.Value {
		return vm.FromSmallInt(int64(get(t)))
	}
}

func boolField(get func(t *calendar.Time) bool) func(t *calendar.Time) vm.Value {
	return func(t *calendar.Time) vm.Value {
		return vm.FromBool(get(t))
	}
}
