package timext

import (
	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// operandKind is the closed set of shapes an arithmetic or comparison
// operand can take.
type operandKind uint8

const (
	operandTime operandKind = iota
	operandFloat
	operandInt
	operandOther
)

func (k operandKind) String() string {
	switch k {
	case operandTime:
		return "time"
	case operandFloat:
		return "float"
	case operandInt:
		return "int"
	default:
		return "other"
	}
}

// operand is a classified argument. Only the field matching kind is set.
type operand struct {
	kind  operandKind
	time  calendar.Time
	float float64
	int   int64
	name  string
}

// classifyOperand checks, in order: Time, Float, implicit Integer.
// Everything else is operandOther and carries the type name for messages.
func (b *Binding) classifyOperand(v vm.Value) operand {
	if t, err := b.data.Unbox(b.vm, v); err == nil {
		return operand{kind: operandTime, time: *t}
	}
	if v.IsFloat() {
		return operand{kind: operandFloat, float: v.Float64()}
	}
	if n, err := b.vm.ImplicitInt(v); err == nil {
		return operand{kind: operandInt, int: n}
	}
	return operand{kind: operandOther, name: b.vm.TypeName(v)}
}
