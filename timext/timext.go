// Package timext installs the Time class into a VM.
//
// Every primitive follows the same path: unbox the receiver through the
// Time data type, classify operands, call into package calendar, then box
// the result or hand the failure to Translate.
package timext

import (
	"time"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
	"github.com/tliron/commonlog"
)

// ClassName is the VM name of the installed class.
const ClassName = "Time"

// inspectPlaceholder is returned by to_s and inspect instead of raising.
const inspectPlaceholder = "Time<Time#inspect is not implemented>"

// Options configures Install.
type Options struct {
	// Clock answers Time.now. Defaults to calendar.SystemClock.
	Clock calendar.Clock

	// Local is the zone used for the local offset. Defaults to time.Local.
	Local *time.Location
}

// Binding ties the Time class to one VM.
type Binding struct {
	vm    *vm.VM
	data  *vm.DataType[calendar.Time]
	clock calendar.Clock
	local *time.Location
	log   commonlog.Logger
}

// Install registers the Time class and its primitives on v.
func Install(v *vm.VM, opts Options) (*Binding, error) {
	data, err := vm.RegisterDataType[calendar.Time](v, ClassName, nil)
	if err != nil {
		return nil, err
	}
	b := &Binding{
		vm:    v,
		data:  data,
		clock: opts.Clock,
		local: opts.Local,
		log:   commonlog.GetLogger("tock.time"),
	}
	if b.clock == nil {
		b.clock = calendar.SystemClock{}
	}
	if b.local == nil {
		b.local = time.Local
	}
	b.registerClassPrimitives()
	b.registerInstancePrimitives()
	b.log.Debugf("installed %s (local zone %s)", ClassName, b.local)
	return b, nil
}

// Class returns the installed VM class.
func (b *Binding) Class() *vm.Class {
	return b.data.Class()
}

// ClassValue returns the Time constant as a VM value.
func (b *Binding) ClassValue() vm.Value {
	return b.vm.ClassValue(b.data.Class())
}

// Box allocates a new VM Time holding t.
func (b *Binding) Box(t calendar.Time) vm.Value {
	return b.data.Alloc(b.vm, t)
}

// Unbox returns a copy of the timestamp held by v.
func (b *Binding) Unbox(v vm.Value) (calendar.Time, error) {
	t, err := b.data.Unbox(b.vm, v)
	if err != nil {
		return calendar.Time{}, err
	}
	return *t, nil
}

// LocalOffset returns the offset used when a call supplies none.
func (b *Binding) LocalOffset() calendar.Offset {
	return calendar.Local(b.local)
}

// receiver unboxes self. A receiver that is not a Time means dispatch
// itself is broken, so the failure is fatal rather than a TypeError.
func (b *Binding) receiver(self vm.Value) (*calendar.Time, error) {
	t, err := b.data.Unbox(b.vm, self)
	if err != nil {
		return nil, &vm.Error{Kind: vm.KindFatal, Message: "Time primitive called on " + b.vm.TypeName(self), Err: err}
	}
	return t, nil
}

// result turns an operation's outcome into a VM return or a raise.
func (b *Binding) result(v vm.Value, err error) vm.Value {
	if err != nil {
		b.vm.Raise(Translate(err))
	}
	return v
}
