package timext

import (
	"math"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// subsecUnit is the number of nanoseconds in one unit of subsec.
type subsecUnit int64

const (
	unitMillisecond subsecUnit = 1_000_000
	unitMicrosecond subsecUnit = 1_000
	unitNanosecond  subsecUnit = 1
)

var subsecUnits = map[string]subsecUnit{
	"millisecond": unitMillisecond,
	"usec":        unitMicrosecond,
	"microsecond": unitMicrosecond,
	"nsec":        unitNanosecond,
	"nanosecond":  unitNanosecond,
}

func (b *Binding) parseUnit(unit vm.Value, present bool) (subsecUnit, error) {
	if !present {
		return unitMicrosecond, nil
	}
	name, ok := b.vm.Symbols.SymbolName(unit)
	if !ok {
		return 0, vm.ArgumentError("unexpected unit: " + b.vm.TypeName(unit))
	}
	u, ok := subsecUnits[name]
	if !ok {
		return 0, vm.ArgumentError("unexpected unit: " + name)
	}
	return u, nil
}

// resolveSubsec converts (subsec, unit) to whole seconds plus nanoseconds
// in [0, 1e9). Negative subsecs borrow from the whole seconds.
func (b *Binding) resolveSubsec(subsec vm.Value, hasSubsec bool, unit vm.Value, hasUnit bool) (int64, uint32, error) {
	u, err := b.parseUnit(unit, hasUnit)
	if err != nil {
		return 0, 0, err
	}
	if !hasSubsec {
		return 0, 0, nil
	}

	if subsec.IsFloat() {
		return splitFloatSubsec(subsec.Float64(), u)
	}
	if subsec == vm.Nil {
		return 0, 0, vm.TypeError("can't convert nil into an exact number")
	}
	n, err := b.vm.ImplicitInt(subsec)
	if err != nil {
		return 0, 0, vm.TypeError("can't convert " + b.vm.TypeName(subsec) + " into an exact number")
	}
	return splitIntSubsec(n, u)
}

func splitIntSubsec(n int64, u subsecUnit) (int64, uint32, error) {
	perSecond := int64(calendar.NanosPerSecond) / int64(u)
	secs := n / perSecond
	rem := n % perSecond
	if rem < 0 {
		rem += perSecond
		secs--
	}
	return secs, uint32(rem * int64(u)), nil
}

func splitFloatSubsec(f float64, u subsecUnit) (int64, uint32, error) {
	switch {
	case math.IsNaN(f):
		return 0, 0, &vm.Error{Kind: vm.KindFloatDomain, Message: "NaN"}
	case math.IsInf(f, 1):
		return 0, 0, &vm.Error{Kind: vm.KindFloatDomain, Message: "Infinity"}
	case math.IsInf(f, -1):
		return 0, 0, &vm.Error{Kind: vm.KindFloatDomain, Message: "-Infinity"}
	}

	perSecond := float64(calendar.NanosPerSecond) / float64(u)
	whole := math.Floor(f / perSecond)
	if whole >= math.MaxInt64 || whole <= math.MinInt64 {
		return 0, 0, vm.ArgumentError("Time too large")
	}
	nanos := math.Round((f - whole*perSecond) * float64(u))
	secs := int64(whole)
	if nanos >= calendar.NanosPerSecond {
		nanos -= calendar.NanosPerSecond
		secs++
	}
	if nanos < 0 {
		nanos = 0
	}
	return secs, uint32(nanos), nil
}
