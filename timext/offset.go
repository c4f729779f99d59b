package timext

import (
	"math"
	"strconv"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// offsetFromOptions reads the `in:` entry of an options hash. found is
// false when the key is missing or nil, in which case the caller falls back
// to the local offset.
func (b *Binding) offsetFromOptions(options vm.Value) (calendar.Offset, bool, error) {
	value, ok := b.vm.HashGet(options, b.vm.Symbols.SymbolValue("in"))
	if !ok {
		value, ok = b.vm.HashGetString(options, "in")
	}
	if !ok || value == vm.Nil {
		return calendar.Offset{}, false, nil
	}

	if s, ok := b.vm.StringValue(value); ok {
		off, err := calendar.ParseOffset(s)
		return off, err == nil, err
	}
	if n, ok := b.vm.IntegerValue(value); ok {
		if n <= math.MinInt32 || n >= math.MaxInt32 {
			return calendar.Offset{}, false, vm.ArgumentError("utc_offset out of range")
		}
		off, err := calendar.Fixed(int32(n))
		return off, err == nil, err
	}
	return calendar.Offset{}, false, vm.ArgumentError(
		`"+HH:MM", "-HH:MM", "UTC" or "A".."I","K".."Z" expected for utc_offset: ` + b.describe(value))
}

func (b *Binding) describe(v vm.Value) string {
	if v.IsFloat() {
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	}
	if name, ok := b.vm.Symbols.SymbolName(v); ok {
		return name
	}
	return b.vm.TypeName(v)
}
