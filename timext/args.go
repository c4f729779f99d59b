package timext

import (
	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// ---------------------------------------------------------------------------
// Time.at argument normalization
// ---------------------------------------------------------------------------

// slot describes one optional argument of Time.at after the seconds.
type slot struct {
	present bool
	hash    bool
}

// atLayout gives the index into the optional arguments of each parameter,
// or -1 when the parameter is absent.
type atLayout struct {
	subsec  int
	unit    int
	options int
}

var errInvalidOffsetOptions = vm.ArgumentError("invalid offset options")

// normalizeAtArgs decides which of the optional arguments of
// at(seconds, subsec?, unit?, options?) is the options hash. Callers may
// omit subsec and unit while still passing options, which shifts the hash
// left; the scan runs from the last argument backwards.
func normalizeAtArgs(slots []slot) (atLayout, error) {
	layout := atLayout{subsec: -1, unit: -1, options: -1}
	n := 0
	for n < len(slots) && slots[n].present {
		n++
	}

	switch {
	case n >= 3:
		if !slots[2].hash {
			return atLayout{}, errInvalidOffsetOptions
		}
		layout = atLayout{subsec: 0, unit: 1, options: 2}
	case n == 2:
		if slots[1].hash {
			layout = atLayout{subsec: 0, unit: -1, options: 1}
		} else {
			layout = atLayout{subsec: 0, unit: 1, options: -1}
		}
	case n == 1:
		if slots[0].hash {
			layout.options = 0
		} else {
			layout.subsec = 0
		}
	}
	return layout, nil
}

// atParams is the strict parameter set Time.at resolves to.
type atParams struct {
	seconds int64
	nanos   uint32
	offset  calendar.Offset
}

func (b *Binding) slotsFor(args []vm.Value) []slot {
	slots := make([]slot, len(args))
	for i, a := range args {
		slots[i] = slot{present: true, hash: b.vm.IsHash(a)}
	}
	return slots
}

// resolveAtArgs normalizes the raw arguments of Time.at.
func (b *Binding) resolveAtArgs(seconds vm.Value, rest []vm.Value) (atParams, error) {
	layout, err := normalizeAtArgs(b.slotsFor(rest))
	if err != nil {
		return atParams{}, err
	}
	pick := func(i int) (vm.Value, bool) {
		if i < 0 {
			return vm.Nil, false
		}
		return rest[i], true
	}

	subsec, hasSubsec := pick(layout.subsec)
	unit, hasUnit := pick(layout.unit)
	subSecs, nanos, err := b.resolveSubsec(subsec, hasSubsec, unit, hasUnit)
	if err != nil {
		return atParams{}, err
	}

	whole, err := b.vm.ImplicitInt(seconds)
	if err != nil {
		return atParams{}, err
	}
	total, ok := addInt64(whole, subSecs)
	if !ok {
		return atParams{}, vm.ArgumentError("Time too large")
	}

	offset := b.LocalOffset()
	if options, ok := pick(layout.options); ok {
		resolved, found, err := b.offsetFromOptions(options)
		if err != nil {
			return atParams{}, err
		}
		if found {
			offset = resolved
		}
	}
	return atParams{seconds: total, nanos: nanos, offset: offset}, nil
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}
