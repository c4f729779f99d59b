package timext

import (
	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// ---------------------------------------------------------------------------
// Primitive registration
// ---------------------------------------------------------------------------

func (b *Binding) def0(name string, fn func(self vm.Value) (vm.Value, error)) {
	b.Class().AddMethod0(b.vm.Symbols, name, func(_ *vm.VM, self vm.Value) vm.Value {
		return b.result(fn(self))
	})
}

func (b *Binding) def1(name string, fn func(self, arg vm.Value) (vm.Value, error)) {
	b.Class().AddMethod1(b.vm.Symbols, name, func(_ *vm.VM, self, arg vm.Value) vm.Value {
		return b.result(fn(self, arg))
	})
}

func (b *Binding) stub(name string, lo, hi int) {
	b.Class().AddPrimitiveMethod(b.vm.Symbols, name, lo, hi, func(_ *vm.VM, _ vm.Value, _ []vm.Value) vm.Value {
		return b.result(notImplemented("Time#" + name)())
	})
}

func (b *Binding) classStub(name string) {
	b.Class().AddClassPrimitiveMethod(b.vm.Symbols, name, 0, -1, func(_ *vm.VM, _ vm.Value, _ []vm.Value) vm.Value {
		return b.result(notImplemented("Time." + name)())
	})
}

func (b *Binding) registerClassPrimitives() {
	c := b.Class()
	s := b.vm.Symbols

	c.AddClassMethod0(s, "now", func(_ *vm.VM, _ vm.Value) vm.Value {
		return b.result(b.now())
	})
	c.AddClassPrimitiveMethod(s, "at", 1, 4, func(_ *vm.VM, _ vm.Value, args []vm.Value) vm.Value {
		return b.result(b.at(args))
	})
	c.AddClassMethod0(s, "allocate", func(_ *vm.VM, _ vm.Value) vm.Value {
		return b.result(b.allocate())
	})
	c.AddClassPrimitiveMethod(s, "new", 0, -1, func(_ *vm.VM, _ vm.Value, args []vm.Value) vm.Value {
		return b.result(b.newTime(args))
	})
	c.AddClassMethod1(s, "_load", func(_ *vm.VM, _ vm.Value, payload vm.Value) vm.Value {
		return b.result(b.load(payload))
	})

	for _, name := range []string{"utc", "gm", "mktime", "local"} {
		b.classStub(name)
	}
}

func (b *Binding) registerInstancePrimitives() {
	c := b.Class()
	s := b.vm.Symbols
	def0 := b.def0

	// Conversions
	def0("to_i", b.toInt)
	c.Alias(s, "tv_sec", "to_i")
	def0("to_f", b.toFloat)
	def0("inspect", b.toString)
	c.Alias(s, "to_s", "inspect")
	def0("_dump", b.dump)

	// Comparison
	b.def1("<=>", b.cmp)
	b.def1("<", b.ordered(func(c int) bool { return c < 0 }))
	b.def1("<=", b.ordered(func(c int) bool { return c <= 0 }))
	b.def1(">", b.ordered(func(c int) bool { return c > 0 }))
	b.def1(">=", b.ordered(func(c int) bool { return c >= 0 }))
	b.def1("eql?", b.eql)
	c.Alias(s, "==", "eql?")

	// Copying and mutation
	b.def1("initialize_copy", b.initializeCopy)
	def0("dup", b.dup)
	c.Alias(s, "clone", "dup")
	def0("utc", b.mutateToUTC)
	c.Alias(s, "gmtime", "utc")
	def0("getutc", b.asUTC)
	c.Alias(s, "getgm", "getutc")

	// Arithmetic
	b.def1("+", b.plus)
	b.def1("-", b.minus)
	def0("succ", b.succ)

	// Fields
	def0("sec", b.field(intField((*calendar.Time).Second)))
	def0("min", b.field(intField((*calendar.Time).Minute)))
	def0("hour", b.field(intField((*calendar.Time).Hour)))
	def0("day", b.field(intField((*calendar.Time).Day)))
	c.Alias(s, "mday", "day")
	def0("mon", b.field(intField((*calendar.Time).Month)))
	c.Alias(s, "month", "mon")
	def0("year", b.field(func(t *calendar.Time) vm.Value { return b.vm.NewInteger(t.Year()) }))
	def0("wday", b.field(intField((*calendar.Time).DayOfWeek)))
	def0("yday", b.field(intField((*calendar.Time).DayOfYear)))
	def0("usec", b.field(func(t *calendar.Time) vm.Value { return vm.FromSmallInt(int64(t.Microseconds())) }))
	c.Alias(s, "tv_usec", "usec")
	def0("nsec", b.field(func(t *calendar.Time) vm.Value { return vm.FromSmallInt(int64(t.Nanoseconds())) }))
	c.Alias(s, "tv_nsec", "nsec")

	// Flags
	def0("isdst", b.field(boolField((*calendar.Time).IsDST)))
	c.Alias(s, "dst?", "isdst")
	def0("leap_year?", b.field(boolField((*calendar.Time).IsLeapYear)))
	def0("utc?", b.field(boolField((*calendar.Time).IsUTC)))
	c.Alias(s, "gmt?", "utc?")
	def0("sunday?", b.field(boolField((*calendar.Time).IsSunday)))
	def0("monday?", b.field(boolField((*calendar.Time).IsMonday)))
	def0("tuesday?", b.field(boolField((*calendar.Time).IsTuesday)))
	def0("wednesday?", b.field(boolField((*calendar.Time).IsWednesday)))
	def0("thursday?", b.field(boolField((*calendar.Time).IsThursday)))
	def0("friday?", b.field(boolField((*calendar.Time).IsFriday)))
	def0("saturday?", b.field(boolField((*calendar.Time).IsSaturday)))

	// Not implemented
	b.stub("initialize", 0, 7)
	b.stub("to_r", 0, 0)
	b.stub("hash", 0, 0)
	b.stub("localtime", 0, 1)
	b.stub("getlocal", 0, 1)
	b.stub("asctime", 0, 0)
	b.stub("ctime", 0, 0)
	b.stub("to_a", 0, 0)
	b.stub("round", 0, 1)
	b.stub("zone", 0, 0)
	b.stub("utc_offset", 0, 0)
	b.stub("gmt_offset", 0, 0)
	b.stub("gmtoff", 0, 0)
	b.stub("subsec", 0, 0)
	b.stub("strftime", 1, 1)
}
