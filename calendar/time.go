// Package calendar is the native timestamp library behind the VM's Time
// class.
//
// A Time is a signed count of seconds since the Unix epoch, a sub-second
// nanosecond component in [0, 1e9), and an Offset used to decompose the
// instant into wall-clock fields. All arithmetic is overflow checked and
// reports ErrOverflow instead of wrapping.
package calendar

import (
	"math"
	"time"
)

const (
	// NanosPerSecond is the exclusive upper bound of the sub-second field.
	NanosPerSecond = 1_000_000_000

	// MaxSeconds and MinSeconds bound the representable instants. The range
	// keeps field decomposition well defined.
	MaxSeconds int64 = 1<<62 - 1
	MinSeconds int64 = -(1 << 62)
)

// Time is an instant with an attached offset.
type Time struct {
	sec    int64
	nsec   uint32
	offset Offset
}

// New builds a Time from a Unix timespec. nsec values of a second or more
// carry into sec.
func New(sec int64, nsec uint32, offset Offset) (Time, error) {
	carry := int64(nsec / NanosPerSecond)
	nsec %= NanosPerSecond
	s, ok := addInt64(sec, carry)
	if !ok || s > MaxSeconds || s < MinSeconds {
		return Time{}, outOfRangeError()
	}
	return Time{sec: s, nsec: nsec, offset: offset}, nil
}

// Now reads the clock and attaches offset.
func Now(c Clock, offset Offset) Time {
	t := c.Now()
	return Time{sec: t.Unix(), nsec: uint32(t.Nanosecond()), offset: offset}
}

// FromGo converts a Go time, keeping its instant and using offset.
func FromGo(t time.Time, offset Offset) Time {
	return Time{sec: t.Unix(), nsec: uint32(t.Nanosecond()), offset: offset}
}

// Go returns the instant as a Go time in the offset's location.
func (t Time) Go() time.Time {
	return time.Unix(t.sec, int64(t.nsec)).In(t.offset.Location())
}

// Unix returns the whole seconds since the epoch.
func (t Time) Unix() int64 { return t.sec }

// Offset returns the attached offset.
func (t Time) Offset() Offset { return t.offset }

// ToInt returns the whole seconds since the epoch, truncated toward
// negative infinity.
func (t Time) ToInt() int64 { return t.sec }

// ToFloat returns the seconds since the epoch as a float.
func (t Time) ToFloat() float64 {
	return float64(t.sec) + float64(t.nsec)/NanosPerSecond
}

// Nanoseconds returns the sub-second component in nanoseconds.
func (t Time) Nanoseconds() uint32 { return t.nsec }

// Microseconds returns the sub-second component in whole microseconds.
func (t Time) Microseconds() uint32 { return t.nsec / 1000 }

// ---------------------------------------------------------------------------
// Field decomposition
// ---------------------------------------------------------------------------

func (t Time) Year() int64 { return int64(t.Go().Year()) }

// Month is 1-based.
func (t Time) Month() int { return int(t.Go().Month()) }

func (t Time) Day() int    { return t.Go().Day() }
func (t Time) Hour() int   { return t.Go().Hour() }
func (t Time) Minute() int { return t.Go().Minute() }
func (t Time) Second() int { return t.Go().Second() }

// DayOfWeek is 0 for Sunday through 6 for Saturday.
func (t Time) DayOfWeek() int { return int(t.Go().Weekday()) }

// DayOfYear is 1-based.
func (t Time) DayOfYear() int { return t.Go().YearDay() }

// IsDST reports whether the offset's zone observes daylight saving time at
// this instant. UTC and fixed offsets never do.
func (t Time) IsDST() bool { return t.Go().IsDST() }

// IsLeapYear reports whether the wall-clock year is a Gregorian leap year.
func (t Time) IsLeapYear() bool {
	y := t.Year()
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func (t Time) IsUTC() bool { return t.offset.IsUTC() }

func (t Time) IsSunday() bool    { return t.DayOfWeek() == 0 }
func (t Time) IsMonday() bool    { return t.DayOfWeek() == 1 }
func (t Time) IsTuesday() bool   { return t.DayOfWeek() == 2 }
func (t Time) IsWednesday() bool { return t.DayOfWeek() == 3 }
func (t Time) IsThursday() bool  { return t.DayOfWeek() == 4 }
func (t Time) IsFriday() bool    { return t.DayOfWeek() == 5 }
func (t Time) IsSaturday() bool  { return t.DayOfWeek() == 6 }

// ---------------------------------------------------------------------------
// Offset conversion
// ---------------------------------------------------------------------------

// ToUTC returns the same instant with the UTC offset.
func (t Time) ToUTC() Time {
	t.offset = UTC()
	return t
}

// SetUTC switches t to the UTC offset in place.
func (t *Time) SetUTC() {
	t.offset = UTC()
}

// In returns the same instant with another offset.
func (t Time) In(offset Offset) Time {
	t.offset = offset
	return t
}

// ---------------------------------------------------------------------------
// Ordering
// ---------------------------------------------------------------------------

// Compare orders by (seconds, nanoseconds); offsets do not participate.
func (t Time) Compare(u Time) int {
	switch {
	case t.sec < u.sec:
		return -1
	case t.sec > u.sec:
		return 1
	case t.nsec < u.nsec:
		return -1
	case t.nsec > u.nsec:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both denote the same instant.
func (t Time) Equal(u Time) bool {
	return t.sec == u.sec && t.nsec == u.nsec
}

// Sub returns t - u in seconds.
func (t Time) Sub(u Time) float64 {
	// Both lie in [MinSeconds, MaxSeconds], so the difference fits.
	ds := t.sec - u.sec
	dn := int64(t.nsec) - int64(u.nsec)
	return float64(ds) + float64(dn)/NanosPerSecond
}

// ---------------------------------------------------------------------------
// Checked arithmetic
// ---------------------------------------------------------------------------

// CheckedAddInt adds whole seconds.
func (t Time) CheckedAddInt(seconds int64) (Time, error) {
	return t.addParts(seconds, 0)
}

// CheckedSubInt subtracts whole seconds.
func (t Time) CheckedSubInt(seconds int64) (Time, error) {
	if seconds == math.MinInt64 {
		return Time{}, overflowError()
	}
	return t.addParts(-seconds, 0)
}

// CheckedAddFloat adds fractional seconds, rounding to the nanosecond.
func (t Time) CheckedAddFloat(seconds float64) (Time, error) {
	whole, nanos, err := splitSeconds(seconds)
	if err != nil {
		return Time{}, err
	}
	return t.addParts(whole, nanos)
}

// CheckedSubFloat subtracts fractional seconds, rounding to the nanosecond.
func (t Time) CheckedSubFloat(seconds float64) (Time, error) {
	whole, nanos, err := splitSeconds(-seconds)
	if err != nil {
		return Time{}, err
	}
	return t.addParts(whole, nanos)
}

// addParts adds whole seconds and nanos in [-1e9, 1e9], carrying the
// nanosecond field back into [0, 1e9).
func (t Time) addParts(seconds, nanos int64) (Time, error) {
	total := int64(t.nsec) + nanos
	carry := total / NanosPerSecond
	rem := total % NanosPerSecond
	if rem < 0 {
		rem += NanosPerSecond
		carry--
	}

	s, ok := addInt64(t.sec, seconds)
	if !ok {
		return Time{}, overflowError()
	}
	s, ok = addInt64(s, carry)
	if !ok || s > MaxSeconds || s < MinSeconds {
		return Time{}, overflowError()
	}
	return Time{sec: s, nsec: uint32(rem), offset: t.offset}, nil
}

// splitSeconds splits f into whole seconds and rounded nanoseconds. The
// split is odd-symmetric: splitSeconds(-f) negates both parts.
func splitSeconds(f float64) (int64, int64, error) {
	switch {
	case math.IsNaN(f):
		return 0, 0, newError(ErrNonFinite, "NaN")
	case math.IsInf(f, 1):
		return 0, 0, newError(ErrNonFinite, "Infinity")
	case math.IsInf(f, -1):
		return 0, 0, newError(ErrNonFinite, "-Infinity")
	}
	whole := math.Trunc(f)
	if whole >= math.MaxInt64 || whole <= math.MinInt64 {
		return 0, 0, overflowError()
	}
	nanos := int64(math.Round((f - whole) * NanosPerSecond))
	return int64(whole), nanos, nil
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}
