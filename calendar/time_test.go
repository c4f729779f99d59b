package calendar

import (
	"errors"
	"math"
	"testing"
	"time"
)

func mustNew(t *testing.T, sec int64, nsec uint32, offset Offset) Time {
	t.Helper()
	tm, err := New(sec, nsec, offset)
	if err != nil {
		t.Fatalf("New(%d, %d) failed: %v", sec, nsec, err)
	}
	return tm
}

func TestNewCarriesNanoseconds(t *testing.T) {
	tm := mustNew(t, 10, 2_500_000_000, UTC())
	if tm.Unix() != 12 || tm.Nanoseconds() != 500_000_000 {
		t.Errorf("expected (12, 500000000), got (%d, %d)", tm.Unix(), tm.Nanoseconds())
	}
}

func TestNewOutOfRange(t *testing.T) {
	_, err := New(MaxSeconds, 1_000_000_000, UTC())
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	_, err = New(math.MinInt64, 0, UTC())
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestFieldDecomposition(t *testing.T) {
	// 2024-02-29 13:45:30.123456789 UTC, a Thursday.
	tm := mustNew(t, 1709214330, 123456789, UTC())

	checks := []struct {
		name string
		got  int64
		want int64
	}{
		{"year", tm.Year(), 2024},
		{"month", int64(tm.Month()), 2},
		{"day", int64(tm.Day()), 29},
		{"hour", int64(tm.Hour()), 13},
		{"minute", int64(tm.Minute()), 45},
		{"second", int64(tm.Second()), 30},
		{"wday", int64(tm.DayOfWeek()), 4},
		{"yday", int64(tm.DayOfYear()), 60},
		{"usec", int64(tm.Microseconds()), 123456},
		{"nsec", int64(tm.Nanoseconds()), 123456789},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, c.got)
		}
	}
	if !tm.IsLeapYear() {
		t.Error("2024 should be a leap year")
	}
	if !tm.IsThursday() {
		t.Error("expected Thursday")
	}
}

func TestFixedOffsetShiftsFields(t *testing.T) {
	off, err := Fixed(3600)
	if err != nil {
		t.Fatal(err)
	}
	tm := mustNew(t, 0, 0, off)
	if tm.Hour() != 1 {
		t.Errorf("expected hour 1, got %d", tm.Hour())
	}
	if tm.IsUTC() {
		t.Error("fixed offset should not be UTC")
	}
}

func TestWeekdayPredicatesExclusive(t *testing.T) {
	for day := int64(0); day < 14; day++ {
		tm := mustNew(t, day*86400, 0, UTC())
		preds := []bool{
			tm.IsSunday(), tm.IsMonday(), tm.IsTuesday(), tm.IsWednesday(),
			tm.IsThursday(), tm.IsFriday(), tm.IsSaturday(),
		}
		count := 0
		for _, p := range preds {
			if p {
				count++
			}
		}
		if count != 1 {
			t.Errorf("day %d: expected exactly one weekday predicate, got %d", day, count)
		}
	}
}

func TestDSTInZone(t *testing.T) {
	ny, err := Zone("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// 2023-07-01T12:00:00Z and 2023-01-01T12:00:00Z
	summer := mustNew(t, 1688212800, 0, ny)
	winter := mustNew(t, 1672574400, 0, ny)
	if !summer.IsDST() {
		t.Error("expected DST in July")
	}
	if winter.IsDST() {
		t.Error("expected no DST in January")
	}
}

func TestToUTCPreservesInstant(t *testing.T) {
	off, _ := Fixed(-18000)
	tm := mustNew(t, 1000, 42, off)
	utc := tm.ToUTC()

	if !utc.IsUTC() {
		t.Error("expected UTC")
	}
	if utc.Unix() != 1000 || utc.Nanoseconds() != 42 {
		t.Errorf("instant changed: (%d, %d)", utc.Unix(), utc.Nanoseconds())
	}
	if tm.IsUTC() {
		t.Error("ToUTC must not modify the receiver")
	}

	tm.SetUTC()
	if !tm.IsUTC() {
		t.Error("SetUTC should switch in place")
	}
}

func TestCompareAndEqual(t *testing.T) {
	a := mustNew(t, 5, 100, UTC())
	b := mustNew(t, 5, 200, UTC())
	c := mustNew(t, 6, 0, UTC())

	if a.Compare(b) != -1 || b.Compare(a) != 1 || b.Compare(c) != -1 {
		t.Error("ordering over (sec, nsec) broken")
	}
	off, _ := Fixed(7200)
	if a.Compare(a.In(off)) != 0 || !a.Equal(a.In(off)) {
		t.Error("offset must not participate in ordering")
	}
}

func TestCheckedArithmeticRoundTrip(t *testing.T) {
	base := mustNew(t, 1_600_000_000, 999_999_999, UTC())

	for _, n := range []int64{0, 1, -1, 86400, -1_600_000_001} {
		sum, err := base.CheckedAddInt(n)
		if err != nil {
			t.Fatalf("add %d: %v", n, err)
		}
		back, err := sum.CheckedSubInt(n)
		if err != nil {
			t.Fatalf("sub %d: %v", n, err)
		}
		if !back.Equal(base) {
			t.Errorf("int %d: round trip gave (%d, %d)", n, back.Unix(), back.Nanoseconds())
		}
	}

	for _, f := range []float64{0.5, 1.25, -0.75, 3.000000001, -1e6 - 0.5} {
		sum, err := base.CheckedAddFloat(f)
		if err != nil {
			t.Fatalf("add %v: %v", f, err)
		}
		if sum.Nanoseconds() >= NanosPerSecond {
			t.Fatalf("add %v: nanoseconds not normalized: %d", f, sum.Nanoseconds())
		}
		back, err := sum.CheckedSubFloat(f)
		if err != nil {
			t.Fatalf("sub %v: %v", f, err)
		}
		if !back.Equal(base) {
			t.Errorf("float %v: round trip gave (%d, %d)", f, back.Unix(), back.Nanoseconds())
		}
	}
}

func TestCheckedAddFloatCarries(t *testing.T) {
	base := mustNew(t, 0, 800_000_000, UTC())
	sum, err := base.CheckedAddFloat(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Unix() != 1 || sum.Nanoseconds() != 300_000_000 {
		t.Errorf("expected (1, 300000000), got (%d, %d)", sum.Unix(), sum.Nanoseconds())
	}

	diff, err := base.CheckedSubFloat(1.0)
	if err != nil {
		t.Fatal(err)
	}
	if diff.Unix() != -1 || diff.Nanoseconds() != 800_000_000 {
		t.Errorf("expected (-1, 800000000), got (%d, %d)", diff.Unix(), diff.Nanoseconds())
	}
}

func TestCheckedArithmeticOverflow(t *testing.T) {
	top := mustNew(t, MaxSeconds, 0, UTC())
	bottom := mustNew(t, MinSeconds, 0, UTC())

	cases := []struct {
		name string
		run  func() (Time, error)
	}{
		{"add int past max", func() (Time, error) { return top.CheckedAddInt(1) }},
		{"add max int64", func() (Time, error) { return top.CheckedAddInt(math.MaxInt64) }},
		{"sub int past min", func() (Time, error) { return bottom.CheckedSubInt(1) }},
		{"sub min int64", func() (Time, error) { return bottom.CheckedSubInt(math.MinInt64) }},
		{"add float past max", func() (Time, error) { return top.CheckedAddFloat(1.5) }},
		{"add huge float", func() (Time, error) { return top.CheckedAddFloat(1e300) }},
		{"sub huge float", func() (Time, error) { return bottom.CheckedSubFloat(1e300) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.run()
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("expected ErrOverflow, got %v", err)
			}
		})
	}
}

func TestCheckedAddFloatNonFinite(t *testing.T) {
	tm := mustNew(t, 0, 0, UTC())
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := tm.CheckedAddFloat(f)
		if !errors.Is(err, ErrNonFinite) {
			t.Errorf("%v: expected ErrNonFinite, got %v", f, err)
		}
	}
}

func TestSub(t *testing.T) {
	a := mustNew(t, 10, 500_000_000, UTC())
	b := mustNew(t, 8, 750_000_000, UTC())
	if got := a.Sub(b); got != 1.75 {
		t.Errorf("expected 1.75, got %v", got)
	}
	if got := b.Sub(a); got != -1.75 {
		t.Errorf("expected -1.75, got %v", got)
	}
}

func TestNowUsesClock(t *testing.T) {
	at := time.Date(2020, 5, 17, 8, 30, 0, 250, time.UTC)
	tm := Now(FixedClock{At: at}, UTC())
	if tm.Unix() != at.Unix() || tm.Nanoseconds() != 250 {
		t.Errorf("expected %d.%d, got %d.%d", at.Unix(), 250, tm.Unix(), tm.Nanoseconds())
	}
}

func TestExtremeYears(t *testing.T) {
	far := mustNew(t, MaxSeconds, 0, UTC())
	if far.Year() < 100_000_000_000 {
		t.Errorf("expected a very distant year, got %d", far.Year())
	}
	past := mustNew(t, MinSeconds, 0, UTC())
	if past.Year() > -100_000_000_000 {
		t.Errorf("expected a very distant past year, got %d", past.Year())
	}
}
