package timext

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
)

// leapDay is 2024-02-29T12:30:45.123456789Z, a Thursday.
var leapDay = time.Date(2024, 2, 29, 12, 30, 45, 123456789, time.UTC)

const leapDayUnix = 1709209845

type fixture struct {
	vm       *vm.VM
	b        *Binding
	warnings *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureIn(t, time.UTC)
}

func newFixtureIn(t *testing.T, local *time.Location) *fixture {
	t.Helper()
	v := vm.NewVM()
	var warnings bytes.Buffer
	v.SetWarningOutput(&warnings)
	b, err := Install(v, Options{Clock: calendar.FixedClock{At: leapDay}, Local: local})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	return &fixture{vm: v, b: b, warnings: &warnings}
}

func (f *fixture) send(t *testing.T, recv vm.Value, selector string, args ...vm.Value) vm.Value {
	t.Helper()
	got, err := f.vm.Send(recv, selector, args...)
	if err != nil {
		t.Fatalf("%s failed: %v", selector, err)
	}
	return got
}

func (f *fixture) sendErr(t *testing.T, recv vm.Value, selector string, args ...vm.Value) *vm.RaisedError {
	t.Helper()
	_, err := f.vm.Send(recv, selector, args...)
	var raised *vm.RaisedError
	if !errors.As(err, &raised) {
		t.Fatalf("%s: expected a raised exception, got %v", selector, err)
	}
	return raised
}

func (f *fixture) expectRaise(t *testing.T, class *vm.Class, msg string, recv vm.Value, selector string, args ...vm.Value) {
	t.Helper()
	raised := f.sendErr(t, recv, selector, args...)
	if raised.Class != class {
		t.Fatalf("%s: expected %s, got %s (%s)", selector, class.Name, raised.Class.Name, raised.Message)
	}
	if msg != "" && raised.Message != msg {
		t.Errorf("%s: expected message %q, got %q", selector, msg, raised.Message)
	}
}

// at calls Time.at with args.
func (f *fixture) at(t *testing.T, args ...vm.Value) vm.Value {
	t.Helper()
	return f.send(t, f.b.ClassValue(), "at", args...)
}

func (f *fixture) integer(t *testing.T, recv vm.Value, selector string, args ...vm.Value) int64 {
	t.Helper()
	n, ok := f.vm.IntegerValue(f.send(t, recv, selector, args...))
	if !ok {
		t.Fatalf("%s: expected an Integer", selector)
	}
	return n
}

func (f *fixture) flag(t *testing.T, recv vm.Value, selector string, args ...vm.Value) bool {
	t.Helper()
	got := f.send(t, recv, selector, args...)
	if !got.IsBool() {
		t.Fatalf("%s: expected a boolean, got %s", selector, f.vm.TypeName(got))
	}
	return got.Bool()
}

func (f *fixture) sym(name string) vm.Value {
	return f.vm.Symbols.SymbolValue(name)
}

func (f *fixture) str(s string) vm.Value {
	return f.vm.NewString(s)
}

func (f *fixture) opts(in vm.Value) vm.Value {
	h := f.vm.NewHash()
	f.vm.HashSet(h, f.sym("in"), in)
	return h
}

func (f *fixture) mustUnbox(t *testing.T, v vm.Value) calendar.Time {
	t.Helper()
	got, err := f.b.Unbox(v)
	if err != nil {
		t.Fatalf("Unbox failed: %v", err)
	}
	return got
}

func num(n int64) vm.Value { return vm.FromSmallInt(n) }

func fl(x float64) vm.Value { return vm.FromFloat64(x) }
