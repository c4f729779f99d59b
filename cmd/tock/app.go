package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/manifest"
	"github.com/chazu/tock/snapshot"
	"github.com/chazu/tock/timext"
	"github.com/chazu/tock/vm"
	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// app is one CLI invocation: a VM with Time installed plus configuration.
type app struct {
	m     *manifest.Manifest
	vm    *vm.VM
	time  *timext.Binding
	local *time.Location
	clock calendar.Clock
	out   io.Writer
}

func newApp(m *manifest.Manifest, out io.Writer) (*app, error) {
	return newAppWithClock(m, out, calendar.SystemClock{})
}

func newAppWithClock(m *manifest.Manifest, out io.Writer, clock calendar.Clock) (*app, error) {
	loc, err := m.Location()
	if err != nil {
		return nil, err
	}

	vmInst := vm.NewVM()
	vmInst.SetWarningOutput(os.Stderr)
	vmInst.SetWarnings(m.Time.Warnings)

	binding, err := timext.Install(vmInst, timext.Options{Clock: clock, Local: loc})
	if err != nil {
		return nil, err
	}
	return &app{m: m, vm: vmInst, time: binding, local: loc, clock: clock, out: out}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "now":
		return a.runNow()
	case "at":
		return a.runAt(args)
	case "send":
		return a.runSend(args)
	case "save":
		return a.runSave(ctx, args)
	case "load":
		return a.runLoad(ctx, args)
	case "show":
		return a.runShow(ctx)
	default:
		return fmt.Errorf("unknown command %q (see tock -h)", cmd)
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (a *app) runNow() error {
	v, err := a.vm.Send(a.time.ClassValue(), "now")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render(v))
	return nil
}

func (a *app) runAt(args []string) error {
	fs := flag.NewFlagSet("at", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	in := fs.String("in", "", "Offset: '+HH:MM', 'UTC', a military letter, a zone name or seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 || len(rest) > 3 {
		return fmt.Errorf("usage: tock at [-in offset] <seconds> [subsec [unit]]")
	}

	var callArgs []vm.Value
	for i, arg := range rest {
		if i == 2 {
			callArgs = append(callArgs, a.vm.Symbols.SymbolValue(arg))
			continue
		}
		n, err := a.parseNumber(arg)
		if err != nil {
			return err
		}
		callArgs = append(callArgs, n)
	}
	if *in != "" {
		callArgs = append(callArgs, a.offsetOptions(*in))
	}

	v, err := a.vm.Send(a.time.ClassValue(), "at", callArgs...)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render(v))
	return nil
}

func (a *app) runSend(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: tock send <seconds> <selector> [arg]")
	}
	recv, err := a.timeAt(args[0])
	if err != nil {
		return err
	}

	var sendArgs []vm.Value
	if len(args) == 3 {
		arg, err := a.parseNumber(args[2])
		if err != nil {
			return err
		}
		sendArgs = append(sendArgs, arg)
	}

	v, err := a.vm.Send(recv, args[1], sendArgs...)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render(v))
	return nil
}

func (a *app) runSave(ctx context.Context, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("usage: tock save [key] [seconds]")
	}
	var key string
	if len(args) > 0 {
		key = args[0]
	}

	var v vm.Value
	var err error
	if len(args) == 2 {
		v, err = a.timeAt(args[1])
	} else {
		v, err = a.vm.Send(a.time.ClassValue(), "now")
	}
	if err != nil {
		return err
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	key, err = store.SaveValue(ctx, a.time, key, v)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, key)
	return nil
}

func (a *app) runLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tock load <key>")
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	v, err := store.LoadValue(ctx, a.time, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render(v))
	return nil
}

func (a *app) runShow(ctx context.Context) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s snapshot(s) in %s\n", humanize.Comma(int64(len(entries))), store.Path())
	now := a.clock.Now()
	for _, e := range entries {
		fmt.Fprintf(a.out, "  %-20s %s  saved %s\n", e.Key, formatTime(e.Time), humanize.RelTime(e.SavedAt, now, "ago", "from now"))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (a *app) openStore(ctx context.Context) (*snapshot.Store, error) {
	return snapshot.Open(ctx, a.m.StorePath(), snapshot.Options{Local: a.local, Clock: a.clock})
}

func (a *app) timeAt(seconds string) (vm.Value, error) {
	n, err := a.parseNumber(seconds)
	if err != nil {
		return vm.Nil, err
	}
	return a.vm.Send(a.time.ClassValue(), "at", n)
}

// parseNumber reads an Integer, falling back to a Float.
func (a *app) parseNumber(s string) (vm.Value, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return a.vm.NewInteger(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return vm.Nil, fmt.Errorf("not a number: %q", s)
	}
	return vm.FromFloat64(f), nil
}

// offsetOptions builds {in: offset}. Numeric offsets are passed as seconds.
func (a *app) offsetOptions(in string) vm.Value {
	var value vm.Value
	if n, err := strconv.ParseInt(in, 10, 64); err == nil {
		value = a.vm.NewInteger(n)
	} else {
		value = a.vm.NewString(in)
	}
	opts := a.vm.NewHash()
	a.vm.HashSet(opts, a.vm.Symbols.SymbolValue("in"), value)
	return opts
}

func (a *app) render(v vm.Value) string {
	if t, err := a.time.Unbox(v); err == nil {
		return formatTime(t)
	}
	if n, ok := a.vm.IntegerValue(v); ok {
		return strconv.FormatInt(n, 10)
	}
	if s, ok := a.vm.StringValue(v); ok {
		return strconv.Quote(s)
	}
	switch {
	case v.IsFloat():
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case v.IsBool():
		return strconv.FormatBool(v.Bool())
	case v == vm.Nil:
		return "nil"
	}
	return "#<" + a.vm.TypeName(v) + ">"
}

// formatTime renders t with nanosecond precision and its offset.
func formatTime(t calendar.Time) string {
	g := t.Go()
	s := strftime.Format("%Y-%m-%d %H:%M:%S", g) + fmt.Sprintf(".%09d ", t.Nanoseconds()) + strftime.Format("%z", g)
	switch t.Offset().Kind() {
	case calendar.OffsetUTC:
		return s + " UTC"
	case calendar.OffsetZone, calendar.OffsetLocal:
		return s + " " + t.Offset().ZoneName()
	default:
		return s
	}
}
