// Tock CLI - drives the Time class from the command line
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chazu/tock/manifest"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	configDir := flag.String("C", ".", "Directory to search upwards for tock.toml")
	zone := flag.String("zone", "", "Local zone override (e.g. 'Europe/Berlin')")
	storePath := flag.String("store", "", "Snapshot database path (overrides [store] path)")
	warnings := flag.Bool("W", false, "Print VM warnings to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tock [options] <command> [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  now                                 Print Time.now\n")
		fmt.Fprintf(os.Stderr, "  at <seconds> [subsec [unit]]        Print Time.at (use -in for an offset)\n")
		fmt.Fprintf(os.Stderr, "  send <seconds> <selector> [arg]     Send a message to Time.at(seconds)\n")
		fmt.Fprintf(os.Stderr, "  save [key] [seconds]                Store a time (now if seconds omitted)\n")
		fmt.Fprintf(os.Stderr, "  load <key>                          Print a stored time\n")
		fmt.Fprintf(os.Stderr, "  show                                List stored times\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tock at 1709209845 500 millisecond -in +09:00\n")
		fmt.Fprintf(os.Stderr, "  tock send 0 + 86400\n")
		fmt.Fprintf(os.Stderr, "  tock save launch && tock show\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	m, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	}
	if *zone != "" {
		m.Time.Zone = *zone
	}
	if *storePath != "" {
		m.Store.Path = *storePath
	}
	if *warnings {
		m.Time.Warnings = true
	}

	verbosity := m.Log.Verbosity
	if *verbose {
		verbosity += 2
	}
	commonlog.Configure(verbosity, m.LogFile())

	app, err := newApp(m, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
