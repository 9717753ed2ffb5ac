// nativecall CLI - inspects native callees, runs the bundled extension
// through the bridge and reads back recorded boundary crossings.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"github.com/chazu/nativecall/config"
)

func main() {
	verbose := flag.Int("v", -1, "Log verbosity (overrides nativecall.toml)")
	configDir := flag.String("config", ".", "Directory to search upward for nativecall.toml")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nativecall [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  conventions              List calling conventions and their signatures\n")
		fmt.Fprintf(os.Stderr, "  inspect [-all] <pkg>     Classify a Go package's native callees\n")
		fmt.Fprintf(os.Stderr, "  demo [-trace]            Run the bundled extension through the bridge\n")
		fmt.Fprintf(os.Stderr, "  trace [flags] [journal]  Print recorded boundary crossings\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *verbose >= 0 {
		cfg.Log.Verbosity = *verbose
	}
	configureLogging(cfg)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	out := newPrinter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	switch args[0] {
	case "conventions":
		err = runConventions(out)
	case "inspect":
		err = runInspect(out, args[1:])
	case "demo":
		err = runDemo(out, cfg, args[1:])
	case "trace":
		err = runTrace(out, cfg, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) {
	var path *string
	if p := cfg.LogPath(); p != "" {
		path = &p
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
}
