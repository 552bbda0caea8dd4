// Command schemerepl is a REPL and script runner for the embeddable
// interpreter in package scheme, modeled on the teacher's cmd/*def
// front ends: flag parsing via go-flags, then a run loop.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	pp "github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	scheme "github.com/dataronio/lisp-interpreter"
	"github.com/dataronio/lisp-interpreter/stdlib"
)

var version = "dev"

type options struct {
	Eval    string `short:"e" long:"eval" description:"Evaluate the given source and exit" value-name:"source"`
	GCStats bool   `long:"gc-stats" description:"Print the live heap block count after each script, --eval source, or REPL line"`
	Version bool   `long:"version" description:"Show this version"`
	Help    bool   `long:"help" description:"Show this help"`
}

func parseOptions(args []string) (*options, []string) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...] [script...]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	return &opts, rest
}

func main() {
	opts, scripts := parseOptions(os.Args[1:])

	ctx := scheme.Init()
	defer ctx.Shutdown()
	stdlib.Register(ctx)

	switch {
	case opts.Eval != "":
		runSource(ctx, opts.Eval, opts)
	case len(scripts) > 0:
		for _, path := range scripts {
			v, err := scheme.RunPath(ctx, path, ctx.GlobalEnv())
			if err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			reportGCStats(opts, ctx)
			_ = v
		}
	default:
		repl(ctx, opts)
	}
}

func runSource(ctx *scheme.Context, source string, opts *options) {
	v, err := scheme.Run(ctx, source, ctx.GlobalEnv())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(scheme.Write(v))
	reportGCStats(opts, ctx)
}

// repl reads and evaluates stdin one line at a time, printing a
// prompt only when stdin is a terminal (checked via golang.org/x/term);
// piped input is read line by line too, so each form must fit on one
// line.
func repl(ctx *scheme.Context, opts *options) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	for {
		if interactive {
			fmt.Print("scheme> ")
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := scheme.Run(ctx, line, ctx.GlobalEnv())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(scheme.Write(v))
		reportGCStats(opts, ctx)
	}
}

func reportGCStats(opts *options, ctx *scheme.Context) {
	if !opts.GCStats {
		return
	}
	pp.Println(map[string]int{"heap_live": ctx.HeapLive()})
}
