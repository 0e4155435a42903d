package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/calebcase/flashlibc"
	"github.com/calebcase/flashlibc/alloc"
	"github.com/calebcase/flashlibc/config"
	"github.com/calebcase/flashlibc/fault"
	"github.com/calebcase/flashlibc/heap"
)

// Error is the error class for the command.
var Error = errs.Class("flashlibc")

const usage = `usage: flashlibc [-config file] <command> [args]

commands:
  parse <text>...           parse numbers and show the consumed length
  format [-p prec] <num>... format numbers
  alloc <size>...           allocate blocks in a bounded heap
  strerror <code>...        show error text
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "flashlibc: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) (err error) {
	fs := flag.NewFlagSet("flashlibc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfgPath := fs.String("config", "", "config file (.toml, .yaml or .yml)")

	err = fs.Parse(args)
	if err != nil {
		return Error.New("%v\n%s", err, usage)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			return err
		}
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	alloc.SetLogger(log)
	heap.SetLogger(log)
	fault.SetLogger(log)

	rest := fs.Args()
	if len(rest) == 0 {
		return Error.New("missing command\n%s", usage)
	}

	h, err := heap.New(ctx, cfg.HeapPages, cfg.HeapLimitPages)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, h.Close(ctx)) }()

	scratch := heap.NewScratch(h)
	c := flashlibc.New(h, scratch, nil)

	cmd := &command{
		cfg:     cfg,
		libc:    c,
		heap:    h,
		scratch: scratch,
		out:     out,
	}

	log.Debug("running", zap.String("command", rest[0]), zap.Strings("args", rest[1:]))

	switch rest[0] {
	case "parse":
		return cmd.parse(rest[1:])
	case "format":
		return cmd.format(rest[1:])
	case "alloc":
		return cmd.alloc(rest[1:])
	case "strerror":
		return cmd.strerror(rest[1:])
	}

	return Error.New("unknown command: %q\n%s", rest[0], usage)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	zcfg.Level = lvl

	log, err := zcfg.Build()
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return log, nil
}
