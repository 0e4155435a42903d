package main

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/calebcase/flashlibc"
	"github.com/calebcase/flashlibc/alloc"
	"github.com/calebcase/flashlibc/config"
	"github.com/calebcase/flashlibc/heap"
)

type command struct {
	cfg     config.Config
	libc    *flashlibc.Libc
	heap    *heap.Linear
	scratch *heap.Scratch
	out     io.Writer
}

// number parses all of s as a number.
func (c *command) number(s string) (float64, error) {
	v, n := c.libc.Strtod(s)
	if n == 0 || n != len(s) {
		return 0, Error.New("invalid number: %q", s)
	}

	return v, nil
}

// text formats v into a buffer sized by a first measuring call.
func (c *command) text(v float64, prec int) string {
	buf := make([]byte, c.libc.DoubleToStr(nil, v, prec)+1)
	n := c.libc.DoubleToStr(buf, v, prec)

	return string(buf[:n])
}

func (c *command) parse(args []string) error {
	if len(args) == 0 {
		return Error.New("parse: no input")
	}

	for _, arg := range args {
		v, n := c.libc.Strtod(arg)

		fmt.Fprintf(c.out, "%q\t%s\tconsumed=%d rest=%q\n", arg, c.text(v, c.cfg.Precision), n, arg[n:])
	}

	return nil
}

func (c *command) format(args []string) (err error) {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	prec := fs.Int("p", c.cfg.Precision, "precision")

	err = fs.Parse(args)
	if err != nil {
		return Error.Wrap(err)
	}

	if fs.NArg() == 0 {
		return Error.New("format: no input")
	}

	for _, arg := range fs.Args() {
		v, err := c.number(arg)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out, c.text(v, *prec))
	}

	return nil
}

// alloc allocates each size as a scratch block. Blocks that don't fit force a
// reclamation pass which releases the earlier ones.
func (c *command) alloc(args []string) error {
	if len(args) == 0 {
		return Error.New("alloc: no sizes")
	}

	for _, arg := range args {
		v, err := c.number(arg)
		if err != nil {
			return err
		}

		if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
			return Error.New("invalid size: %q", arg)
		}

		p := c.scratch.Track(c.libc.Malloc(uint32(v)))
		if p == alloc.Null {
			fmt.Fprintf(c.out, "%s\tnull\n", arg)
			continue
		}

		fmt.Fprintf(c.out, "%s\t%#x\n", arg, uint32(p))
	}

	stats := c.heap.Stats()
	fmt.Fprintf(c.out,
		"pages=%d break=%d live=%d free=%d\n",
		stats.Pages,
		stats.Break,
		stats.Live,
		stats.FreeBlocks,
	)

	return nil
}

func (c *command) strerror(args []string) error {
	for _, arg := range args {
		v, err := c.number(arg)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out, c.libc.Strerror(int(v)))
	}

	return nil
}
