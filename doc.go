// Package flashlibc replaces a handful of C library routines for targets
// where the platform versions are missing, too large, or placed in memory the
// program can't spare.
//
// The replacements are small and approximate: number formatting truncates
// instead of rounding, parsing is not correctly rounded, and error text only
// carries the numeric code.
//
// # Packages
//
//	flashlibc/     Libc facade binding the entry points to one runtime
//	├── magnitude/ powers of ten and log10 from exp and ln
//	├── decimal/   text to float64 and float64 to text
//	├── alloc/     collect-and-retry allocation policy
//	├── heap/      first fit heap in a wazero linear memory
//	├── printf/    sprintf family over a pluggable core
//	├── fault/     abort and error text stubs
//	└── config/    command settings
//
// # Usage
//
//	h, err := heap.New(ctx, 1, 16)
//	if err != nil {
//	    return err
//	}
//	defer h.Close(ctx)
//
//	c := flashlibc.New(h, heap.NewScratch(h), nil)
//
//	p := c.Malloc(64)
//	v, n := c.Strtod("  -3.5abc") // -3.5, 6
package flashlibc
