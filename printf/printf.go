// Package printf provides sprintf style entry points that write into a
// caller owned buffer.
//
// Argument substitution is done by a Core. The default core is fmt with
// floating point %g and %v routed through the decimal package, so the output
// matches what the rest of the library prints.
package printf

import (
	"fmt"
	"io"
	"strings"

	"github.com/calebcase/flashlibc/decimal"
)

// DefaultPrecision is the %g precision when the format gives none.
const DefaultPrecision = 6

// Core expands format with args and appends the result to dst.
type Core interface {
	Format(dst []byte, format string, args []any) []byte
}

// CoreFunc adapts a function to the Core interface.
type CoreFunc func(dst []byte, format string, args []any) []byte

// Format calls f.
func (f CoreFunc) Format(dst []byte, format string, args []any) []byte {
	return f(dst, format, args)
}

// DefaultCore is the fmt backed core.
var DefaultCore Core = CoreFunc(formatDefault)

func formatDefault(dst []byte, format string, args []any) []byte {
	wrapped := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case float64:
			wrapped[i] = Float(v)
		case float32:
			wrapped[i] = Float(v)
		default:
			wrapped[i] = arg
		}
	}

	return fmt.Appendf(dst, format, wrapped...)
}

// Float is a float64 that formats %g, %G and %v with decimal.Format. Other
// verbs fall back to fmt.
type Float float64

// Format implements fmt.Formatter.
func (f Float) Format(s fmt.State, verb rune) {
	switch verb {
	case 'g', 'G', 'v':
	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), float64(f))
		return
	}

	prec, ok := s.Precision()
	if !ok {
		prec = DefaultPrecision
	}

	text := decimal.Format(float64(f), prec)
	if verb == 'G' {
		text = strings.ToUpper(text)
	}

	if s.Flag('+') && !strings.HasPrefix(text, "-") {
		text = "+" + text
	}

	pad := ""
	if w, ok := s.Width(); ok && w > len(text) {
		pad = strings.Repeat(" ", w-len(text))
	}

	if s.Flag('-') {
		_, _ = io.WriteString(s, text+pad)
	} else {
		_, _ = io.WriteString(s, pad+text)
	}
}

// Printer writes formatted text into byte buffers.
type Printer struct {
	core Core
}

// New returns a printer over core. A nil core uses DefaultCore.
func New(core Core) *Printer {
	if core == nil {
		core = DefaultCore
	}

	return &Printer{
		core: core,
	}
}

// Vsnprintf formats into buf, writing at most size-1 bytes (never more than
// len(buf)-1) followed by a NUL. It returns the length of the full text,
// which exceeds what was written when the output was truncated.
func (p *Printer) Vsnprintf(buf []byte, size int, format string, args []any) int {
	out := p.core.Format(nil, format, args)

	limit := size
	if len(buf) < limit {
		limit = len(buf)
	}

	if limit <= 0 {
		return len(out)
	}

	k := copy(buf[:limit-1], out)
	buf[k] = 0

	return len(out)
}

// Snprintf is Vsnprintf with variadic arguments.
func (p *Printer) Snprintf(buf []byte, size int, format string, args ...any) int {
	return p.Vsnprintf(buf, size, format, args)
}

// Sprintf formats into buf with no limit other than the length of buf.
func (p *Printer) Sprintf(buf []byte, format string, args ...any) int {
	return p.Vsnprintf(buf, len(buf), format, args)
}
