package decimal

import (
	"math"

	"github.com/calebcase/flashlibc/magnitude"
)

// output tracks the state of a single Format call.
type output struct {
	*Builder

	scientific bool
}

// Scientific reports whether Format(v, prec) uses exponent notation.
func Scientific(v float64, prec int) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return false
	}

	_, sci := layout(math.Abs(v), v < 0, prec)

	return sci
}

// layout returns the magnitude of the absolute value a and whether it must
// be written in exponent notation.
func layout(a float64, neg bool, prec int) (mag int, sci bool) {
	mag = magnitude.Estimate(a)
	sci = mag >= prec ||
		(neg && mag >= prec-3) ||
		mag <= -(prec-3)

	return mag, sci
}

// Format returns the decimal text of v with about prec significant fractional
// digits, in the spirit of printf's %g.
func Format(v float64, prec int) string {
	b := &Builder{}
	Append(b, v, prec)

	return b.String()
}

// FormatTo writes the text of v followed by a NUL into buf and returns the
// length of the text. If buf is too short the text is truncated so the NUL
// still fits; the returned length is that of the full text.
func FormatTo(buf []byte, v float64, prec int) int {
	b := &Builder{}
	n := Append(b, v, prec)

	if len(buf) == 0 {
		return n
	}

	k := copy(buf[:len(buf)-1], b.Bytes())
	buf[k] = 0

	return n
}

// Append writes the text of v to b and returns the number of bytes written.
func Append(b *Builder, v float64, prec int) int {
	start := b.Len()

	switch {
	case math.IsNaN(v):
		b.PushString("nan")
		return b.Len() - start
	case math.IsInf(v, 0):
		b.PushString("inf")
		return b.Len() - start
	case v == 0:
		b.PushString("0")
		return b.Len() - start
	}

	o := &output{Builder: b}
	o.format(v, prec)

	return b.Len() - start
}

func (o *output) format(v float64, prec int) {
	threshold := magnitude.Pow10Int(-prec)

	neg := v < 0
	if neg {
		v = -v
	}

	var mag, exp int
	mag, o.scientific = layout(v, neg, prec)

	if neg {
		o.PushByte('-')
	}

	if o.scientific {
		if mag < 0 {
			mag--
		}

		v, exp = normalize(v, mag)
		mag = 0
	}

	if mag < 1 {
		mag = 0
	}

	for v > threshold || mag >= 0 {
		place := magnitude.Pow10Int(mag)
		if place == 0 {
			break
		}

		if !math.IsInf(place, 0) {
			d := math.Floor(v / place)
			switch {
			case d > 9:
				d = 9
			case d < 0:
				d = 0
			}

			// The conversion keeps the product rounded on its own.
			v -= float64(d * place)
			o.PushByte('0' + byte(d))
		}

		if mag == 0 && v > 0 {
			o.PushByte('.')
		}

		mag--
	}

	if o.scientific {
		o.exponent(exp)
	}
}

// normalize divides v by 10^mag and adjusts the result into [1, 10).
func normalize(v float64, mag int) (mantissa float64, exp int) {
	p := magnitude.Pow10Int(mag)
	if p > 0 && !math.IsInf(p, 0) {
		v /= p
	} else {
		h := mag / 2
		v = v / magnitude.Pow10Int(h) / magnitude.Pow10Int(mag-h)
	}

	for v >= 10 {
		v /= 10
		mag++
	}

	for v < 1 {
		v *= 10
		mag--
	}

	return v, mag
}

// exponent writes e±N. The digits are produced least significant first and
// reversed in place.
func (o *output) exponent(exp int) {
	o.PushByte('e')

	if exp < 0 {
		o.PushByte('-')
		exp = -exp
	} else {
		o.PushByte('+')
	}

	if exp == 0 {
		o.PushByte('0')
		return
	}

	start := o.Len()
	for exp > 0 {
		o.PushByte('0' + byte(exp%10))
		exp /= 10
	}
	o.Reverse(start)
}
