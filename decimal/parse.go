package decimal

// token is a cursor over the text being parsed.
type token struct {
	s   string
	pos int

	value float64
	sign  float64
	scale float64
	base  int
}

func (t *token) done() bool {
	return t.pos >= len(t.s)
}

// peek returns the byte under the cursor or 0 at the end of the input.
func (t *token) peek() byte {
	if t.done() {
		return 0
	}

	return t.s[t.pos]
}

func (t *token) skipSpace() {
	for !t.done() && isSpace(t.s[t.pos]) {
		t.pos++
	}
}

func (t *token) readSign() {
	switch t.peek() {
	case '-':
		t.sign = -1
		t.pos++
	case '+':
		t.pos++
	}
}

// digits accumulates digits of the active base until the first byte that
// isn't one.
func (t *token) digits() {
	for !t.done() {
		d, ok := digit(t.s[t.pos], t.base)
		if !ok {
			return
		}

		t.value = float64(t.base)*t.value + float64(d)
		t.pos++
	}
}

// decimals accumulates base 10 digits with at most one decimal point. Digits
// after the point still go into value; scale records where the point
// belongs.
func (t *token) decimals() {
	fraction := false

	for !t.done() {
		c := t.s[t.pos]

		if c == '.' && !fraction {
			fraction = true
			t.pos++

			continue
		}

		d, ok := digit(c, 10)
		if !ok {
			return
		}

		t.value = 10*t.value + float64(d)
		if fraction {
			t.scale *= 0.1
		}

		t.pos++
	}
}

// Parse reads a number from the start of s and returns it with the offset of
// the first byte not consumed.
//
// Parse never fails. Text that isn't a number yields the value accumulated
// up to the first invalid byte, which is 0 when nothing was read. Input that
// is empty or only white space returns 0, 0.
func Parse(s string) (v float64, n int) {
	t := &token{
		s:     s,
		sign:  1,
		scale: 1,
		base:  10,
	}

	t.skipSpace()
	if t.done() {
		return 0, 0
	}

	t.readSign()

	if t.peek() == '0' {
		t.pos++

		switch t.peek() {
		case 'x', 'X':
			t.pos++
			t.base = 16
			t.digits()
		case 'b', 'B':
			t.pos++
			t.base = 2
			t.digits()
		case '.':
			t.decimals()
		default:
			t.base = 8
			t.digits()
		}
	} else {
		t.decimals()
	}

	return t.value * t.sign * t.scale, t.pos
}

// digit returns the value of c in the given base.
func digit(c byte, base int) (d int, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'f':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		d = int(c-'A') + 10
	default:
		return 0, false
	}

	if d >= base {
		return 0, false
	}

	return d, true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}
