// Package magnitude computes powers of ten and decimal logarithms from the
// natural exponential and logarithm alone.
//
// Targets that keep math.Pow and math.Log10 out of their fast memory segment
// can still estimate the order of a value this way. The results are only
// approximately exact and are meant for layout decisions, not arithmetic.
package magnitude

import "math"

var ln10 = math.Log(10)

// Pow10Int returns 10^n.
//
// For |n| > 1 the value is exp(|n| * ln 10) rounded to the nearest integer,
// which removes the error the exp/log round trip accumulates. Negative powers
// are the reciprocal of the rounded positive power.
func Pow10Int(n int) float64 {
	switch {
	case n == 0:
		return 1
	case n == 1:
		return 10
	case n > 0:
		return math.Round(math.Exp(float64(n) * ln10))
	default:
		return 1 / math.Round(math.Exp(float64(-n)*ln10))
	}
}

// Log10 returns ln(x) / ln(10).
func Log10(x float64) float64 {
	return math.Log(x) / ln10
}

// Estimate returns the decimal magnitude of x, the integer part of log10(x)
// truncated toward zero. The value must be positive and finite.
//
// Truncating the quotient from Log10 lands one short for some exact powers
// of ten (log(1000)/log(10) is 2.9999999999999996), so the estimate is
// checked against Pow10Int and nudged until:
//
//	x >= 1:  10^m <= x < 10^(m+1)
//	x <  1:  10^(m-1) < x <= 10^m
func Estimate(x float64) (m int) {
	m = int(Log10(x))

	if x >= 1 {
		for Pow10Int(m+1) <= x {
			m++
		}
		for m > 0 && Pow10Int(m) > x {
			m--
		}

		return m
	}

	for Pow10Int(m-1) >= x {
		m--
	}
	// Below 1e-308 the reciprocal underflows to zero and is no longer a
	// useful bound.
	for m < 0 && Pow10Int(m) != 0 && Pow10Int(m) < x {
		m++
	}

	return m
}
