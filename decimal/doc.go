// Package decimal converts between float64 values and their decimal text form
// without strconv, math.Pow or math.Log10.
//
// It is meant for targets where the platform printf/strtod are missing or too
// large to link. Accuracy is traded for size: parsing is not correctly
// rounded and formatting is not the shortest round trip.
//
// Parsing
//
// Parse reads an optional run of leading white space, an optional sign and
// then a literal in one of four bases chosen by its prefix:
//
//  | Prefix    | Base | Digits            | Example  | Value |
//  |-----------|------|-------------------|----------|-------|
//  | 0x 0X     | 16   | 0-9 a-f A-F       | 0x1A     | 26    |
//  | 0b 0B     | 2    | 0 1               | 0b101    | 5     |
//  | 0.        | 10   | 0-9 and one point | 0.25     | 0.25  |
//  | 0         | 8    | 0-7               | 017      | 15    |
//  | (none)    | 10   | 0-9 and one point | -3.5     | -3.5  |
//  |-----------|------|-------------------|----------|-------|
//
// Scanning stops at the first byte that is not a digit of the active base.
// Malformed text is never an error: the value parsed so far is returned along
// with the offset of the first unconsumed byte. Callers that need strict
// validation compare that offset against the input length.
//
// Formatting
//
// Format approximates printf's %g. The order of magnitude m of |v| is
// estimated with the magnitude package and scientific notation is used when
// any of these hold (p is the precision):
//
//  m >= p
//  v < 0 && m >= p-3
//  m <= -(p-3)
//
// Digits are then emitted from the most significant place downward until the
// remainder drops to 10^-p and the ones place has been written. Digits are
// truncated, never rounded, and negative powers of ten are inexact in binary,
// so some values print as a run of nines. For example, with p = 6:
//
//  | Value       | Text        |
//  |-------------|-------------|
//  | 350         | 350         |
//  | -3.5        | -3.5        |
//  | 0.5         | 0.5         |
//  | 0.25        | 0.249999    |
//  | 1000000     | 1e+6        |
//  | -123456     | -1.23456e+5 |
//  | 0.0005      | 5e-4        |
//  | NaN         | nan         |
//  | ±Inf        | inf         |
//  | 0           | 0           |
//  |-------------|-------------|
package decimal
