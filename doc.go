// Package deccalc implements an exact decimal calculator for arithmetic
// expressions.
//
// Expressions are written the usual way: numbers like 12 or 0.5, the binary
// operators + - * / and ^, and parentheses. "2 + 3 * 4" is 14 and "2^3^2" is
// 512, since ^ groups right to left. A - before a number where an operand is
// expected makes the number negative, so "10 + -5 * 2" is 0. There are no
// variables, functions, or exponent notation.
//
// Arithmetic is decimal, not binary floating-point: "0.1 + 0.2" is exactly
// 0.3. Division and negative powers keep a fixed number of fractional digits,
// set with Prec; everything else is exact.
//
// Evaluate is the simplest way in. Parse an expression once to evaluate it
// many times, or use a Calculator to chain operations on a single value.
package deccalc
