package deccalc

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	one    = decimal.New(1, 0)
	maxExp = decimal.NewFromInt(math.MaxInt32)
	minExp = decimal.NewFromInt(-math.MaxInt32)
)

// apply performs the binary operation op on l and r. prec is the number of
// fractional digits kept by operations whose exact result may not terminate.
func apply(op byte, l, r decimal.Decimal, prec int32) (decimal.Decimal, error) {
	switch op {
	case '+':
		return l.Add(r), nil
	case '-':
		return l.Sub(r), nil
	case '*':
		return l.Mul(r), nil
	case '/':
		return quo(l, r, prec)
	case '^':
		return pow(l, r, prec)
	default:
		panic("deccalc: unknown operator " + string(op))
	}
}

// quo divides x by y, rounding half away from zero at prec fractional digits.
func quo(x, y decimal.Decimal, prec int32) (z decimal.Decimal, err error) {
	if y.IsZero() {
		return decimal.Decimal{}, &ArithmeticError{Op: "/", Reason: "division by zero"}
	}
	defer recoverArith("/", &err)
	return x.DivRound(y, prec), nil
}

// pow raises x to the power y, which must be an integer in the int32 range.
// Negative powers are the reciprocal of the positive power, rounded to prec
// fractional digits.
func pow(x, y decimal.Decimal, prec int32) (z decimal.Decimal, err error) {
	if !y.IsInteger() {
		return decimal.Decimal{}, &ArithmeticError{Op: "^", Reason: "non-integer exponent " + y.String()}
	}
	if y.GreaterThan(maxExp) || y.LessThan(minExp) {
		return decimal.Decimal{}, &ArithmeticError{Op: "^", Reason: "exponent " + y.String() + " out of range"}
	}
	n := y.IntPart()
	if x.IsZero() {
		switch {
		case n == 0:
			return decimal.Decimal{}, &ArithmeticError{Op: "^", Reason: "0^0 is undefined"}
		case n < 0:
			return decimal.Decimal{}, &ArithmeticError{Op: "^", Reason: "division by zero"}
		}
	}
	defer recoverArith("^", &err)
	m := n
	if m < 0 {
		m = -m
	}
	z, err = x.PowInt32(int32(m))
	if err != nil {
		return decimal.Decimal{}, &ArithmeticError{Op: "^", Reason: err.Error(), Err: err}
	}
	if n < 0 {
		z = one.DivRound(z, prec)
	}
	return z, nil
}

// recoverArith converts a panic from the decimal package into an
// ArithmeticError. It must be deferred directly.
func recoverArith(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok {
		e = fmt.Errorf("%v", r)
	}
	*err = &ArithmeticError{Op: op, Reason: e.Error(), Err: e}
}
