package deccalc

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Calculator holds a decimal value which chained operations update in place:
//
//	c := deccalc.NewCalculator(decimal.NewFromInt(10))
//	c.Add(decimal.NewFromInt(5)).Sub(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(2))
//	fmt.Println(c) // 24
//
// If an operation fails, the value stays at the last good result, Err returns
// the failure, and later operations do nothing.
//
// A Calculator is meant to have one owner. It is not safe to use a Calculator
// concurrently.
type Calculator struct {
	v    decimal.Decimal
	prec int32
	err  error
}

// NewCalculator creates a Calculator holding v. The only option that applies
// is Prec.
func NewCalculator(v decimal.Decimal, opts ...Option) *Calculator {
	return &Calculator{v: v, prec: precOf(opts)}
}

// ParseCalculator creates a Calculator holding the value of a numeric literal,
// e.g. "-12.5". Literals follow the same rules as in expressions.
func ParseCalculator(s string, opts ...Option) (*Calculator, error) {
	v, err := parseNumber(s)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing calculator value %q", s)
	}
	return NewCalculator(v, opts...), nil
}

// Add adds v to the held value. Returns c for chaining.
func (c *Calculator) Add(v decimal.Decimal) *Calculator {
	return c.do('+', v)
}

// Sub subtracts v from the held value. Returns c for chaining.
func (c *Calculator) Sub(v decimal.Decimal) *Calculator {
	return c.do('-', v)
}

// Mul multiplies the held value by v. Returns c for chaining.
func (c *Calculator) Mul(v decimal.Decimal) *Calculator {
	return c.do('*', v)
}

// Div divides the held value by v, keeping the Calculator's precision. Division
// by zero fails with an *ArithmeticError. Returns c for chaining.
func (c *Calculator) Div(v decimal.Decimal) *Calculator {
	return c.do('/', v)
}

// Pow raises the held value to the integer power n. Returns c for chaining.
func (c *Calculator) Pow(n int) *Calculator {
	return c.do('^', decimal.NewFromInt(int64(n)))
}

func (c *Calculator) do(op byte, v decimal.Decimal) *Calculator {
	if c.err != nil {
		return c
	}
	r, err := apply(op, c.v, v, c.prec)
	if err != nil {
		c.err = err
		return c
	}
	c.v = r
	return c
}

// Value returns the held value.
func (c *Calculator) Value() decimal.Decimal {
	return c.v
}

// String formats the held value as a literal that Evaluate reads back to the
// same value.
func (c *Calculator) String() string {
	return c.v.String()
}

// Err returns the first error from an operation on c, if any.
func (c *Calculator) Err() error {
	return c.err
}
