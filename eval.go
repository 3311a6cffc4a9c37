package deccalc

import (
	"github.com/shopspring/decimal"
)

// DefaultPrec is the number of fractional digits kept by division when no Prec
// option is given.
const DefaultPrec = 16

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently, but a Context may be reused for any number of
// evaluations in sequence.
type Context struct {
	stack []decimal.Decimal
	prec  int32
}

// Option is an option used when creating a Context or a Calculator.
type Option interface {
	ctxOption()
}

type precopt int32

func (precopt) ctxOption() {}

// Prec sets the number of fractional digits kept by division and by negative
// powers, whose exact results may not terminate. Results that terminate
// within that many digits are exact. Panics if digits is negative.
func Prec(digits int32) Option {
	if digits < 0 {
		panic("deccalc: negative precision")
	}
	return precopt(digits)
}

// precOf returns the precision selected by opts.
func precOf(opts []Option) int32 {
	// Loop backward so we apply the last precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			return int32(p)
		}
	}
	return DefaultPrec
}

// NewContext creates a new evaluation context.
func NewContext(opts ...Option) *Context {
	return &Context{prec: precOf(opts)}
}

// Prec returns the number of fractional digits kept by division.
func (ctx *Context) Prec() int32 {
	return ctx.prec
}

// Eval evaluates an expression and returns the result. Errors are
// *ArithmeticError for operations outside their domain, or
// *InvalidExpressionError if e is not a complete expression, which happens
// only for an Expr that did not come from Parse.
func (ctx *Context) Eval(e *Expr) (decimal.Decimal, error) {
	ctx.stack = ctx.stack[:0]
	for _, tok := range e.rpn {
		switch tok.kind {
		case tokenNum:
			ctx.push(tok.num)
		case tokenOp:
			if len(ctx.stack) < 2 {
				return decimal.Decimal{}, &InvalidExpressionError{Col: tok.pos, Reason: "missing operand for " + string(tok.op)}
			}
			r := ctx.pop()
			l := ctx.pop()
			v, err := apply(tok.op, l, r, ctx.prec)
			if err != nil {
				return decimal.Decimal{}, err
			}
			ctx.push(v)
		default:
			panic("deccalc: invalid postfix token " + tok.String())
		}
	}
	switch len(ctx.stack) {
	case 0:
		return decimal.Decimal{}, &InvalidExpressionError{Col: 1, Reason: "no operands"}
	case 1:
		return ctx.pop(), nil
	default:
		return decimal.Decimal{}, &InvalidExpressionError{Col: e.rpn[len(e.rpn)-1].pos, Reason: "missing operator before operand"}
	}
}

func (ctx *Context) push(v decimal.Decimal) {
	ctx.stack = append(ctx.stack, v)
}

// pop removes the top from the stack and returns it.
func (ctx *Context) pop() decimal.Decimal {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// Eval evaluates the expression with a new context.
func (e *Expr) Eval(opts ...Option) (decimal.Decimal, error) {
	return NewContext(opts...).Eval(e)
}

// Eval is a shortcut to parse an expression and return its value.
func Eval(src string, opts ...Option) (decimal.Decimal, error) {
	e, err := Parse(src)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return e.Eval(opts...)
}

// Evaluate parses and evaluates an expression and formats the result the way
// it would be typed: no exponent and no trailing fractional zeros. Evaluating
// the result again gives the same value.
func Evaluate(src string, opts ...Option) (string, error) {
	r, err := Eval(src, opts...)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}
