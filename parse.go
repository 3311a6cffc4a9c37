package deccalc

import (
	"strings"
)

// Expr is a parsed expression, held in postfix order so that evaluation needs
// only a stack. An Expr is never modified after parsing, so it may be
// evaluated by any number of Contexts at once.
type Expr struct {
	rpn []token
}

// Parse parses an infix expression. The grammar is the usual one for
// arithmetic: + and - bind loosest, then * and /, then ^. All operators group
// left to right except ^, which groups right to left, so "2^3^2" is
// "2^(3^2)". A - where an operand is expected is the sign of the number that
// follows it.
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	rpn, err := shunt(toks)
	if err != nil {
		return nil, err
	}
	if err := check(rpn); err != nil {
		return nil, err
	}
	return &Expr{rpn: rpn}, nil
}

// shunt reorders infix tokens into postfix with Dijkstra's shunting-yard
// algorithm.
func shunt(toks []token) ([]token, error) {
	out := make([]token, 0, len(toks))
	var stack []token
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum:
			out = append(out, tok)
		case tokenOp:
			prec := binop(tok.op)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != tokenOp || !binop(top.op).precedes(prec) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case tokenLParen:
			stack = append(stack, tok)
		case tokenRParen:
			for {
				if len(stack) == 0 {
					return nil, &ParenError{Col: tok.pos}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokenLParen {
					break
				}
				out = append(out, top)
			}
		default:
			panic("deccalc: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == tokenLParen {
			return nil, &ParenError{Col: top.pos, Open: true}
		}
		out = append(out, top)
	}
	return out, nil
}

// check verifies that a postfix sequence leaves exactly one value when
// evaluated, so that a parsed Expr is always complete.
func check(rpn []token) error {
	// starts holds the position of the first token of each operand that
	// evaluation would have on its stack.
	var starts []int
	for _, tok := range rpn {
		switch tok.kind {
		case tokenNum:
			starts = append(starts, tok.pos)
		case tokenOp:
			if len(starts) < 2 {
				return &InvalidExpressionError{Col: tok.pos, Reason: "missing operand for " + string(tok.op)}
			}
			starts = starts[:len(starts)-1]
		default:
			panic("deccalc: " + tok.String() + " in postfix")
		}
	}
	switch len(starts) {
	case 0:
		// Only parentheses, e.g. "()".
		return &InvalidExpressionError{Col: 1, Reason: "no operands"}
	case 1:
		return nil
	default:
		return &InvalidExpressionError{Col: starts[1], Reason: "missing operator before operand"}
	}
}

// String formats the expression in postfix notation with tokens separated by
// spaces, e.g. "2 3 4 * +".
func (e *Expr) String() string {
	var b strings.Builder
	for i, tok := range e.rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text())
	}
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// precedes reports whether p, already on the operator stack, must be output
// before next is pushed.
func (p operator) precedes(next operator) bool {
	if p.prec != next.prec {
		return p.prec > next.prec
	}
	return !next.right
}

// binop gets the binary operator for a symbol. The table is fixed; there is no
// way to change it.
func binop(sym byte) operator {
	switch sym {
	case '+', '-':
		return operator{1, false}
	case '*', '/':
		return operator{2, false}
	case '^':
		return operator{3, true}
	default:
		panic("deccalc: unknown operator " + string(sym))
	}
}
