package deccalc

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func num(s string, pos int) token {
	return token{kind: tokenNum, num: decimal.RequireFromString(s), pos: pos}
}

func op(c byte, pos int) token {
	return token{kind: tokenOp, op: c, pos: pos}
}

func lparen(pos int) token { return token{kind: tokenLParen, pos: pos} }
func rparen(pos int) token { return token{kind: tokenRParen, pos: pos} }

func sametoken(a, b token) bool {
	if a.kind != b.kind || a.pos != b.pos || a.op != b.op {
		return false
	}
	return a.kind != tokenNum || a.num.Equal(b.num)
}

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []token
	}{
		// numbers
		{"zero", "0", []token{num("0", 1)}},
		{"digits", "9876543210", []token{num("9876543210", 1)}},
		{"frac", "1.25", []token{num("1.25", 1)}},
		{"leading-point", ".5", []token{num("0.5", 1)}},
		{"trailing-point", "5.", []token{num("5", 1)}},
		{"spaced", "1 0", []token{num("1", 1), num("0", 3)}},
		{"tab", "\t7", []token{num("7", 2)}},
		// operators
		{"add", "1+0", []token{num("1", 1), op('+', 2), num("0", 3)}},
		{"all", "1+2-3*4/5^6", []token{
			num("1", 1), op('+', 2), num("2", 3), op('-', 4), num("3", 5),
			op('*', 6), num("4", 7), op('/', 8), num("5", 9), op('^', 10), num("6", 11),
		}},
		{"parens", "(1)", []token{lparen(1), num("1", 2), rparen(3)}},
		{"empty-parens", "()", []token{lparen(1), rparen(2)}},
		{"unicode-space", "1\u00a0+\u20032", []token{num("1", 1), op('+', 3), num("2", 5)}},
		// unary minus
		{"neg-first", "-5", []token{num("-5", 1)}},
		{"neg-spaced", "- 5", []token{num("-5", 1)}},
		{"neg-frac", "-.5", []token{num("-0.5", 1)}},
		{"neg-after-op", "10+-5", []token{num("10", 1), op('+', 3), num("-5", 4)}},
		{"neg-after-paren", "(-5)", []token{lparen(1), num("-5", 2), rparen(4)}},
		{"neg-after-pow", "2^-1", []token{num("2", 1), op('^', 2), num("-1", 3)}},
		{"sub", "5-3", []token{num("5", 1), op('-', 2), num("3", 3)}},
		{"sub-spaced", "5 -3", []token{num("5", 1), op('-', 3), num("3", 4)}},
		{"sub-after-paren", "(1)-2", []token{lparen(1), num("1", 2), rparen(3), op('-', 4), num("2", 5)}},
		{"neg-then-sub", "-1-1", []token{num("-1", 1), op('-', 3), num("1", 4)}},
		// operators where operands are expected are left to the parser
		{"plus-first", "+1", []token{op('+', 1), num("1", 2)}},
		{"double-op", "1*/2", []token{num("1", 1), op('*', 2), op('/', 3), num("2", 4)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src)
			if err != nil {
				t.Fatalf("lexing %q: unexpected error %v", c.src, err)
			}
			if len(toks) != len(c.tokens) {
				t.Fatalf("lexing %q: want %v, got %v", c.src, c.tokens, toks)
			}
			for i, want := range c.tokens {
				if !sametoken(toks[i], want) {
					t.Errorf("lexing %q: token %d: want %v, got %v", c.src, i, want, toks[i])
				}
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
		err  InputError
		pos  int
	}{
		{"empty", "", ErrEmptyExpression, new(EmptyExpressionError), 1},
		{"spaces", " \t \r\n ", ErrEmptyExpression, new(EmptyExpressionError), 1},
		{"lone-minus", "-", ErrInvalidExpression, new(InvalidExpressionError), 1},
		{"minus-paren", "-(1)", ErrInvalidExpression, new(InvalidExpressionError), 1},
		{"double-minus", "--1", ErrInvalidExpression, new(InvalidExpressionError), 1},
		{"minus-after-op", "1*-", ErrInvalidExpression, new(InvalidExpressionError), 3},
		{"minus-minus-after-op", "1 * - -2", ErrInvalidExpression, new(InvalidExpressionError), 5},
		{"point", ".", ErrInvalidExpression, new(LexError), 1},
		{"two-points", "1.1.1", ErrInvalidExpression, new(LexError), 1},
		{"neg-point", "-.", ErrInvalidExpression, new(LexError), 1},
		{"letter", "1a", ErrInvalidExpression, new(LexError), 2},
		{"exponent", "1e5", ErrInvalidExpression, new(LexError), 2},
		{"symbol", "$", ErrInvalidExpression, new(LexError), 1},
		{"modulo", "5 % 2", ErrInvalidExpression, new(LexError), 3},
		{"comma", "1,000", ErrInvalidExpression, new(LexError), 2},
		{"bracket", "[1]", ErrInvalidExpression, new(LexError), 1},
		{"times", "2×3", ErrInvalidExpression, new(LexError), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src)
			if err == nil {
				t.Fatalf("lexing %q: want error, got tokens %v", c.src, toks)
			}
			if !errors.Is(err, c.kind) {
				t.Errorf("lexing %q: error %v is not %v", c.src, err, c.kind)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("lexing %q: %#v is not an InputError", c.src, err)
			}
			if got, want := typename(ie), typename(c.err); got != want {
				t.Errorf("lexing %q: want %s, got %s", c.src, want, got)
			}
			if ie.Pos() != c.pos {
				t.Errorf("lexing %q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
		})
	}
}

func typename(err error) string {
	switch err.(type) {
	case *EmptyExpressionError:
		return "EmptyExpressionError"
	case *InvalidExpressionError:
		return "InvalidExpressionError"
	case *ParenError:
		return "ParenError"
	case *LexError:
		return "LexError"
	case *ArithmeticError:
		return "ArithmeticError"
	default:
		return "unknown"
	}
}

func TestParseNumber(t *testing.T) {
	good := []struct {
		src  string
		want string
	}{
		{"10", "10"},
		{"-12.5", "-12.5"},
		{" 0.10 ", "0.1"},
		{".5", "0.5"},
	}
	for _, c := range good {
		v, err := parseNumber(c.src)
		if err != nil {
			t.Errorf("parsing %q: %v", c.src, err)
			continue
		}
		if v.String() != c.want {
			t.Errorf("parsing %q: want %s, got %s", c.src, c.want, v)
		}
	}
	bad := []string{"", "x", "1+2", "(1)", "+1", "1 2"}
	for _, src := range bad {
		if v, err := parseNumber(src); err == nil {
			t.Errorf("parsing %q: want error, got %s", src, v)
		}
	}
}
