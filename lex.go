package deccalc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// token is a lexed element of an expression. The kind is decided once by the
// lexer; later stages never look at source text again.
type token struct {
	kind tokenKind
	// num is the value of a tokenNum, including the sign of a unary minus.
	num decimal.Decimal
	// op is the symbol of a tokenOp.
	op byte
	// pos is the rune column of the start of the token, counting from 1.
	pos int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text() + "@" + strconv.Itoa(t.pos)
}

// text is the canonical spelling of the token.
func (t token) text() string {
	switch t.kind {
	case tokenNum:
		return t.num.String()
	case tokenOp:
		return string(t.op)
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	default:
		return ""
	}
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal literal.
	tokenNum
	// tokenOp is a binary operator.
	tokenOp
	// tokenLParen is (.
	tokenLParen
	// tokenRParen is ).
	tokenRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenLParen:
		return "LParen"
	case tokenRParen:
		return "RParen"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the binary operator symbols. A - is also the sign of a
// negative number wherever an operand is expected.
const Operators = "+-*/^"

// lexState is what the lexer expects next.
type lexState int8

const (
	// expectOperand holds at the start of input and after an operator or (.
	// A - here is a sign.
	expectOperand lexState = iota
	// expectOperator holds after a number or ). A - here is subtraction.
	expectOperator
)

type lexer struct {
	src string
	// off is the byte offset of the next rune.
	off int
	// col is the rune column of the next rune.
	col   int
	state lexState
	buf   strings.Builder
	toks  []token
}

// lex scans a whole expression. Whitespace is ignored everywhere.
func lex(src string) ([]token, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &EmptyExpressionError{Col: 1}
	}
	l := lexer{src: src, col: 1}
	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		col := l.col
		switch {
		case isNumStart(r):
			tok, err := l.scanNum(false, col)
			if err != nil {
				return nil, err
			}
			l.emit(tok, expectOperator)
		case r == '-' && l.state == expectOperand:
			l.advance()
			if r, ok := l.peek(); !ok || !isNumStart(r) {
				return nil, &InvalidExpressionError{Col: col, Reason: "unexpected minus"}
			}
			tok, err := l.scanNum(true, col)
			if err != nil {
				return nil, err
			}
			l.emit(tok, expectOperator)
		case r < utf8.RuneSelf && strings.IndexByte(Operators, byte(r)) >= 0:
			l.advance()
			l.emit(token{kind: tokenOp, op: byte(r), pos: col}, expectOperand)
		case r == '(':
			l.advance()
			l.emit(token{kind: tokenLParen, pos: col}, expectOperand)
		case r == ')':
			l.advance()
			l.emit(token{kind: tokenRParen, pos: col}, expectOperator)
		default:
			return nil, &LexError{Text: string(r), Col: col}
		}
	}
	if len(l.toks) == 0 {
		return nil, &InvalidExpressionError{Col: 1, Reason: "no valid tokens"}
	}
	return l.toks, nil
}

// peek skips whitespace and returns the next rune without consuming it. The
// second result is false at the end of the input.
func (l *lexer) peek() (rune, bool) {
	for l.off < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsSpace(r) {
			return r, true
		}
		l.advance()
	}
	return 0, false
}

// advance consumes one rune.
func (l *lexer) advance() {
	_, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	l.col++
}

func (l *lexer) emit(tok token, next lexState) {
	l.toks = append(l.toks, tok)
	l.state = next
}

// scanNum scans a decimal literal starting at the next rune. The literal ends
// at the first rune that is neither a digit nor a point; whitespace inside a
// literal ends it as well.
func (l *lexer) scanNum(neg bool, col int) (token, error) {
	defer l.buf.Reset()
	if neg {
		l.buf.WriteByte('-')
	}
	var dig, dot bool
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case '0' <= c && c <= '9':
			dig = true
		case c == '.':
			if dot {
				l.buf.WriteByte(c)
				return token{}, l.error("number", col)
			}
			dot = true
		default:
			return l.number(dig, col)
		}
		l.buf.WriteByte(c)
		l.advance()
	}
	return l.number(dig, col)
}

// number converts the scanned literal.
func (l *lexer) number(dig bool, col int) (token, error) {
	if !dig {
		return token{}, l.error("number", col)
	}
	s := l.buf.String()
	// The decimal package wants digits on both sides of the point.
	s = strings.TrimSuffix(s, ".")
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return token{}, l.error("number", col)
	}
	return token{kind: tokenNum, num: v, pos: col}, nil
}

func (l *lexer) error(kind string, col int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

func isNumStart(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

// parseNumber reads a single decimal literal with an optional leading minus,
// using the same rules as literals in expressions.
func parseNumber(s string) (decimal.Decimal, error) {
	toks, err := lex(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if toks[0].kind != tokenNum {
		return decimal.Decimal{}, &InvalidExpressionError{Col: toks[0].pos, Reason: "expected a number"}
	}
	if len(toks) > 1 {
		return decimal.Decimal{}, &InvalidExpressionError{Col: toks[1].pos, Reason: "unexpected " + strconv.Quote(toks[1].text()) + " after number"}
	}
	return toks[0].num, nil
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the column of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// Is makes LexError match ErrInvalidExpression.
func (err *LexError) Is(target error) bool {
	return target == ErrInvalidExpression
}
