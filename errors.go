package deccalc

import (
	"errors"
	"strconv"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	// ErrEmptyExpression is the kind of an input with no expression at all.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrInvalidExpression is the kind of malformed input.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrMismatchedParentheses is the kind of an unmatched ( or ).
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	// ErrArithmetic is the kind of a failed decimal operation, like division
	// by zero.
	ErrArithmetic = errors.New("arithmetic failure")
)

// EmptyExpressionError is an error indicating an input which is empty or
// contains only whitespace. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position where an expression was expected.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrEmptyExpression
}

// InvalidExpressionError is an error indicating tokens that do not form an
// expression, e.g. an operator without operands. It implements InputError.
type InvalidExpressionError struct {
	// Col is the position of the offending token.
	Col int
	// Reason describes what is wrong.
	Reason string
}

func (err *InvalidExpressionError) Error() string {
	return errpos(err.Col, err.Reason)
}

func (err *InvalidExpressionError) Pos() int {
	return err.Col
}

func (err *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}

// ParenError is an error indicating a parenthesis with no partner. It
// implements InputError.
type ParenError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Open is true if the unmatched parenthesis is ( and false if it is ).
	Open bool
}

func (err *ParenError) Error() string {
	if err.Open {
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Col, "close parenthesis with no open parenthesis")
}

func (err *ParenError) Pos() int {
	return err.Col
}

func (err *ParenError) Is(target error) bool {
	return target == ErrMismatchedParentheses
}

// ArithmeticError is an error from a decimal operation on arguments outside
// its domain. It is not an InputError: the input was well-formed.
type ArithmeticError struct {
	// Op is the operator symbol, one of Operators.
	Op string
	// Reason describes the failure.
	Reason string
	// Err is the error raised by the decimal package, if any.
	Err error
}

func (err *ArithmeticError) Error() string {
	return "arithmetic failure in " + err.Op + ": " + err.Reason
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}

func (err *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*InvalidExpressionError)(nil)
	_ InputError = (*ParenError)(nil)
	_ InputError = (*LexError)(nil)
)
