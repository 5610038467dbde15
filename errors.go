package jsef

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnexpected      = errors.New("unexpected character")
	ErrMismatch        = errors.New("mismatched character")
	ErrTrailingContent = errors.New("trailing content")
	ErrMaxDepth        = errors.New("maximum nesting depth exceeded")
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
	ErrSourceFailure   = errors.New("read failed")
	ErrSinkFailure     = errors.New("write failed")
)

// EOF stands in for a character when the input ended instead.
const EOF rune = -1

// Error is returned by every parse and compose operation. Err is one of the
// sentinel errors above, so callers can use errors.Is on the result.
type Error struct {
	Err error

	// Expected is the literal that was required, for ErrMismatch.
	Expected rune
	// Found is the offending character or EOF, for ErrUnexpected,
	// ErrMismatch and ErrTrailingContent.
	Found rune

	Pos Position

	// Cause is the underlying I/O error for ErrSourceFailure and ErrSinkFailure.
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsef: %v: %s", e.Pos, e.detail())
}

func (e *Error) detail() string {
	switch e.Err {
	case ErrUnexpected:
		if e.Found == EOF {
			return "unexpected end of input"
		}
		return "unexpected character " + quoteRune(e.Found)
	case ErrMismatch:
		return "expected " + quoteRune(e.Expected) + ", found " + quoteRune(e.Found)
	case ErrTrailingContent:
		return "trailing content starting with " + quoteRune(e.Found)
	case ErrSourceFailure, ErrSinkFailure:
		if e.Cause != nil {
			return e.Err.Error() + ": " + e.Cause.Error()
		}
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func quoteRune(r rune) string {
	if r == EOF {
		return "end of input"
	}
	return strconv.QuoteRune(r)
}

// IsIncomplete reports whether err was caused by the input ending early,
// such as an unclosed bracket or quoted string. More input could fix it.
func IsIncomplete(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Err != ErrUnexpected && e.Err != ErrMismatch {
		return false
	}
	return e.Found == EOF
}
