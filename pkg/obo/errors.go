package obo

import (
	"errors"
	"fmt"
)

// Sentinel errors. Structural errors reach callers wrapped in a *ParseError.
var (
	ErrUnclosedStanza  = errors.New("unclosed stanza")
	ErrUnknownStanza   = errors.New("unknown stanza type")
	ErrMalformedTermID = errors.New("malformed term id")
)

// ParseError reports a structural violation that aborted a parse.
type ParseError struct {
	// Err is the sentinel describing the violation.
	Err error
	// Line is the offending logical line.
	Line string
	// LineNum is the 1-based physical line number on which Line ends.
	LineNum int
}

func newParseError(err error, line []byte, lineNum int) *ParseError {
	return &ParseError{Err: err, Line: string(line), LineNum: lineNum}
}

// Error implements error.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d: %q", pe.Err, pe.LineNum, pe.Line)
}

// Unwrap returns the sentinel error.
func (pe *ParseError) Unwrap() error {
	return pe.Err
}
