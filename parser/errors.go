package parser

import (
	"errors"
	"strings"
)

// ErrNoSyntax is a sentinel error passed to a warning reporter when a
// file has no syntax statement. The error the reporter receives is
// wrapped with the position of the start of the file.
var ErrNoSyntax = errors.New("no syntax specified")

// errMisplacedSyntax is passed to a warning reporter when a syntax
// statement is present but is not the file's first statement. The
// grammar does not constrain statement order, so this is convention,
// not an error.
var errMisplacedSyntax = errors.New("syntax statement should be the first statement in the file")

// LexicalError reports input that cannot form any token: an
// unterminated string literal, a comment cut short by end-of-file in
// the dialect that requires a terminating newline, or a character
// outside any matchable production. Lexical errors are wrapped with a
// position via reporter.Error before being surfaced.
type LexicalError struct {
	Reason string
}

func (e *LexicalError) Error() string {
	return e.Reason
}

// SyntaxError reports that no grammar alternative matched at the
// furthest position the matcher reached. Got describes the offending
// input; Expecting lists the alternatives that were tried and failed
// there, in the order the grammar tried them.
type SyntaxError struct {
	Got       string
	Expecting []string
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	sb.WriteString("syntax error: unexpected ")
	sb.WriteString(e.Got)
	if len(e.Expecting) > 0 {
		sb.WriteString(", expecting ")
		for i, want := range e.Expecting {
			switch {
			case i == 0:
			case i == len(e.Expecting)-1:
				sb.WriteString(" or ")
			default:
				sb.WriteString(", ")
			}
			sb.WriteString(want)
		}
	}
	return sb.String()
}
